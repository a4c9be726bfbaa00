package cvparser

// EducationLevel is the coarse category derived from the first education
// entry's degree text.
type EducationLevel string

const (
	LevelPhD         EducationLevel = "PhD"
	LevelMasters     EducationLevel = "Masters"
	LevelBachelors   EducationLevel = "Bachelors"
	LevelDiploma     EducationLevel = "Diploma"
	LevelCertificate EducationLevel = "Certificate"
	LevelUnknown     EducationLevel = ""
)

// PersonalInfo holds the candidate's contact details. Every field is
// optional; extraction that finds nothing leaves the field empty.
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// EducationEntry is one degree-level education record. Degree must be
// non-empty for the entry to be retained by the composer.
type EducationEntry struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationYear string `json:"graduationYear"`
	GPA            string `json:"gpa"`
}

// QualificationEntry is a pre-degree qualification (secondary-level
// certificates such as GCE O/L and A/L). Same shape as EducationEntry but
// kept in a separate collection.
type QualificationEntry struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationYear string `json:"graduationYear"`
	GPA            string `json:"gpa"`
}

// WorkExperienceEntry is one work or project record. StartDate and EndDate
// are ISO-style date strings ("2006", "2006-01" or "2006-01-02"); an
// open-ended range ("Present") resolves EndDate to the current date.
type WorkExperienceEntry struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// LinkSet holds the first classified URL per category.
type LinkSet struct {
	GitHubURL    string `json:"githubUrl"`
	LinkedInURL  string `json:"linkedinUrl"`
	PortfolioURL string `json:"portfolioUrl"`
}

// CandidateProfile is the composed structured output of the pipeline.
// Array fields are never nil and contain only well-formed entries.
type CandidateProfile struct {
	PersonalInfo   PersonalInfo          `json:"personalInfo"`
	EducationLevel EducationLevel        `json:"educationLevel"`
	Education      []EducationEntry      `json:"education"`
	Qualifications []QualificationEntry  `json:"qualifications"`
	WorkExperience []WorkExperienceEntry `json:"workExperience"`
	Skills         []string              `json:"skills"`
	Links          LinkSet               `json:"references"`
}

// ExtractionResult is the envelope returned by Extract. Success is false
// only when no usable text was supplied; every internal extraction failure
// degrades to empty fields instead.
type ExtractionResult struct {
	Success bool              `json:"success"`
	Data    *CandidateProfile `json:"data"`
	Message string            `json:"message"`
}

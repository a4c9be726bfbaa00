package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Student is the persisted student record. Profile fields mirror what the
// CV extractor produces; list-valued fields are stored as JSON columns.
type Student struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"student_id"`

	FirstName string `gorm:"type:varchar(100)" json:"first_name"`
	LastName  string `gorm:"type:varchar(100)" json:"last_name"`
	Email     string `gorm:"type:varchar(255);index" json:"email"`
	Phone     string `gorm:"type:varchar(50)" json:"phone"`
	Address   string `gorm:"type:varchar(255)" json:"address"`
	City      string `gorm:"type:varchar(100)" json:"city"`
	Country   string `gorm:"type:varchar(100)" json:"country"`

	EducationLevel string         `gorm:"type:varchar(20)" json:"education_level"`
	Education      datatypes.JSON `gorm:"type:json" json:"education"`
	Qualifications datatypes.JSON `gorm:"type:json" json:"qualifications"`
	WorkExperience datatypes.JSON `gorm:"type:json" json:"work_experience"`
	Skills         datatypes.JSON `gorm:"type:json" json:"skills"`

	GitHubURL    string `gorm:"type:varchar(500)" json:"github_url"`
	LinkedInURL  string `gorm:"type:varchar(500)" json:"linkedin_url"`
	PortfolioURL string `gorm:"type:varchar(500)" json:"portfolio_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName maps Student to the students table.
func (Student) TableName() string {
	return "students"
}

// CVSubmission tracks one uploaded CV file through the extraction
// pipeline.
type CVSubmission struct {
	SubmissionUUID string `gorm:"type:varchar(36);primaryKey" json:"submission_uuid"`
	StudentID      string `gorm:"type:varchar(36);index;not null" json:"student_id"`

	OriginalFilename string `gorm:"type:varchar(255)" json:"original_filename"`
	FileExt          string `gorm:"type:varchar(10)" json:"file_ext"`
	ObjectKey        string `gorm:"type:varchar(500)" json:"object_key"`
	FileMD5          string `gorm:"type:varchar(32);index" json:"file_md5"`

	// uploaded -> processing -> completed | failed; deleted once the
	// student removes the file
	Status       string `gorm:"type:varchar(20);index;default:'uploaded'" json:"status"`
	ErrorMessage string `gorm:"type:text" json:"error_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName maps CVSubmission to the cv_submissions table.
func (CVSubmission) TableName() string {
	return "cv_submissions"
}

// Submission status values.
const (
	SubmissionStatusUploaded   = "uploaded"
	SubmissionStatusProcessing = "processing"
	SubmissionStatusCompleted  = "completed"
	SubmissionStatusFailed     = "failed"
	SubmissionStatusDeleted    = "deleted"
)

// UniversityCourse is one course a student profile can be matched
// against.
type UniversityCourse struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseName string `gorm:"type:varchar(255);not null" json:"course_name"`
	University string `gorm:"type:varchar(255);not null" json:"university"`
	Country    string `gorm:"type:varchar(100)" json:"country"`
	City       string `gorm:"type:varchar(100)" json:"city"`

	FieldOfStudy   string         `gorm:"type:varchar(100);index" json:"field_of_study"`
	RequiredLevel  string         `gorm:"type:varchar(20)" json:"required_level"`
	RequiredSkills datatypes.JSON `gorm:"type:json" json:"required_skills"`
	MinIELTS       float64        `json:"min_ielts"`
	TuitionPerYear float64        `json:"tuition_per_year"`
	StudyMode      string         `gorm:"type:varchar(20)" json:"study_mode"` // full-time, part-time, online

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName maps UniversityCourse to the university_courses table.
func (UniversityCourse) TableName() string {
	return "university_courses"
}

// ToJSON marshals any value into a JSON column value.
func ToJSON(v interface{}) (datatypes.JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

// StringsFromJSON unmarshals a JSON column back into a string slice.
// Malformed or empty columns yield an empty slice.
func StringsFromJSON(data datatypes.JSON) []string {
	if len(data) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return []string{}
	}
	return out
}

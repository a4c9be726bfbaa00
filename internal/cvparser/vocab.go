package cvparser

import "regexp"

// Heuristic thresholds. These were tuned on a small sample of real CVs and
// are deliberately named rather than inlined; they are not verified ground
// truth for every locale or format.
const (
	// Name candidate length bounds (exclusive).
	minNameLength = 3
	maxNameLength = 100

	// Minimum length (exclusive) for a name candidate taken from lines
	// below the first; shorter lines are initials or stray tokens.
	minEarlyNameLineLength = 5

	// A name line whose tokens are mostly this short is treated as a PDF
	// spacing artifact and merged at the midpoint.
	spacingArtifactShortLen  = 4
	spacingArtifactRatio     = 0.5
	spacingArtifactMinTokens = 4

	// Education-section lines longer than this are descriptive prose, not
	// structural headings.
	noiseLineLength = 100

	// A company line following a single-line work entry must stay under
	// this length.
	maxCompanyLineLength = 100
)

// headerKeywords maps each section kind to the exact (lowercased,
// punctuation-trimmed) lines that open it. A full-line match is required so
// prose mentioning "experience" does not start a section.
var headerKeywords = map[SectionKind][]string{
	SectionPersonal: {
		"personal details", "personal information", "contact", "contact information",
		"contact details", "profile",
	},
	SectionEducation: {
		"education", "educational background", "academic background",
		"education and qualifications", "academic qualifications",
	},
	SectionWork: {
		"work experience", "work experiences", "employment", "employment history",
		"experience", "professional experience", "projects", "project",
		"key projects", "accomplishments", "internships",
	},
	SectionSkills: {
		"technical skills", "skills", "technologies", "technologies used",
		"skills and tools", "core competencies",
	},
}

// degreeTerms marks a line as a degree heading.
var degreeTerms = []string{
	"bachelor", "bsc", "b.sc", "ba", "b.a", "beng", "b.eng", "btech", "b.tech",
	"master", "msc", "m.sc", "ma", "m.a", "mba", "m.b.a", "meng", "m.eng", "mphil",
	"phd", "ph.d", "doctorate", "doctoral",
	"diploma", "higher national diploma", "hnd", "degree", "foundation programme",
}

// qualificationTerms marks pre-degree certificate lines. Checked before
// degreeTerms because lines like "G.C.E. Advanced Level" can match both
// vocabularies.
var qualificationTerms = []string{
	"g.c.e", "gce", "o/l", "a/l", "ordinary level", "advanced level",
	"o-level", "a-level", "o levels", "a levels", "gcse",
	"high school diploma", "secondary school certificate", "school certificate",
	"wassce", "matriculation",
}

// institutionTerms marks a line as naming an educational body.
var institutionTerms = []string{
	"university", "college", "institute", "school", "academy", "polytechnic", "campus",
}

// secondarySchoolTerms are excluded from institution-only classification for
// degree entries (they belong to qualifications).
var secondarySchoolTerms = []string{
	"high school", "secondary school",
}

// educationLevelTable is tested in order against the first education
// entry's degree text; the first category with a keyword hit wins.
var educationLevelTable = []struct {
	Level    EducationLevel
	Keywords []string
}{
	{LevelPhD, []string{"phd", "ph.d", "doctor of philosophy", "doctorate", "doctoral"}},
	{LevelMasters, []string{"master", "msc", "m.sc", "ma", "m.a", "mba", "m.b.a", "meng", "m.eng", "mphil"}},
	{LevelBachelors, []string{"bachelor", "bsc", "b.sc", "ba", "b.a", "beng", "b.eng", "btech", "b.tech", "undergraduate"}},
	{LevelDiploma, []string{"diploma", "hnd", "higher national"}},
	{LevelCertificate, []string{"certificate", "certification"}},
}

// skillVocabulary is the curated technical and soft skill list. Matching is
// case-insensitive; the entry's casing here is the rendered form.
var skillVocabulary = []string{
	"JavaScript", "TypeScript", "Python", "Java", "C++", "C#", "Go", "PHP",
	"Ruby", "Swift", "Kotlin", "Rust", "Scala", "R", "MATLAB",
	"React", "Node.js", "Angular", "Vue", "Express", "Next.js", "Django",
	"Flask", "Spring", "Laravel", ".NET",
	"SQL", "MongoDB", "PostgreSQL", "MySQL", "Redis", "SQLite", "Oracle",
	"Git", "Docker", "Kubernetes", "AWS", "Azure", "GCP", "Linux", "Jenkins",
	"Terraform", "CI/CD",
	"HTML", "CSS", "Sass", "Tailwind", "Bootstrap",
	"REST", "GraphQL", "API", "Microservices", "Figma", "Photoshop",
	"Agile", "Scrum", "Jira",
	"Leadership", "Communication", "Teamwork", "Problem Solving",
	"Project Management", "Time Management", "Critical Thinking",
}

// companySuffixTokens identify company-like lines in the work builder.
var companySuffixTokens = []string{
	"ltd", "llc", "inc", "pvt", "plc", "gmbh", "limited", "corp", "corporation",
	"(pvt)", "(private)", "co.",
}

// jobTitleTokens flag education-section leakage of work-experience lines.
var jobTitleTokens = []string{
	"engineer", "developer", "manager", "intern", "analyst", "consultant",
	"designer", "lecturer", "administrator",
}

// imperativeVerbs open job-responsibility bullets; lines starting with one
// are never institution headings.
var imperativeVerbs = []string{
	"developed", "built", "led", "managed", "created", "designed", "implemented",
	"worked", "collaborated", "maintained", "improved", "delivered", "launched",
	"automated", "migrated", "responsible", "assisted", "conducted", "organised",
	"organized",
}

// nameNoiseWords disqualify a first-line name candidate.
var nameNoiseWords = []string{"curriculum", "resume", "cv", "profile", "contact"}

// countryNames is the curated country table used for location resolution
// and institution-based country inference. Keys are lowercase; Name is the
// canonical rendering. Ordered so a scan over the table is deterministic.
var countryNames = []struct {
	Key  string
	Name string
}{
	{"sri lanka", "Sri Lanka"},
	{"united kingdom", "United Kingdom"},
	{"england", "United Kingdom"},
	{"scotland", "United Kingdom"},
	{"wales", "United Kingdom"},
	{"united states", "United States"},
	{"usa", "United States"},
	{"india", "India"},
	{"pakistan", "Pakistan"},
	{"bangladesh", "Bangladesh"},
	{"nepal", "Nepal"},
	{"nigeria", "Nigeria"},
	{"ghana", "Ghana"},
	{"kenya", "Kenya"},
	{"south africa", "South Africa"},
	{"china", "China"},
	{"japan", "Japan"},
	{"singapore", "Singapore"},
	{"malaysia", "Malaysia"},
	{"indonesia", "Indonesia"},
	{"philippines", "Philippines"},
	{"vietnam", "Vietnam"},
	{"thailand", "Thailand"},
	{"australia", "Australia"},
	{"new zealand", "New Zealand"},
	{"canada", "Canada"},
	{"ireland", "Ireland"},
	{"germany", "Germany"},
	{"france", "France"},
	{"spain", "Spain"},
	{"italy", "Italy"},
	{"netherlands", "Netherlands"},
	{"poland", "Poland"},
	{"portugal", "Portugal"},
	{"turkey", "Turkey"},
	{"egypt", "Egypt"},
	{"saudi arabia", "Saudi Arabia"},
	{"qatar", "Qatar"},
	{"united arab emirates", "United Arab Emirates"},
	{"brazil", "Brazil"},
}

// phonePatterns is the ordered locale pattern list; the first family with a
// match in the text wins and the search stops.
var phonePatterns = []struct {
	Name    string
	Pattern *regexp.Regexp
}{
	{"uk", regexp.MustCompile(`(?:\+44\s?\d{2,4}|\(?0\d{2,4}\)?)[\s.-]?\d{3,4}[\s.-]?\d{3,4}`)},
	{"sri-lanka", regexp.MustCompile(`(?:\+94|0)\s?\d{2}[\s.-]?\d{3}[\s.-]?\d{4}`)},
	{"us", regexp.MustCompile(`(?:\+1[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)},
	{"intl", regexp.MustCompile(`\+\d{1,3}[\s.-]?\d{1,4}[\s.-]?\d{2,4}[\s.-]?\d{2,6}`)},
}

// phoneTrialRegions are attempted in order when validating a matched
// candidate number.
var phoneTrialRegions = []string{"GB", "LK", "US", "IN", "NG", "PK", "AU", "CA"}

// emailDenylist filters generic and no-reply addresses.
var emailDenylist = []string{"noreply", "no-reply", "admin@", "info@"}

// portfolioHosts is the allowlist of creative/portfolio hosting platforms.
var portfolioHosts = []string{
	"behance.net", "dribbble.com", "medium.com", "dev.to", "wordpress.com",
	"wixsite.com", "notion.site", "vercel.app", "netlify.app", "github.io",
	"herokuapp.com", "carrd.co",
}

// personalSiteRe matches short generic-TLD personal domains treated as
// portfolio links.
var personalSiteRe = regexp.MustCompile(`^[a-z0-9-]+\.(?:me|dev|io|site|online|tech|design)$`)

var (
	yearRe      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	yearRangeRe = regexp.MustCompile(`\b((?:19|20)\d{2})\s*[-–—]\s*((?:19|20)\d{2})\b`)
	gpaRe       = regexp.MustCompile(`(?i)\bgpa[:\s]*([0-4](?:\.\d{1,2})?)\b`)
	bulletRe    = regexp.MustCompile(`^[\s]*[•●▪◦*‣·-]\s*`)
)

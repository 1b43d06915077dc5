package models

// Enumerated values accepted at the service and CLI boundaries.
const (
	EducationDiploma   = "Diploma"
	EducationBachelors = "Bachelor's"
	EducationMasters   = "Master's"
	EducationPhD       = "PhD"

	FieldEngineering    = "Engineering"
	FieldIT             = "IT"
	FieldBusiness       = "Business"
	FieldHealth         = "Health"
	FieldArts           = "Arts"
	FieldSocialSciences = "Social Sciences"

	LanguageBasic        = "Basic"
	LanguageIntermediate = "Intermediate"
	LanguageFluent       = "Fluent"
	LanguageAdvanced     = "Advanced"

	VisaStudent            = "Student"
	VisaPostStudy          = "Post-study"
	VisaWork               = "Work"
	VisaPermanentResidency = "Permanent Residency"

	RankingLow    = "Low"
	RankingMedium = "Medium"
	RankingHigh   = "High"

	RegionUK        = "UK"
	RegionCanada    = "Canada"
	RegionAustralia = "Australia"
	RegionEU        = "EU"
)

// Closed numeric ranges.
const (
	MinAge                  = 18
	MaxAge                  = 65
	MinYearsSinceGraduation = 0
	MaxYearsSinceGraduation = 40
)

var (
	EducationLevels       = []string{EducationDiploma, EducationBachelors, EducationMasters, EducationPhD}
	FieldsOfStudy         = []string{FieldEngineering, FieldIT, FieldBusiness, FieldHealth, FieldArts, FieldSocialSciences}
	LanguageProficiencies = []string{LanguageBasic, LanguageIntermediate, LanguageFluent, LanguageAdvanced}
	VisaTypes             = []string{VisaStudent, VisaPostStudy, VisaWork, VisaPermanentResidency}
	UniversityRankings    = []string{RankingLow, RankingMedium, RankingHigh}
	RegionsOfStudy        = []string{RegionUK, RegionCanada, RegionAustralia, RegionEU}
)

// Record is one observation to score. The pipeline assumes it has already
// been validated at the boundary and never re-checks enum membership.
type Record struct {
	EducationLevel       string `json:"education_level"`
	FieldOfStudy         string `json:"field_of_study"`
	LanguageProficiency  string `json:"language_proficiency"`
	VisaType             string `json:"visa_type"`
	UniversityRanking    string `json:"university_ranking"`
	RegionOfStudy        string `json:"region_of_study"`
	Age                  int    `json:"age"`
	YearsSinceGraduation int    `json:"years_since_graduation"`
}

// ReferenceRecord is the sample profile used by the CLI defaults and the
// regression fixture.
func ReferenceRecord() Record {
	return Record{
		EducationLevel:       EducationMasters,
		FieldOfStudy:         FieldEngineering,
		LanguageProficiency:  LanguageFluent,
		VisaType:             VisaPostStudy,
		UniversityRanking:    RankingHigh,
		RegionOfStudy:        RegionUK,
		Age:                  28,
		YearsSinceGraduation: 3,
	}
}

// UnknownCategory is a categorical value that has no indicator column in the
// model's feature list.
type UnknownCategory struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

package models

func enumProperty(description string, values []string) map[string]interface{} {
	enum := make([]interface{}, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"enum":        enum,
	}
}

func rangeProperty(description string, min, max int) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
		"minimum":     min,
		"maximum":     max,
	}
}

// RecordSchema is the JSON schema every prediction request must satisfy
// before it reaches the pipeline. It is derived from the enum sets above so
// the two cannot drift.
func RecordSchema() map[string]interface{} {
	return map[string]interface{}{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"title":                "PredictionInput",
		"type":                 "object",
		"additionalProperties": false,
		"required": []interface{}{
			"education_level",
			"field_of_study",
			"language_proficiency",
			"visa_type",
			"university_ranking",
			"region_of_study",
			"age",
			"years_since_graduation",
		},
		"properties": map[string]interface{}{
			"education_level":        enumProperty("Education level", EducationLevels),
			"field_of_study":         enumProperty("Field of study", FieldsOfStudy),
			"language_proficiency":   enumProperty("Language proficiency level", LanguageProficiencies),
			"visa_type":              enumProperty("Visa type", VisaTypes),
			"university_ranking":     enumProperty("University ranking", UniversityRankings),
			"region_of_study":        enumProperty("Region of study (UK, Canada, Australia, EU)", RegionsOfStudy),
			"age":                    rangeProperty("Age between 18 and 65", MinAge, MaxAge),
			"years_since_graduation": rangeProperty("Years since graduation (0-40)", MinYearsSinceGraduation, MaxYearsSinceGraduation),
		},
	}
}

package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins field errors into one line for logs and CLI output.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// Schema is a compiled JSON schema. It is safe for concurrent use.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// Compile compiles a schema given as a Go value (map, struct) or as raw JSON
// text.
func Compile(name string, schema interface{}) (*Schema, error) {
	var loader gojsonschema.JSONLoader
	switch s := schema.(type) {
	case string:
		loader = gojsonschema.NewStringLoader(s)
	case []byte:
		loader = gojsonschema.NewBytesLoader(s)
	default:
		loader = gojsonschema.NewGoLoader(s)
	}

	compiled, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &Schema{name: name, schema: compiled}, nil
}

// MustCompile is Compile for package-level schemas.
func MustCompile(name string, schema interface{}) *Schema {
	s, err := Compile(name, schema)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateBytes validates a JSON document. A non-nil error means the
// document could not be parsed at all.
func (s *Schema) ValidateBytes(doc []byte) (*ValidationResult, error) {
	return s.validate(gojsonschema.NewBytesLoader(doc))
}

// ValidateValue validates a Go value as if it had been marshalled to JSON.
func (s *Schema) ValidateValue(doc interface{}) (*ValidationResult, error) {
	return s.validate(gojsonschema.NewGoLoader(doc))
}

func (s *Schema) validate(doc gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := s.schema.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("validate against %s: %w", s.name, err)
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   fieldOf(desc),
			Message: desc.Description(),
			Code:    codeOf(desc.Type()),
		})
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })

	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: errs,
	}, nil
}

// fieldOf reports the offending property. Required and additional-property
// errors are raised on the parent object, so the property name comes from
// the details instead.
func fieldOf(desc gojsonschema.ResultError) string {
	if prop, ok := desc.Details()["property"].(string); ok && prop != "" {
		if desc.Field() == "(root)" {
			return prop
		}
		return desc.Field() + "." + prop
	}
	return desc.Field()
}

func codeOf(resultType string) string {
	switch resultType {
	case "required":
		return "REQUIRED_FIELD_MISSING"
	case "invalid_type":
		return "INVALID_TYPE"
	case "enum":
		return "INVALID_ENUM_VALUE"
	case "number_gte":
		return "MINIMUM_VIOLATION"
	case "number_lte":
		return "MAXIMUM_VIOLATION"
	case "additional_property_not_allowed":
		return "EXTRA_FIELD"
	case "array_min_items":
		return "MIN_ITEMS_VIOLATION"
	case "unique":
		return "DUPLICATE_ITEMS"
	case "string_gte":
		return "MIN_LENGTH_VIOLATION"
	}
	return strings.ToUpper(resultType)
}

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []interface{}{"level", "age"},
	"properties": map[string]interface{}{
		"level": map[string]interface{}{"type": "string", "enum": []interface{}{"Low", "High"}},
		"age":   map[string]interface{}{"type": "integer", "minimum": 18, "maximum": 65},
	},
}

func TestSchema_ValidateBytes(t *testing.T) {
	s := MustCompile("test", testSchema)

	tests := []struct {
		name      string
		doc       string
		valid     bool
		wantField string
		wantCode  string
	}{
		{"valid lower bound", `{"level":"Low","age":18}`, true, "", ""},
		{"valid upper bound", `{"level":"High","age":65}`, true, "", ""},
		{"below minimum", `{"level":"Low","age":17}`, false, "age", "MINIMUM_VIOLATION"},
		{"above maximum", `{"level":"Low","age":66}`, false, "age", "MAXIMUM_VIOLATION"},
		{"bad enum", `{"level":"Medium","age":30}`, false, "level", "INVALID_ENUM_VALUE"},
		{"missing field", `{"level":"Low"}`, false, "age", "REQUIRED_FIELD_MISSING"},
		{"extra field", `{"level":"Low","age":30,"x":1}`, false, "x", "EXTRA_FIELD"},
		{"fractional age", `{"level":"Low","age":30.5}`, false, "age", "INVALID_TYPE"},
		{"string age", `{"level":"Low","age":"30"}`, false, "age", "INVALID_TYPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.ValidateBytes([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			if tt.valid {
				assert.Empty(t, result.Errors)
				return
			}
			require.NotEmpty(t, result.Errors)
			assert.Equal(t, tt.wantField, result.Errors[0].Field)
			assert.Equal(t, tt.wantCode, result.Errors[0].Code)
			assert.Contains(t, result.Summary(), tt.wantField)
		})
	}
}

func TestSchema_ValidateBytes_Unparseable(t *testing.T) {
	s := MustCompile("test", testSchema)
	_, err := s.ValidateBytes([]byte(`{"level":`))
	assert.Error(t, err)
}

func TestSchema_ValidateValue(t *testing.T) {
	s := MustCompile("test", testSchema)

	type doc struct {
		Level string `json:"level"`
		Age   int    `json:"age"`
	}
	result, err := s.ValidateValue(doc{Level: "High", Age: 40})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestCompile_RawJSON(t *testing.T) {
	s, err := Compile("names", `{"type":"array","items":{"type":"string"},"minItems":1}`)
	require.NoError(t, err)

	result, err := s.ValidateBytes([]byte(`[]`))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "MIN_ITEMS_VIOLATION", result.Errors[0].Code)

	_, err = Compile("broken", `{"type": 12}`)
	assert.Error(t, err)
}

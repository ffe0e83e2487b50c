package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coverPartSchema = "../../schemas/cover_part.schema.json"

func TestValidateJSON_CoverPartSchema(t *testing.T) {
	tests := []struct {
		name      string
		jsonFile  string
		wantError bool
	}{
		{name: "valid cover", jsonFile: "cover_part_valid.json"},
		{name: "missing required field", jsonFile: "cover_part_missing_field.json", wantError: true},
		{name: "wrong type", jsonFile: "cover_part_wrong_type.json", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(coverPartSchema, filepath.Join("testdata", tt.jsonFile))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var schemaErr *SchemaLoadError
			if errors.As(err, &schemaErr) {
				t.Fatalf("unexpected SchemaLoadError (schema loading failed): %v", schemaErr)
			}
			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError, got %T", err)
			assert.Greater(t, len(validationErr.Errors), 0)
		})
	}
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	err := ValidateJSON("testdata/nonexistent_schema.json", filepath.Join("testdata", "cover_part_valid.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	err := ValidateJSON(coverPartSchema, "testdata/nonexistent_json.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	tmpDir := t.TempDir()
	malformedJSON := filepath.Join(tmpDir, "malformed.json")
	require.NoError(t, os.WriteFile(malformedJSON, []byte("{ invalid json }"), 0644))

	assert.Error(t, ValidateJSON(coverPartSchema, malformedJSON))
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["title"],
		"properties": {
			"title": {"type": "string"}
		}
	}`

	assert.NoError(t, ValidateJSONString(schemaContent, `{"title": "Key takeaways"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["title"],
		"properties": {
			"title": {"type": "string"}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"intro": "x"}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "content.title", Message: "is required"},
			{Field: "colorscheme", Message: "must be one of the following: \"light\", \"dark\""},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "content.title")
	assert.Contains(t, errorMsg, "colorscheme")
}

func TestSchema_Unknown(t *testing.T) {
	_, err := Schema("hero_banner")
	var unknown *UnknownSchemaError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "hero_banner", unknown.Kind)

	err = ValidateModule("hero_banner", []byte(`{}`))
	assert.True(t, errors.As(err, &unknown))
}

func TestValidateModule_LessonState(t *testing.T) {
	valid := `{"content": {"title": "Lessons", "lessons": [
		{"image": "a.png", "title": "Intro", "type": "lesson", "state": "completed"},
		{"image": "b.png", "title": "Next", "type": "quiz", "state": "in_progress"},
		{"image": "c.png", "title": "Later", "type": "lesson", "state": "todo"}
	]}}`
	assert.NoError(t, ValidateModule("list_of_lessons", []byte(valid)))

	invalid := `{"content": {"title": "Lessons", "lessons": [
		{"image": "a.png", "title": "Intro", "type": "lesson", "state": "not_started"}
	]}}`
	err := ValidateModule("list_of_lessons", []byte(invalid))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "content.lessons.0.state", validationErr.Errors[0].Field)
}

func TestValidateModule_RejectsExtraFields(t *testing.T) {
	data := `{"content": {"quote": "q", "author": "a", "year": "1790"}}`

	err := ValidateModule("quote", []byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year")
}

func TestValidateModule_RejectsMissingColorscheme(t *testing.T) {
	data := `{"content": {"intro": "Back", "title": "Lesson 2", "cta": "Review"}}`

	err := ValidateModule("connection_back", []byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colorscheme")
}

func TestValidateModule_CachesCompiledSchema(t *testing.T) {
	data := []byte(`{"content": {"quote": "q", "author": "a"}}`)
	require.NoError(t, ValidateModule("quote", data))
	require.NoError(t, ValidateModule("quote", data))

	compiledMu.Lock()
	defer compiledMu.Unlock()
	assert.Contains(t, compiled, "quote")
}

package schemas_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/academy-frames/internal/schemas"
	"github.com/jonathan/academy-frames/internal/types"
	schemafiles "github.com/jonathan/academy-frames/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, kind := range types.Kinds() {
		schemaFile := string(kind) + ".schema.json"
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ClosedObjects(t *testing.T) {
	for _, kind := range types.Kinds() {
		schemaFile := string(kind) + ".schema.json"
		t.Run(schemaFile, func(t *testing.T) {
			data, err := schemafiles.FS.ReadFile(schemaFile)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj))

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Equal(t, "object", schemaObj["type"])
			assert.Equal(t, false, schemaObj["additionalProperties"])
			assertEveryPropertyRequired(t, schemaObj, "(root)")
		})
	}
}

// assertEveryPropertyRequired walks object schemas and checks that no
// declared property is optional.
func assertEveryPropertyRequired(t *testing.T, node map[string]interface{}, path string) {
	t.Helper()

	if props, ok := node["properties"].(map[string]interface{}); ok {
		required, _ := node["required"].([]interface{})
		names := make(map[string]bool, len(required))
		for _, r := range required {
			names[r.(string)] = true
		}
		for name, sub := range props {
			assert.True(t, names[name], "%s.%s should be required", path, name)
			if subObj, ok := sub.(map[string]interface{}); ok {
				assertEveryPropertyRequired(t, subObj, path+"."+name)
			}
		}
	}
	if items, ok := node["items"].(map[string]interface{}); ok {
		assertEveryPropertyRequired(t, items, path+"[]")
	}
	if defs, ok := node["definitions"].(map[string]interface{}); ok {
		for name, def := range defs {
			if defObj, ok := def.(map[string]interface{}); ok {
				assertEveryPropertyRequired(t, defObj, "#"+name)
			}
		}
	}
}

func TestSchemas_AgreeWithGoShapes(t *testing.T) {
	// An empty module marshalled from Go must satisfy its own schema once
	// enum fields carry a declared value.
	for _, kind := range types.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			m, err := types.NewModule(kind)
			require.NoError(t, err)
			fillEnums(m)

			data, err := json.Marshal(m)
			require.NoError(t, err)

			err = schemas.ValidateModule(string(kind), data)
			assert.NoError(t, err)
		})
	}
}

func fillEnums(m types.Module) {
	switch v := m.(type) {
	case *types.CoverCaseStudyModule:
		v.Colorscheme = types.ColorschemeLight
	case *types.CoverPartModule:
		v.Colorscheme = types.ColorschemeLight
	case *types.CoverSubpartModule:
		v.Colorscheme = types.ColorschemeLight
	case *types.ConnectionBackModule:
		v.Colorscheme = types.ColorschemeDark
	case *types.ConnectionNextModule:
		v.Colorscheme = types.ColorschemeDark
	case *types.KeyConceptsModule:
		v.Colorscheme = types.ColorschemeDark
		v.Content.Concepts = []types.Concept{}
	case *types.PhotoVerticalModule:
		v.Colorscheme = types.ColorschemeLight
	case *types.TextModule:
		v.Colorscheme = types.ColorschemeDark
		v.Content.Texts = []types.TextElement{}
	case *types.KeyResourcesModule:
		v.Content.Resources = []types.Resource{}
	case *types.KeyTakeawaysModule:
		v.Content.Takeaways = []types.Takeaway{}
	case *types.LearningObjectivesModule:
		v.Content.Takeaways = []types.Takeaway{}
	case *types.ListOfLessonsModule:
		v.Content.Lessons = []types.LessonThumbnail{
			{Type: types.LessonTypeLesson, State: types.LessonTodo},
		}
	}
}

package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/academy-frames/internal/figma"
	"github.com/jonathan/academy-frames/internal/pipeline"
	"github.com/jonathan/academy-frames/internal/schemas"
	"github.com/jonathan/academy-frames/internal/types"
)

const document = `{
  "name": "Module 3",
  "version": "12",
  "document": {"id": "0:0", "type": "DOCUMENT", "children": [
    {"id": "0:1", "name": "Slides", "type": "CANVAS", "children": [
      {"id": "1:1", "name": "m1_cover", "type": "FRAME"},
      {"id": "1:2", "name": "notes", "type": "FRAME"}
    ]}
  ]}
}`

func TestPrintDocument(t *testing.T) {
	doc, err := figma.DecodeDocument([]byte(document))
	require.NoError(t, err)

	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintDocument(doc, func(name string) (types.Kind, bool) {
		if name == "m1_cover" {
			return types.KindM1, true
		}
		return "", false
	})
	output := buf.String()

	assert.Contains(t, output, "DOCUMENT")
	assert.Contains(t, output, "Module 3")
	assert.Contains(t, output, "Slides (2 frames)")
	assert.Regexp(t, `m1_cover\s+m1`, output)
	assert.Regexp(t, `notes\s+-`, output)
}

func TestPrintDocument_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocument(nil, nil)
	assert.Empty(t, buf.String())
}

func TestPrintSourceResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	id := uuid.New()
	sr := &pipeline.SourceResult{
		Source:       "KEY",
		DocumentName: "Module 3",
		ExportID:     &id,
		Frames: []*types.Frame{
			{Name: "quote_large", Kind: types.KindQuote},
		},
		Skipped:  []pipeline.Skip{{Frame: "notes"}},
		Failures: []pipeline.Failure{{Frame: "connection_back", Error: "no TEXT node matching \"cta\"\nmore"}},
	}
	p.PrintSourceResult(sr)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTION RESULT")
	assert.Contains(t, output, id.String())
	assert.Contains(t, output, "Modules:  1  Skipped: 1  Failed: 1")
	assert.Contains(t, output, "01 quote")
	assert.Contains(t, output, "⚠ connection_back")
	assert.NotContains(t, output, "more")
}

func TestPrintSourceResult_TruncatesFrames(t *testing.T) {
	var buf bytes.Buffer
	sr := &pipeline.SourceResult{Source: "KEY"}
	for i := 0; i < maxItemsToShow+2; i++ {
		sr.Frames = append(sr.Frames, &types.Frame{Name: "quote", Kind: types.KindQuote})
	}
	NewPrinter(&buf).PrintSourceResult(sr)
	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintValidation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf).PrintValidation(types.KindQuote, nil)
		assert.Contains(t, buf.String(), "VALID QUOTE MODULE")
	})

	t.Run("type errors", func(t *testing.T) {
		var buf bytes.Buffer
		err := &types.ValidationError{Kind: types.KindQuote, Errors: []types.FieldError{
			{Field: "content.author", Message: "is required"},
		}}
		NewPrinter(&buf).PrintValidation(types.KindQuote, err)
		assert.Contains(t, buf.String(), "INVALID QUOTE MODULE")
		assert.Contains(t, buf.String(), "content.author")
	})

	t.Run("schema errors", func(t *testing.T) {
		var buf bytes.Buffer
		err := &schemas.ValidationError{Errors: []schemas.FieldError{
			{Field: "colorscheme", Message: "must be one of light, dark"},
		}}
		NewPrinter(&buf).PrintValidation(types.KindText, err)
		assert.Contains(t, buf.String(), "1 schema problems")
	})

	t.Run("other", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf).PrintValidation(types.KindText, errors.New("bad json\nat line 2"))
		assert.Contains(t, buf.String(), "bad json")
		assert.NotContains(t, buf.String(), "line 2")
	})
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("T", strings.Repeat("x", 200))
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", false)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Str("frame", "m1_cover").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"frame":"m1_cover"`)

	_, err = NewLogger(&buf, "chatty", false)
	assert.Error(t, err)
}

func TestNewLogger_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "", true)
	require.NoError(t, err)

	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), `"message"`)
}

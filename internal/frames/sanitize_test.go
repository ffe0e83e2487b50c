package frames

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_Text(t *testing.T) {
	s := NewSanitizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain text untouched", input: "Human development", expected: "Human development"},
		{name: "tags stripped", input: "<p>Hello <b>world</b></p>", expected: "Hello world"},
		{name: "script content dropped", input: "<script>alert(1)</script>Safe", expected: "Safe"},
		{name: "entities kept readable", input: "Tom & Jerry", expected: "Tom & Jerry"},
		{name: "inner whitespace collapsed", input: "  too   many\tspaces  ", expected: "too many spaces"},
		{name: "line separator", input: "first\u2028second", expected: "first\nsecond"},
		{name: "crlf", input: "first\r\nsecond", expected: "first\nsecond"},
		{name: "blank lines squeezed", input: "a\n\n\n\nb", expected: "a\n\nb"},
		{name: "whitespace only", input: " \n\t ", expected: ""},
		{name: "bare less-than kept", input: "if a<b then c", expected: "if a<b then c"},
		{name: "angle brackets around words kept", input: "x <y and z> w", expected: "x <y and z> w"},
		{name: "spaced comparison kept", input: "a < b > c", expected: "a < b > c"},
		{name: "unknown tag next to real markup", input: "<i>x</i> <y and z>", expected: "x <y and z>"},
		{name: "comment dropped", input: "before<!-- note -->after", expected: "beforeafter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.Text(tt.input))
		})
	}
}

package frames

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sanitizer strips markup from design text and normalizes its whitespace.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a sanitizer backed by a strict policy: no tags survive.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text cleans a single text layer.
func (s *Sanitizer) Text(content string) string {
	if content == "" {
		return ""
	}

	// Figma writes soft line breaks as LINE SEPARATOR and paragraphs as PARAGRAPH SEPARATOR.
	content = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u2028", "\n", "\u2029", "\n").Replace(content)

	content = s.policy.Sanitize(escapeStrayBrackets(content))
	// The policy escapes entities; the JSON output wants plain text.
	content = html.UnescapeString(content)

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		cleaned = append(cleaned, line)
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// escapeStrayBrackets escapes every '<' that does not open a known HTML
// element, so comparisons like "a<b" or "<y and z>" read as text.
func escapeStrayBrackets(content string) string {
	if !strings.Contains(content, "<") {
		return content
	}

	z := html.NewTokenizer(strings.NewReader(content))
	var sb strings.Builder
	consumed := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())
		consumed += len(raw)

		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) != 0 {
				sb.WriteString(raw)
				continue
			}
			sb.WriteString(escapeLT(raw))
		case html.TextToken:
			sb.WriteString(escapeLT(raw))
		default:
			// comments and doctypes are left for the policy to drop
			sb.WriteString(raw)
		}
	}
	// An unterminated tag at the end never becomes a token.
	if consumed < len(content) {
		sb.WriteString(escapeLT(content[consumed:]))
	}
	return sb.String()
}

func escapeLT(s string) string {
	return strings.ReplaceAll(s, "<", "&lt;")
}

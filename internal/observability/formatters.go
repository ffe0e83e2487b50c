// Package observability provides logging setup and formatted output for verbose CLI mode.
package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/academy-frames/internal/figma"
	"github.com/jonathan/academy-frames/internal/pipeline"
	"github.com/jonathan/academy-frames/internal/schemas"
	"github.com/jonathan/academy-frames/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// KindFunc maps a frame name to its module kind.
type KindFunc func(name string) (types.Kind, bool)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs the pages of a document and the frames on each,
// marking which module kind every frame maps to.
func (p *Printer) PrintDocument(doc *figma.Document, kindOf KindFunc) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Document: %s\n", doc.Name))
	if doc.Version != "" {
		sb.WriteString(fmt.Sprintf("Version:  %s\n", doc.Version))
	}

	for _, page := range doc.Pages() {
		frames := doc.Frames(page.Name)
		sb.WriteString(fmt.Sprintf("\n%s (%d frames)\n", page.Name, len(frames)))
		for _, f := range frames {
			kind := "-"
			if kindOf != nil {
				if k, ok := kindOf(f.Name); ok {
					kind = string(k)
				}
			}
			sb.WriteString(fmt.Sprintf("  • %-28s %s\n", truncate(f.Name, 28), kind))
		}
	}

	p.printBox("DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSourceResult outputs a summary of one extracted document.
func (p *Printer) PrintSourceResult(sr *pipeline.SourceResult) {
	if sr == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:   %s\n", sr.Source))
	if sr.DocumentName != "" {
		sb.WriteString(fmt.Sprintf("Document: %s\n", sr.DocumentName))
	}
	if sr.ExportID != nil {
		sb.WriteString(fmt.Sprintf("Export:   %s\n", sr.ExportID))
	}
	if sr.OutputDir != "" {
		sb.WriteString(fmt.Sprintf("Output:   %s\n", sr.OutputDir))
	}
	sb.WriteString(fmt.Sprintf("Modules:  %d  Skipped: %d  Failed: %d\n",
		len(sr.Frames), len(sr.Skipped), len(sr.Failures)))

	if len(sr.Frames) > 0 {
		sb.WriteString("\n")
		count := min(len(sr.Frames), maxItemsToShow)
		for i := 0; i < count; i++ {
			f := sr.Frames[i]
			sb.WriteString(fmt.Sprintf("%02d %-20s %s\n", i+1, f.Kind, f.Name))
		}
		if len(sr.Frames) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("   ... and %d more\n", len(sr.Frames)-maxItemsToShow))
		}
	}

	if len(sr.Failures) > 0 {
		sb.WriteString("\nFailures:\n")
		for _, f := range sr.Failures {
			name := f.Frame
			if name == "" {
				name = "(document)"
			}
			sb.WriteString(fmt.Sprintf("⚠ %s\n", name))
			sb.WriteString(fmt.Sprintf("  %s\n", firstLine(f.Error)))
		}
	}

	p.printBox("EXTRACTION RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs whether a module conforms, listing field errors.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(kind types.Kind, err error) {
	if err == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("✅ VALID %s MODULE", strings.ToUpper(string(kind))))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	var typeErr *types.ValidationError
	var schemaErr *schemas.ValidationError
	switch {
	case errors.As(err, &typeErr):
		sb.WriteString(fmt.Sprintf("Found %d problems:\n\n", len(typeErr.Errors)))
		for _, fe := range typeErr.Errors {
			sb.WriteString(fmt.Sprintf("⚠ %s\n  %s\n", fe.Field, fe.Message))
		}
	case errors.As(err, &schemaErr):
		sb.WriteString(fmt.Sprintf("Found %d schema problems:\n\n", len(schemaErr.Errors)))
		for _, fe := range schemaErr.Errors {
			sb.WriteString(fmt.Sprintf("⚠ %s\n  %s\n", fe.Field, fe.Message))
		}
	default:
		sb.WriteString(firstLine(err.Error()))
	}

	p.printBox(fmt.Sprintf("INVALID %s MODULE", strings.ToUpper(string(kind))), strings.TrimSuffix(sb.String(), "\n"))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

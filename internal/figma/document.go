package figma

import (
	"encoding/json"
	"fmt"
	"io"
)

// Document is a Figma file: its DOCUMENT node plus file-level metadata.
type Document struct {
	Root         *Node
	Name         string
	LastModified string
	Version      string
	// Metadata holds the remaining top-level fields of the file response.
	Metadata map[string]json.RawMessage
}

// ParseDocument reads a file response, as returned by GET /v1/files/:key.
func ParseDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return DecodeDocument(data)
}

// DecodeDocument decodes a file response held in memory.
func DecodeDocument(data []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse document JSON: %w", err)
	}

	rawRoot, ok := fields["document"]
	if !ok {
		return nil, fmt.Errorf("file response has no document node")
	}
	delete(fields, "document")

	var root Node
	if err := json.Unmarshal(rawRoot, &root); err != nil {
		return nil, fmt.Errorf("failed to parse document node: %w", err)
	}
	if root.Type != NodeDocument {
		return nil, fmt.Errorf("expected a %s node, got %s", NodeDocument, root.Type)
	}

	doc := &Document{Root: &root, Metadata: fields}
	doc.Name = stringField(fields, "name")
	doc.LastModified = stringField(fields, "lastModified")
	doc.Version = stringField(fields, "version")
	return doc, nil
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Pages returns the visible canvases of the document in file order.
func (d *Document) Pages() []*Node {
	var pages []*Node
	for _, child := range d.Root.Children {
		if child.Type == NodeCanvas && child.IsVisible() {
			pages = append(pages, child)
		}
	}
	return pages
}

// Frames returns the visible top-level frames of the named pages, in
// canvas order. With no names, frames of every page are returned.
func (d *Document) Frames(pageNames ...string) []*Node {
	wanted := make(map[string]bool, len(pageNames))
	for _, name := range pageNames {
		wanted[name] = true
	}

	var frames []*Node
	for _, page := range d.Pages() {
		if len(wanted) > 0 && !wanted[page.Name] {
			continue
		}
		for _, child := range SortNodes(page.Children) {
			if child.Type == NodeFrame && child.IsVisible() {
				frames = append(frames, child)
			}
		}
	}
	return frames
}

package frames

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/academy-frames/internal/figma"
	"github.com/jonathan/academy-frames/internal/types"
)

// Node name patterns shared by several frames.
const (
	patternImage       = "image"
	patternTitle       = "title"
	patternIntro       = "intro"
	patternCTA         = "cta"
	patternLessonID    = "lesson_?[iI]d"
	patternIntroGroup  = "module|chapter|lesson"
	patternColorscheme = "^colorscheme$"
)

// reader looks up child nodes of a frame, or of a group inside it, and
// reports missing ones against the frame they belong to.
type reader struct {
	frame     string
	node      *figma.Node
	sanitizer *Sanitizer
}

func (r reader) within(node *figma.Node) reader {
	return reader{frame: r.frame, node: node, sanitizer: r.sanitizer}
}

func (r reader) find(t figma.NodeType, pattern string) (*figma.Node, error) {
	node, err := r.node.SelectNode(t, pattern)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, &MissingNodeError{Frame: r.frame, Type: t, Pattern: pattern}
	}
	return node, nil
}

// text returns the cleaned characters of the first TEXT node matching pattern.
func (r reader) text(pattern string) (string, error) {
	node, err := r.find(figma.NodeText, pattern)
	if err != nil {
		return "", err
	}
	return r.sanitizer.Text(node.Characters), nil
}

// textOr is text with a fallback for a missing node.
func (r reader) textOr(pattern, fallback string) (string, error) {
	node, err := r.node.SelectNode(figma.NodeText, pattern)
	if err != nil {
		return "", err
	}
	if node == nil {
		return fallback, nil
	}
	return r.sanitizer.Text(node.Characters), nil
}

func (r reader) group(pattern string) (reader, error) {
	node, err := r.find(figma.NodeGroup, pattern)
	if err != nil {
		return reader{}, err
	}
	return r.within(node), nil
}

// groups returns every GROUP matching pattern, in canvas order. A recursive
// search skips wrapper groups whose own descendants match.
func (r reader) groups(pattern string, recursive bool) ([]reader, error) {
	var nodes []*figma.Node
	var err error
	if recursive {
		nodes, err = r.node.SelectInnermostNodes(figma.NodeGroup, pattern)
	} else {
		nodes, err = r.node.SelectNodes(figma.NodeGroup, pattern, false)
	}
	if err != nil {
		return nil, err
	}
	out := make([]reader, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, r.within(n))
	}
	return out, nil
}

func (r reader) has(t figma.NodeType, pattern string) (bool, error) {
	node, err := r.node.SelectNode(t, pattern)
	return node != nil, err
}

// imageSource is the name of the first RECTANGLE under the node. Designers
// name image fills after the asset they stand for.
func (r reader) imageSource() (string, error) {
	rect, err := r.find(figma.NodeRectangle, figma.AnyName)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(rect.Name), nil
}

// captionedImage reads the image source and its first TEXT as a caption.
func (r reader) captionedImage() (types.CaptionedImage, error) {
	src, err := r.imageSource()
	if err != nil {
		return types.CaptionedImage{}, err
	}
	caption, err := r.textOr(figma.AnyName, "")
	if err != nil {
		return types.CaptionedImage{}, err
	}
	return types.CaptionedImage{Src: src, Caption: caption}, nil
}

// image reads the source from the GROUP named image.
func (r reader) image() (string, error) {
	g, err := r.group(patternImage)
	if err != nil {
		return "", err
	}
	return g.imageSource()
}

func (r reader) imageWithCaption() (types.CaptionedImage, error) {
	g, err := r.group(patternImage)
	if err != nil {
		return types.CaptionedImage{}, err
	}
	return g.captionedImage()
}

// intro reads "<Label> <number>" from a module, chapter or lesson group, or
// the plain TEXT intro when the frame has no such group.
func (r reader) intro() (string, error) {
	node, err := r.node.SelectNode(figma.NodeGroup, patternIntroGroup)
	if err != nil {
		return "", err
	}
	if node == nil {
		return r.text(patternIntro)
	}

	g := r.within(node)
	label, err := g.text("label")
	if err != nil {
		return "", err
	}
	number, err := g.text("number")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(cases.Title(language.English).String(label) + " " + number), nil
}

// lessonID reads the lesson identifier, falling back to the frame node id.
func (r reader) lessonID() (string, error) {
	return r.textOr(patternLessonID, r.node.ID)
}

// colorscheme takes the frame name suffix, then a TEXT colorscheme layer,
// then the kind's default.
func (r reader) colorscheme(suffix types.Colorscheme, fallback types.Colorscheme) (types.Colorscheme, error) {
	if suffix != "" {
		return suffix, nil
	}
	node, err := r.node.SelectNode(figma.NodeText, patternColorscheme)
	if err != nil {
		return "", err
	}
	if node != nil {
		return types.ParseColorscheme(strings.ToLower(r.sanitizer.Text(node.Characters)))
	}
	return fallback, nil
}

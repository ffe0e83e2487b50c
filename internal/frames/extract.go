package frames

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/academy-frames/internal/figma"
	"github.com/jonathan/academy-frames/internal/types"
)

// extractFunc builds one module kind from a frame.
type extractFunc func(r reader, colorscheme types.Colorscheme) (types.Module, error)

type rule struct {
	pattern *regexp.Regexp
	kind    types.Kind
	extract extractFunc
}

// rules are tried in order against the frame name, after an optional
// colorscheme suffix has been removed.
var rules = []rule{
	{regexp.MustCompile(`^c1(_cover)?$`), types.KindC1, extractC1},
	{regexp.MustCompile(`^l1(_cover)?$`), types.KindL1, extractL1},
	{regexp.MustCompile(`^m1(_cover)?$`), types.KindM1, extractM1},
	{regexp.MustCompile(`^case_study_cover$`), types.KindCoverCaseStudy, extractCoverCaseStudy},
	{regexp.MustCompile(`^(part|module|chapter)_cover$`), types.KindCoverPart, extractCoverPart},
	{regexp.MustCompile(`^(subpart|lesson_part)_cover$`), types.KindCoverSubpart, extractCoverSubpart},
	{regexp.MustCompile(`^connection_back$`), types.KindConnectionBack, extractConnectionBack},
	{regexp.MustCompile(`^connection_next$`), types.KindConnectionNext, extractConnectionNext},
	{regexp.MustCompile(`^key_resources$`), types.KindKeyResources, extractKeyResources},
	{regexp.MustCompile(`^key_takeaways$`), types.KindKeyTakeaways, extractKeyTakeaways},
	{regexp.MustCompile(`^learning_objectives$`), types.KindLearningObjectives, extractLearningObjectives},
	{regexp.MustCompile(`^(list_of_lessons|lesson_overview)$`), types.KindListOfLessons, extractListOfLessons},
	{regexp.MustCompile(`_outro$`), types.KindModuleChapterOutro, extractOutro},
	{regexp.MustCompile(`^quote`), types.KindQuote, extractQuote},
	{regexp.MustCompile(`^key_concepts$`), types.KindKeyConcepts, extractKeyConcepts},
	{regexp.MustCompile(`^photo_vertical$`), types.KindPhotoVertical, extractPhotoVertical},
	{regexp.MustCompile(`^text$`), types.KindText, extractText},
}

var colorschemeSuffix = regexp.MustCompile(`[_-](light|dark)$`)

// splitName separates a trailing _light or _dark from a frame name.
func splitName(name string) (string, types.Colorscheme) {
	name = strings.ToLower(strings.TrimSpace(name))
	if m := colorschemeSuffix.FindStringSubmatch(name); m != nil {
		return strings.TrimSuffix(name, m[0]), types.Colorscheme(m[1])
	}
	return name, ""
}

func match(name string) (rule, types.Colorscheme, bool) {
	base, suffix := splitName(name)
	for _, r := range rules {
		if r.pattern.MatchString(base) {
			return r, suffix, true
		}
	}
	return rule{}, "", false
}

// DefaultColorscheme is the colorscheme a kind gets when the frame sets none.
func DefaultColorscheme(kind types.Kind) types.Colorscheme {
	switch kind {
	case types.KindText, types.KindKeyConcepts:
		return types.ColorschemeDark
	default:
		return types.ColorschemeLight
	}
}

// Extractor turns frames into modules.
type Extractor struct {
	sanitizer *Sanitizer
}

// NewExtractor creates an extractor with a strict text sanitizer.
func NewExtractor() *Extractor {
	return &Extractor{sanitizer: NewSanitizer()}
}

// KindOf returns the module kind a frame name maps to.
func (e *Extractor) KindOf(name string) (types.Kind, bool) {
	r, _, ok := match(name)
	return r.kind, ok
}

// Extract converts one top-level frame. Unknown frame names yield
// ErrUnsupportedFrame; frames lacking a mandatory node yield a
// *MissingNodeError wrapped in an *ExtractError.
func (e *Extractor) Extract(frame *figma.Node) (*types.Frame, error) {
	if frame == nil {
		return nil, errors.New("nil frame")
	}
	r, suffix, ok := match(frame.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFrame, frame.Name)
	}

	rd := reader{frame: frame.Name, node: frame, sanitizer: e.sanitizer}

	var colorscheme types.Colorscheme
	if types.HasColorscheme(r.kind) {
		c, err := rd.colorscheme(suffix, DefaultColorscheme(r.kind))
		if err != nil {
			return nil, &ExtractError{Frame: frame.Name, NodeID: frame.ID, Cause: err}
		}
		colorscheme = c
	}

	module, err := r.extract(rd, colorscheme)
	if err != nil {
		return nil, &ExtractError{Frame: frame.Name, NodeID: frame.ID, Cause: err}
	}

	return &types.Frame{
		NodeID: frame.ID,
		Name:   frame.Name,
		Kind:   r.kind,
		Module: module,
	}, nil
}

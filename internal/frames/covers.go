package frames

import (
	"github.com/jonathan/academy-frames/internal/types"
)

// Call to action shown on covers that do not define their own.
const (
	DefaultCoverCTA          = "Scroll, tab or use your keyboard to move ahead"
	DefaultConnectionNextCTA = "Start learning"
)

func extractC1(r reader, _ types.Colorscheme) (types.Module, error) {
	var m types.C1Module
	var err error
	if m.Content.Image, err = r.image(); err != nil {
		return nil, err
	}
	if m.Content.LessonID, err = r.lessonID(); err != nil {
		return nil, err
	}
	if m.Content.Intro, err = r.intro(); err != nil {
		return nil, err
	}
	if m.Content.Title, err = r.text(patternTitle); err != nil {
		return nil, err
	}
	if m.Content.CTA, err = r.textOr(patternCTA, DefaultCoverCTA); err != nil {
		return nil, err
	}
	return &m, nil
}

func extractL1(r reader, _ types.Colorscheme) (types.Module, error) {
	var m types.L1Module
	var err error
	if m.Content.Image, err = r.image(); err != nil {
		return nil, err
	}
	if m.Content.LessonID, err = r.lessonID(); err != nil {
		return nil, err
	}
	if m.Content.Intro, err = r.intro(); err != nil {
		return nil, err
	}
	if m.Content.Title, err = r.text(patternTitle); err != nil {
		return nil, err
	}
	return &m, nil
}

func extractM1(r reader, _ types.Colorscheme) (types.Module, error) {
	var m types.M1Module
	var err error
	if m.Content.Image, err = r.image(); err != nil {
		return nil, err
	}
	if m.Content.LessonID, err = r.lessonID(); err != nil {
		return nil, err
	}
	if m.Content.Title, err = r.text(patternTitle); err != nil {
		return nil, err
	}
	if m.Content.CTA, err = r.textOr(patternCTA, DefaultCoverCTA); err != nil {
		return nil, err
	}
	return &m, nil
}

func extractCoverCaseStudy(r reader, colorscheme types.Colorscheme) (types.Module, error) {
	m := types.CoverCaseStudyModule{Colorscheme: colorscheme}
	var err error
	if m.Content.Image, err = r.imageWithCaption(); err != nil {
		return nil, err
	}
	if m.Content.Intro, err = r.intro(); err != nil {
		return nil, err
	}
	if m.Content.Title, err = r.text(patternTitle); err != nil {
		return nil, err
	}
	return &m, nil
}

func extractCoverPart(r reader, colorscheme types.Colorscheme) (types.Module, error) {
	m := types.CoverPartModule{Colorscheme: colorscheme}
	var err error
	if m.Content.Image, err = r.image(); err != nil {
		return nil, err
	}
	if m.Content.Intro, err = r.intro(); err != nil {
		return nil, err
	}
	if m.Content.Title, err = r.text(patternTitle); err != nil {
		return nil, err
	}
	return &m, nil
}

func extractCoverSubpart(r reader, colorscheme types.Colorscheme) (types.Module, error) {
	m := types.CoverSubpartModule{Colorscheme: colorscheme}
	var err error
	if m.Content.Image, err = r.imageWithCaption(); err != nil {
		return nil, err
	}
	if m.Content.Intro, err = r.intro(); err != nil {
		return nil, err
	}
	if m.Content.Title, err = r.text(patternTitle); err != nil {
		return nil, err
	}
	return &m, nil
}

func extractConnectionBack(r reader, colorscheme types.Colorscheme) (types.Module, error) {
	m := types.ConnectionBackModule{Colorscheme: colorscheme}
	var err error
	if m.Content.Intro, err = r.text(patternIntro); err != nil {
		return nil, err
	}
	if m.Content.Title, err = r.text(patternTitle); err != nil {
		return nil, err
	}
	if m.Content.CTA, err = r.text(patternCTA); err != nil {
		return nil, err
	}
	return &m, nil
}

func extractConnectionNext(r reader, colorscheme types.Colorscheme) (types.Module, error) {
	m := types.ConnectionNextModule{Colorscheme: colorscheme}
	var err error
	if m.Content.Image, err = r.image(); err != nil {
		return nil, err
	}
	if m.Content.Intro, err = r.text(patternIntro); err != nil {
		return nil, err
	}
	if m.Content.Title, err = r.text(patternTitle); err != nil {
		return nil, err
	}
	if m.Content.CTA, err = r.textOr(patternCTA, DefaultConnectionNextCTA); err != nil {
		return nil, err
	}
	return &m, nil
}

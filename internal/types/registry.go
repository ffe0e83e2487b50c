package types

import (
	"fmt"
	"sort"
)

// Kind names a content module shape.
type Kind string

// Declared module shapes.
const (
	KindC1                 Kind = "c1"
	KindCoverCaseStudy     Kind = "cover_case_study"
	KindCoverPart          Kind = "cover_part"
	KindCoverSubpart       Kind = "cover_subpart"
	KindL1                 Kind = "l1"
	KindM1                 Kind = "m1"
	KindConnectionBack     Kind = "connection_back"
	KindConnectionNext     Kind = "connection_next"
	KindKeyResources       Kind = "key_resources"
	KindKeyTakeaways       Kind = "key_takeaways"
	KindLearningObjectives Kind = "learning_objectives"
	KindListOfLessons      Kind = "list_of_lessons"
	KindModuleChapterOutro Kind = "module_chapter_outro"
)

// Shapes emitted by the frame pipeline only.
const (
	KindQuote         Kind = "quote"
	KindKeyConcepts   Kind = "key_concepts"
	KindPhotoVertical Kind = "photo_vertical"
	KindText          Kind = "text"
)

// Module is implemented by every content module shape.
type Module interface {
	Kind() Kind
	Validate() error
}

var constructors = map[Kind]func() Module{
	KindC1:                 func() Module { return &C1Module{} },
	KindCoverCaseStudy:     func() Module { return &CoverCaseStudyModule{} },
	KindCoverPart:          func() Module { return &CoverPartModule{} },
	KindCoverSubpart:       func() Module { return &CoverSubpartModule{} },
	KindL1:                 func() Module { return &L1Module{} },
	KindM1:                 func() Module { return &M1Module{} },
	KindConnectionBack:     func() Module { return &ConnectionBackModule{} },
	KindConnectionNext:     func() Module { return &ConnectionNextModule{} },
	KindKeyResources:       func() Module { return &KeyResourcesModule{} },
	KindKeyTakeaways:       func() Module { return &KeyTakeawaysModule{} },
	KindLearningObjectives: func() Module { return &LearningObjectivesModule{} },
	KindListOfLessons:      func() Module { return &ListOfLessonsModule{} },
	KindModuleChapterOutro: func() Module { return &ModuleChapterOutroModule{} },
	KindQuote:              func() Module { return &QuoteModule{} },
	KindKeyConcepts:        func() Module { return &KeyConceptsModule{} },
	KindPhotoVertical:      func() Module { return &PhotoVerticalModule{} },
	KindText:               func() Module { return &TextModule{} },
}

// UnknownKindError is returned for a kind with no registered shape.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown module kind %q", e.Kind)
}

// ParseKind converts s into a registered Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := constructors[k]; !ok {
		return "", &UnknownKindError{Kind: s}
	}
	return k, nil
}

// NewModule returns an empty module of the given kind.
func NewModule(kind Kind) (Module, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, &UnknownKindError{Kind: string(kind)}
	}
	return ctor(), nil
}

// Kinds returns every registered kind in lexical order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(constructors))
	for k := range constructors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// HasColorscheme reports whether modules of this kind carry a colorscheme.
func HasColorscheme(kind Kind) bool {
	switch kind {
	case KindCoverCaseStudy, KindCoverPart, KindCoverSubpart,
		KindConnectionBack, KindConnectionNext,
		KindKeyConcepts, KindPhotoVertical, KindText:
		return true
	}
	return false
}

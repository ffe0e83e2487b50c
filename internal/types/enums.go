// Package types provides the content module shapes consumed by the academy renderer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// Colorscheme selects the visual theme a module is rendered with.
type Colorscheme string

const (
	ColorschemeLight Colorscheme = "light"
	ColorschemeDark  Colorscheme = "dark"
)

// Colorschemes is the closed set of accepted colorscheme values.
var Colorschemes = []Colorscheme{ColorschemeLight, ColorschemeDark}

// Valid reports whether c is one of the declared colorschemes.
func (c Colorscheme) Valid() bool {
	return c == ColorschemeLight || c == ColorschemeDark
}

// ParseColorscheme converts s into a Colorscheme, rejecting unknown values.
func ParseColorscheme(s string) (Colorscheme, error) {
	c := Colorscheme(s)
	if !c.Valid() {
		return "", &EnumError{Enum: "colorscheme", Value: s}
	}
	return c, nil
}

// LessonState describes a learner's progress through a lesson.
type LessonState string

const (
	LessonCompleted  LessonState = "completed"
	LessonInProgress LessonState = "in_progress"
	LessonTodo       LessonState = "todo"
)

// LessonStates is the closed set of accepted lesson states.
var LessonStates = []LessonState{LessonCompleted, LessonInProgress, LessonTodo}

// Valid reports whether s is one of the declared lesson states.
func (s LessonState) Valid() bool {
	switch s {
	case LessonCompleted, LessonInProgress, LessonTodo:
		return true
	}
	return false
}

// ParseLessonState converts s into a LessonState, rejecting unknown values.
func ParseLessonState(s string) (LessonState, error) {
	st := LessonState(s)
	if !st.Valid() {
		return "", &EnumError{Enum: "lesson_state", Value: s}
	}
	return st, nil
}

// LessonType distinguishes lessons from quizzes in a list of lessons.
type LessonType string

const (
	LessonTypeLesson LessonType = "lesson"
	LessonTypeQuiz   LessonType = "quiz"
)

// LessonTypes is the closed set of accepted lesson types.
var LessonTypes = []LessonType{LessonTypeLesson, LessonTypeQuiz}

// Valid reports whether t is one of the declared lesson types.
func (t LessonType) Valid() bool {
	return t == LessonTypeLesson || t == LessonTypeQuiz
}

// ParseLessonType converts s into a LessonType, rejecting unknown values.
func ParseLessonType(s string) (LessonType, error) {
	t := LessonType(s)
	if !t.Valid() {
		return "", &EnumError{Enum: "lesson_type", Value: s}
	}
	return t, nil
}

// EnumError reports a value outside a closed enumeration.
type EnumError struct {
	Enum  string
	Value string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Enum, e.Value)
}

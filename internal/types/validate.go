package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "colorscheme", func(fl validator.FieldLevel) bool {
		return Colorscheme(fl.Field().String()).Valid()
	})
	mustRegister(v, "lesson_state", func(fl validator.FieldLevel) bool {
		return LessonState(fl.Field().String()).Valid()
	})
	mustRegister(v, "lesson_type", func(fl validator.FieldLevel) bool {
		return LessonType(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register %s validation: %v", tag, err))
	}
}

// FieldError is a single conformance failure at a field path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every way a module fails to conform to its shape.
type ValidationError struct {
	Kind   Kind         `json:"kind"`
	Errors []FieldError `json:"errors"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s module does not conform:\n", ve.Kind))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

func validateModule(m Module) error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate %s module: %w", m.Kind(), err)
	}

	ve := &ValidationError{Kind: m.Kind()}
	for _, fe := range fieldErrs {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   trimNamespace(fe.Namespace()),
			Message: describe(fe),
		})
	}
	return ve
}

// trimNamespace drops the Go type name validator puts in front of the path.
func trimNamespace(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "colorscheme":
		return fmt.Sprintf("must be one of %s, got %q", joinValues(Colorschemes), fe.Value())
	case "lesson_state":
		return fmt.Sprintf("must be one of %s, got %q", joinValues(LessonStates), fe.Value())
	case "lesson_type":
		return fmt.Sprintf("must be one of %s, got %q", joinValues(LessonTypes), fe.Value())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// DecodeModule decodes data strictly into the shape registered for kind.
// Unknown fields, missing fields, wrongly typed values and enum values outside
// their declared set are all rejected.
func DecodeModule(kind Kind, data []byte) (Module, error) {
	m, err := NewModule(kind)
	if err != nil {
		return nil, err
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s module JSON: %w", kind, err)
	}
	if missing := missingFields(raw, reflect.TypeOf(m).Elem(), ""); len(missing) > 0 {
		ve := &ValidationError{Kind: kind}
		for _, field := range missing {
			ve.Errors = append(ve.Errors, FieldError{Field: field, Message: "is required"})
		}
		return nil, ve
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("failed to decode %s module: %w", kind, err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// missingFields walks raw alongside t and returns the paths of declared
// fields that are absent or null. A null where a record is expected, at the
// root or as a list item, is missing too. Type mismatches are left to the decoder.
func missingFields(raw any, t reflect.Type, prefix string) []string {
	switch t.Kind() {
	case reflect.Struct:
		if raw == nil {
			if prefix == "" {
				return []string{"(root)"}
			}
			return []string{prefix}
		}
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil
		}
		var missing []string
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				continue
			}
			path := name
			if prefix != "" {
				path = prefix + "." + name
			}
			value, present := obj[name]
			if !present || value == nil {
				missing = append(missing, path)
				continue
			}
			missing = append(missing, missingFields(value, f.Type, path)...)
		}
		sort.Strings(missing)
		return missing
	case reflect.Slice:
		items, ok := raw.([]any)
		if !ok {
			return nil
		}
		var missing []string
		for i, item := range items {
			missing = append(missing, missingFields(item, t.Elem(), fmt.Sprintf("%s[%d]", prefix, i))...)
		}
		return missing
	default:
		return nil
	}
}

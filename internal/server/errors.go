package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/academy-frames/internal/db"
	"github.com/jonathan/academy-frames/internal/schemas"
	"github.com/jonathan/academy-frames/internal/types"
)

// ErrNotFound indicates a requested resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates the server was started without a dependency the
// request needs.
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured on this server", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var notFound *ErrNotFound
	var invalid *ErrValidation
	var unavailable *ErrUnavailable
	var unknownKind *types.UnknownKindError
	var unknownSchema *schemas.UnknownSchemaError
	var moduleErr *types.ValidationError
	var schemaErr *schemas.ValidationError

	switch {
	case errors.As(err, &notFound), errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &unknownKind), errors.As(err, &unknownSchema):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &moduleErr), errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

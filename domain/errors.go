package domain

import (
	"errors"
	"strings"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exists")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrForbidden will throw if the requester does not own the item being mutated
	ErrForbidden = errors.New("you are not allowed to modify this item")
	// ErrUnauthorized will throw if the request carries no valid identity
	ErrUnauthorized = errors.New("authentication required")
	// ErrUpstream will throw if the database or the chain provider failed
	ErrUpstream = errors.New("upstream service failed")

	ErrInvalidAddress = errors.New("invalid address")
)

// FieldError is the reason a single request field was rejected
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError collects field level reasons. errors.Is(err, ErrBadParamInput) holds.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Add(field, reason string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
	return e
}

// OrNil returns nil when no field was rejected
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		reasons = append(reasons, f.Field+" "+f.Reason)
	}
	return ErrBadParamInput.Error() + ": " + strings.Join(reasons, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrBadParamInput
}

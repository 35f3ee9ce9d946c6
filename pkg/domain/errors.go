package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyInput reports a required text field that trimmed to empty. The
// surrounding operation is a no-op: nothing was mutated or persisted.
var ErrEmptyInput = errors.New("required field is empty")

// ErrInvalidRole reports a role value outside the canonical enum.
var ErrInvalidRole = errors.New("invalid role")

// ErrNotFound reports an id that resolved to no entity. As with ErrEmptyInput
// the operation had no effect.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// IsNoOp reports whether err describes a validation no-op (empty input,
// unknown id, or an invariant-blocked mutation) rather than a failure of the
// storage layer itself.
func IsNoOp(err error) bool {
	if err == nil {
		return false
	}
	var nf ErrNotFound
	var rv RuleViolationError
	return errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrInvalidRole) || errors.As(err, &nf) || errors.As(err, &rv)
}

package store

import (
	"errors"
	"fmt"
)

// Kind labels an expected business-rule violation. Anything without a
// kind is a programmer error and should not be handled by front ends.
type Kind string

const (
	InvalidFormat         Kind = "INVALID_FORMAT"
	DuplicateClient       Kind = "DUPLICATE_CLIENT"
	InvalidModel          Kind = "INVALID_MODEL"
	InvalidQuantity       Kind = "INVALID_QUANTITY"
	InsufficientInventory Kind = "INSUFFICIENT_INVENTORY"
	UnknownClient         Kind = "UNKNOWN_CLIENT"
	InvalidFamilySize     Kind = "INVALID_FAMILY_SIZE"
	InvalidInterval       Kind = "INVALID_INTERVAL"
)

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Kind() Kind { return e.kind }

func NewError(kind Kind, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the business-error kind, or "" for unexpected errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return ""
}

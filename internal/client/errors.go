package client

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindInvalidInput
	KindUnreachable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalidInput:
		return "invalid input"
	case KindUnreachable:
		return "unreachable"
	default:
		return "unexpected"
	}
}

// Error is returned for every failed API call. Status is zero when no response arrived.
type Error struct {
	Kind    Kind
	Status  int
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("content API %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("content API %s (%d): %s", e.Kind, e.Status, e.Message)
}

// KindOf reports the kind of a client error, KindUnexpected for anything else.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnexpected
}

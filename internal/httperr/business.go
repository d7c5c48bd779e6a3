package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business failure so callers can react without parsing codes.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindSlotTaken    Kind = "slot_taken"
	KindInvalidState Kind = "invalid_state"
	KindNotFound     Kind = "not_found"
	KindUnavailable  Kind = "store_unavailable"
)

type BusinessError struct {
	Kind   Kind
	Code   string
	Field  string
	Detail string
	cause  error
}

func (e BusinessError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.cause)
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.cause
}

// ErrBusiness keeps the historical constructor: a bare code is an invalid state.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindInvalidState, Code: code}
}

func Validation(code, field string) error {
	return BusinessError{Kind: KindValidation, Code: code, Field: field}
}

// SlotTaken carries the display name of the pet already holding the slot.
func SlotTaken(petName string) error {
	return BusinessError{Kind: KindSlotTaken, Code: "slot_taken", Detail: petName}
}

func InvalidState(code string) error {
	return BusinessError{Kind: KindInvalidState, Code: code}
}

func NotFoundErr(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func Unavailable(cause error) error {
	return BusinessError{Kind: KindUnavailable, Code: "store_unavailable", cause: cause}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns the kind of a business error, or "" for anything else.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

func As(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

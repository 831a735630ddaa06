// Package apperr defines the error taxonomy shared by all write paths.
// Every domain error carries a Kind, the offending field when one exists,
// and a human-readable message. Handlers map kinds to HTTP status codes in
// exactly one place, so a given failure always renders the same way.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a domain error.
type Kind int

const (
	KindValidation Kind = iota
	KindMalformedID
	KindReferenceNotFound
	KindUniquenessConflict
	KindInvalidTransition
	KindTerminalState
	KindNotFound
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindMalformedID:
		return "malformed_id"
	case KindReferenceNotFound:
		return "reference_not_found"
	case KindUniquenessConflict:
		return "uniqueness_conflict"
	case KindInvalidTransition:
		return "invalid_status_transition"
	case KindTerminalState:
		return "terminal_state"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store_failure"
	}
	return "unknown"
}

// Error is a typed domain error.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Validation reports a field that fails a format, range, enum, or
// required check.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// MalformedID reports an id that is not syntactically valid for the store.
func MalformedID(field string) *Error {
	return &Error{Kind: KindMalformedID, Field: field, Message: "must be a valid identifier"}
}

// ReferenceNotFound reports a declared foreign key that does not resolve.
func ReferenceNotFound(field, target string) *Error {
	return &Error{Kind: KindReferenceNotFound, Field: field, Message: fmt.Sprintf("referenced %s not found", target)}
}

// Conflict reports a uniqueness-scoped field colliding with another record.
func Conflict(field string) *Error {
	return &Error{Kind: KindUniquenessConflict, Field: field, Message: "already in use"}
}

// InvalidTransition reports a requested status that violates the ordering rule.
func InvalidTransition(field, from, to string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Field:   field,
		Message: fmt.Sprintf("cannot change status from %q to %q", from, to),
	}
}

// Terminal reports an operation attempted against a record frozen in a
// terminal status.
func Terminal(field, status string) *Error {
	return &Error{
		Kind:    KindTerminalState,
		Field:   field,
		Message: fmt.Sprintf("record is in terminal status %q", status),
	}
}

// NotFound reports a missing target record for a read, update, or delete.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Store wraps a persistence-layer failure. The cause is preserved for
// logging but never rendered across the API boundary.
func Store(err error) *Error {
	return &Error{Kind: KindStore, Message: "storage operation failed", cause: err}
}

// Violations collects every field failure found in a payload so the caller
// sees all of them at once instead of the first.
type Violations struct {
	errs []*Error
}

// Add records a validation failure for field.
func (v *Violations) Add(field, message string) {
	v.errs = append(v.errs, Validation(field, message))
}

// Empty reports whether no violations were collected.
func (v *Violations) Empty() bool { return len(v.errs) == 0 }

// All returns the collected violations in insertion order.
func (v *Violations) All() []*Error { return v.errs }

// Err returns nil when the payload was clean, the collection otherwise.
func (v *Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *Violations) Error() string {
	parts := make([]string, len(v.errs))
	for i, e := range v.errs {
		parts[i] = e.Field + ": " + e.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// KindOf extracts the Kind from err, defaulting to KindStore for anything
// that did not originate in this package.
func KindOf(err error) Kind {
	var v *Violations
	if errors.As(err, &v) {
		return KindValidation
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// HTTPStatus maps an error to the status code the API surface reports.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindMalformedID, KindInvalidTransition, KindTerminalState:
		return http.StatusBadRequest
	case KindNotFound, KindReferenceNotFound:
		return http.StatusNotFound
	case KindUniquenessConflict:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

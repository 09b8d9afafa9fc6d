// Package apierr defines the fault taxonomy shared by handlers,
// repositories and the response layer. Faults propagate uncaught up to the
// response writer, which is the only place translating them to the wire.
package apierr

import "strings"

// Kind classifies a fault for status mapping when no explicit status was
// declared on it.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindInvalidID
	KindDuplicate
	KindNotFound
	KindUnauthenticated
	KindForbidden
)

// Error is a fault carrying an optional declared HTTP status. A fault with
// Status set is written verbatim; one without falls back to its Kind.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details []string
	cause   error
}

func (e *Error) Error() string {
	if len(e.Details) > 0 {
		return strings.Join(e.Details, ", ")
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Summary joins detail messages with ", " for the wire-level error string,
// falling back to the message when there are no details.
func (e *Error) Summary() string {
	if len(e.Details) > 0 {
		return strings.Join(e.Details, ", ")
	}
	return e.Message
}

func Unauthenticated(msg string) *Error {
	if msg == "" {
		msg = "Authentication required"
	}
	return &Error{Kind: KindUnauthenticated, Status: 401, Message: msg}
}

func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Status: 403, Message: "Forbidden"}
}

// InvalidCredentials covers both "no such user" and "wrong password" so the
// response never reveals whether an email is registered.
func InvalidCredentials() *Error {
	return &Error{Kind: KindUnauthenticated, Status: 401, Message: "Invalid email or password"}
}

func DuplicateAccount() *Error {
	return &Error{Kind: KindDuplicate, Status: 409, Message: "Email already registered"}
}

// Duplicate is the generic uniqueness-violation fault. Repositories raise
// it after translating their storage engine's duplicate-key error, so no
// engine code ever reaches the response layer.
func Duplicate() *Error {
	return &Error{Kind: KindDuplicate, Message: "Duplicate entry"}
}

func NotFound(what string) *Error {
	if what == "" {
		what = "Resource"
	}
	return &Error{Kind: KindNotFound, Status: 404, Message: what + " not found"}
}

func Validation(details ...string) *Error {
	return &Error{Kind: KindValidation, Details: details}
}

func InvalidID() *Error {
	return &Error{Kind: KindInvalidID}
}

func Internal(cause error) *Error {
	return &Error{Kind: KindUnknown, Status: 500, Message: "Internal server error", cause: cause}
}

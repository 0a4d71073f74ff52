package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes. AUTH, SERVER and REQUEST come from Jenkins responses; CONFIG
// and MONITOR are local.
const (
	ErrConfig  = "CONFIG"
	ErrAuth    = "AUTH"
	ErrServer  = "SERVER"
	ErrRequest = "REQUEST"
	ErrMonitor = "MONITOR"
)

// Error is a user-facing failure. It prints as:
//
//	✗ <What failed> [(HTTP <status>)]
//
//	  <Cause>
//
//	  <What to try>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
	// Status is the Jenkins HTTP status behind the failure, or 0.
	Status int
}

// New creates an error with no cause.
func New(code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion}
}

// Wrap attaches a message to err as a REQUEST error.
func Wrap(err error, message string) *Error {
	return &Error{Code: ErrRequest, Message: message, Cause: err}
}

// WrapWithCode attaches a code, message and suggestion to err.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion, Cause: err}
}

// ForStatus wraps err from a Jenkins call that answered with status. The code
// and suggestion follow the status class; other statuses stay REQUEST with no
// suggestion.
func ForStatus(err error, status int, message string) *Error {
	e := &Error{Code: ErrRequest, Message: message, Cause: err, Status: status}
	switch {
	case status == http.StatusUnauthorized:
		e.Code = ErrAuth
		e.Suggestion = "Check the profile's username and API token"
	case status == http.StatusForbidden:
		e.Code = ErrAuth
		e.Suggestion = "The user lacks permission for this item; ask a Jenkins admin or switch profiles"
	case status == http.StatusNotFound:
		e.Suggestion = "Check the URL; the job or build may have been renamed or deleted"
	case status >= http.StatusInternalServerError:
		e.Code = ErrServer
		e.Suggestion = "Jenkins is having trouble; try again in a moment"
	}
	return e
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("✗ " + e.Message)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (HTTP %d %s)", e.Status, http.StatusText(e.Status))
	}
	b.WriteString("\n")

	if e.Cause != nil {
		fmt.Fprintf(&b, "\n  %s\n", e.Cause.Error())
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  %s\n", e.Suggestion)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode reports whether err is, or wraps, an Error with code.
func IsCode(err error, code string) bool {
	var yjErr *Error
	return errors.As(err, &yjErr) && yjErr.Code == code
}

// Package httperr carries the error taxonomy every handler funnels into the
// single response writer: InvalidInput (400), Unauthenticated (401),
// Forbidden (403), NotFound (404), Conflict (409).
package httperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// From returns err as an *Error, or a generic 500 for anything unanticipated.
func From(err error) *Error {
	var he *Error
	if errors.As(err, &he) {
		return he
	}
	return New(http.StatusInternalServerError, "Something went wrong")
}

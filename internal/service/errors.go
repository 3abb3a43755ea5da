package service

import "net/http"

// Error is the uniform controller error: an HTTP status plus the
// message serialized to the client. Anything else that escapes a
// service resolves to 500 at the transport layer.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func badRequest(message string) *Error {
	return newError(http.StatusBadRequest, message)
}

func forbidden(message string) *Error {
	return newError(http.StatusForbidden, message)
}

func notFound(message string) *Error {
	return newError(http.StatusNotFound, message)
}

func conflict(message string) *Error {
	return newError(http.StatusConflict, message)
}

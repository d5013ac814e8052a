package controllers

import (
	"errors"
	"net/http"

	"edumaster/db"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, db.ErrStudentNotFound),
		errors.Is(err, db.ErrSubjectNotFound),
		errors.Is(err, db.ErrClassNotFound):
		return http.StatusNotFound
	case errors.Is(err, db.ErrDuplicateStudent):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

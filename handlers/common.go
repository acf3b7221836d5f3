package handlers

import (
	"errors"
	"net/http"

	"easyfood/store"
)

// statusFor maps store error kinds to HTTP statuses. The UI owns the
// user-facing wording; handlers only pick the right class of failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrCartConflict), errors.Is(err, store.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/provanota/provanota-backend/internal/apperr"
	"github.com/provanota/provanota-backend/internal/user"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(err), map[string]string{"error": err.Error()})
}

// statusOf translates the error taxonomy into transport status codes.
// This is the only place the mapping lives.
func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindPermissionDenied:
		return http.StatusForbidden
	case apperr.KindDuplicateContent:
		return http.StatusConflict
	case apperr.KindInvalidState, apperr.KindInvalidCriteria, apperr.KindInvalidAnswer,
		apperr.KindInvalidQuestion, apperr.KindInsufficientQuestions:
		return http.StatusBadRequest
	}
	if errors.Is(err, user.ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, user.ErrEmailTaken) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// decodeValid decodes a JSON body into dst and runs struct validation.
func decodeValid(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("bad json")
	}
	return validate.Struct(dst)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

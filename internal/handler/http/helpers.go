package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/courses-api/internal/course"
	"github.com/vasiliy-maslov/courses-api/internal/user"
)

type ValidationErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

// newValidator builds a validator that reports fields by their JSON names and
// treats whitespace-only strings as missing.
func newValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("notblank", validators.NotBlank)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// formatValidationErrors turns validator output into one message per failing
// field, in struct declaration order, so a client can fix everything in a
// single round trip.
func formatValidationErrors(validationErrors validator.ValidationErrors) []string {
	details := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "email":
			details = append(details, fmt.Sprintf("%q must be a valid email address", fieldError.Field()))
		default:
			details = append(details, fmt.Sprintf("Please provide a value for %q", fieldError.Field()))
		}
	}
	return details
}

// respondWithError отправляет JSON ошибку
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON отправляет JSON ответ
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, user.ErrNotFound), errors.Is(err, course.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, user.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, course.ErrForbidden), errors.Is(err, course.ErrOwnerMismatch):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

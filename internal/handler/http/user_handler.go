package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/courses-api/internal/user"
)

type CreateUserRequest struct {
	FirstName    string `json:"firstName" validate:"required,notblank"`
	LastName     string `json:"lastName" validate:"required,notblank"`
	EmailAddress string `json:"emailAddress" validate:"required,notblank,email"`
	Password     string `json:"password" validate:"required,notblank"`
}

type UserResponse struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

type UserHandler struct {
	service  user.Service
	validate *validator.Validate
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: newValidator(),
	}
}

func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Get("/users", h.handleGetCurrentUser)
	router.Post("/users", h.handleCreateUser)
}

// handleGetCurrentUser returns the identity behind the presented credentials.
func (h *UserHandler) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	currentUser, err := authenticate(h.service, r)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respondAccessDenied(w)
			return
		}
		log.Error().Err(err).Msg("Failed to authenticate user")
		respondWithError(w, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	responsePayload := UserResponse{
		ID:           currentUser.ID,
		FirstName:    currentUser.FirstName,
		LastName:     currentUser.LastName,
		EmailAddress: currentUser.EmailAddress,
	}

	respondWithJSON(w, http.StatusOK, responsePayload)
}

func (h *UserHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateUserRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:   "Validation failed",
				Details: formatValidationErrors(validationErrors),
			})
		} else {
			log.Error().Err(err).Msg("Unexpected error type during validation")
			respondWithError(w, http.StatusInternalServerError, "Internal validation error")
		}
		return
	}

	domainUser := user.User{
		FirstName:    requestPayload.FirstName,
		LastName:     requestPayload.LastName,
		EmailAddress: requestPayload.EmailAddress,
		Password:     requestPayload.Password,
	}

	if _, err := h.service.Register(r.Context(), &domainUser); err != nil {
		log.Error().Err(err).Msg("Failed to create user via service")

		statusCode := mapErrorToStatusCode(err)

		var clientMessage string
		if errors.Is(err, user.ErrEmailExists) {
			clientMessage = "Email already exists"
		} else {
			clientMessage = "Failed to create user"
		}

		respondWithError(w, statusCode, clientMessage)
		return
	}

	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusCreated)
}

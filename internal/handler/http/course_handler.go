package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/courses-api/internal/course"
	"github.com/vasiliy-maslov/courses-api/internal/user"
)

type CreateCourseRequest struct {
	Title           string  `json:"title" validate:"required,notblank"`
	Description     string  `json:"description" validate:"required,notblank"`
	UserID          int64   `json:"userId" validate:"required"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

type UpdateCourseRequest struct {
	Title           string  `json:"title" validate:"required,notblank"`
	Description     string  `json:"description" validate:"required,notblank"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

type CourseResponse struct {
	ID              int64        `json:"id"`
	UserID          int64        `json:"userId"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	EstimatedTime   *string      `json:"estimatedTime,omitempty"`
	MaterialsNeeded *string      `json:"materialsNeeded,omitempty"`
	User            UserResponse `json:"user"`
}

type CourseHandler struct {
	courses  course.Service
	users    user.Service
	validate *validator.Validate
}

func NewCourseHandler(courses course.Service, users user.Service) *CourseHandler {
	return &CourseHandler{
		courses:  courses,
		users:    users,
		validate: newValidator(),
	}
}

func (h *CourseHandler) RegisterRoutes(router chi.Router) {
	router.Get("/courses", h.handleListCourses)
	router.Get("/courses/{id}", h.handleGetCourse)
	router.Post("/courses", h.handleCreateCourse)
	router.Put("/courses/{id}", h.handleUpdateCourse)
	router.Delete("/courses/{id}", h.handleDeleteCourse)
}

func toCourseResponse(c *course.CourseWithOwner) CourseResponse {
	return CourseResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		Title:           c.Title,
		Description:     c.Description,
		EstimatedTime:   c.EstimatedTime,
		MaterialsNeeded: c.MaterialsNeeded,
		User: UserResponse{
			ID:           c.Owner.ID,
			FirstName:    c.Owner.FirstName,
			LastName:     c.Owner.LastName,
			EmailAddress: c.Owner.EmailAddress,
		},
	}
}

func (h *CourseHandler) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list courses via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to list courses")
		return
	}

	responsePayload := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		responsePayload = append(responsePayload, toCourseResponse(&courses[i]))
	}

	respondWithJSON(w, http.StatusOK, responsePayload)
}

func (h *CourseHandler) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.courseIDFromURL(w, r)
	if !ok {
		return
	}

	foundCourse, err := h.courses.GetByID(r.Context(), courseID)
	if err != nil {
		log.Error().Err(err).Int64("course_id", courseID).Msg("Failed to get course via service")

		statusCode := mapErrorToStatusCode(err)

		var clientMessage string
		if errors.Is(err, course.ErrNotFound) {
			clientMessage = "Course not found"
		} else {
			clientMessage = "Failed to get course"
		}

		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, toCourseResponse(foundCourse))
}

// handleCreateCourse runs the write pipeline: validate the payload, then
// authenticate, then let the service reject owners other than the caller.
func (h *CourseHandler) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateCourseRequest
	if !h.decodeAndValidate(w, r, &requestPayload) {
		return
	}

	currentUser, err := authenticate(h.users, r)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respondAccessDenied(w)
			return
		}
		log.Error().Err(err).Msg("Failed to authenticate user")
		respondWithError(w, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	domainCourse := course.Course{
		UserID:          requestPayload.UserID,
		Title:           requestPayload.Title,
		Description:     requestPayload.Description,
		EstimatedTime:   requestPayload.EstimatedTime,
		MaterialsNeeded: requestPayload.MaterialsNeeded,
	}

	createdCourse, err := h.courses.Create(r.Context(), &domainCourse, currentUser.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", currentUser.ID).Msg("Failed to create course via service")

		statusCode := mapErrorToStatusCode(err)

		var clientMessage string
		if errors.Is(err, course.ErrOwnerMismatch) {
			clientMessage = "Course owner must match authenticated user"
		} else {
			clientMessage = "Failed to create course"
		}

		respondWithError(w, statusCode, clientMessage)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/courses/%d", createdCourse.ID))
	w.WriteHeader(http.StatusCreated)
}

func (h *CourseHandler) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.courseIDFromURL(w, r)
	if !ok {
		return
	}

	var requestPayload UpdateCourseRequest
	if !h.decodeAndValidate(w, r, &requestPayload) {
		return
	}

	currentUser, err := authenticate(h.users, r)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respondAccessDenied(w)
			return
		}
		log.Error().Err(err).Msg("Failed to authenticate user")
		respondWithError(w, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	domainCourse := course.Course{
		ID:              courseID,
		Title:           requestPayload.Title,
		Description:     requestPayload.Description,
		EstimatedTime:   requestPayload.EstimatedTime,
		MaterialsNeeded: requestPayload.MaterialsNeeded,
	}

	if err := h.courses.Update(r.Context(), &domainCourse, currentUser.ID); err != nil {
		log.Error().Err(err).Int64("course_id", courseID).Int64("user_id", currentUser.ID).Msg("Failed to update course via service")
		respondCourseMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CourseHandler) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.courseIDFromURL(w, r)
	if !ok {
		return
	}

	currentUser, err := authenticate(h.users, r)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respondAccessDenied(w)
			return
		}
		log.Error().Err(err).Msg("Failed to authenticate user")
		respondWithError(w, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	if err := h.courses.Delete(r.Context(), courseID, currentUser.ID); err != nil {
		log.Error().Err(err).Int64("course_id", courseID).Int64("user_id", currentUser.ID).Msg("Failed to delete course via service")
		respondCourseMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CourseHandler) courseIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")
	courseID, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		log.Warn().Err(err).Str("course_id", idParam).Msg("Failed to parse id parameter from URL")
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return 0, false
	}
	return courseID, true
}

func (h *CourseHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, requestPayload interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
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
		return false
	}

	return true
}

func respondCourseMutationError(w http.ResponseWriter, err error) {
	statusCode := mapErrorToStatusCode(err)

	var clientMessage string
	switch {
	case errors.Is(err, course.ErrNotFound):
		clientMessage = "Course not found"
	case errors.Is(err, course.ErrForbidden):
		clientMessage = "Course does not belong to user"
	default:
		clientMessage = "Failed to modify course"
	}

	respondWithError(w, statusCode, clientMessage)
}

package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	courseHttp "github.com/vasiliy-maslov/courses-api/internal/handler/http"
	"github.com/vasiliy-maslov/courses-api/internal/user"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, u *user.User) (*user.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func newUserRouter(service user.Service) *chi.Mux {
	router := chi.NewRouter()
	courseHttp.NewUserHandler(service).RegisterRoutes(router)
	return router
}

func TestUserHandler_handleCreateUser_Success(t *testing.T) {
	mockService := new(MockUserService)
	router := newUserRouter(mockService)

	requestDTO := courseHttp.CreateUserRequest{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		EmailAddress: "ada@x.com",
		Password:     "s3cret",
	}

	mockService.On("Register", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return u.FirstName == requestDTO.FirstName &&
			u.LastName == requestDTO.LastName &&
			u.EmailAddress == requestDTO.EmailAddress &&
			u.Password == requestDTO.Password
	})).Return(&user.User{ID: 1, FirstName: "Ada", LastName: "Lovelace", EmailAddress: "ada@x.com"}, nil).Once()

	jsonBody, err := json.Marshal(requestDTO)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.Empty(t, rr.Body.String(), "created response must have no body")
	mockService.AssertExpectations(t)
}

func TestUserHandler_handleCreateUser_MissingFields(t *testing.T) {
	mockService := new(MockUserService)
	router := newUserRouter(mockService)

	// Three required fields missing: expect exactly three messages back.
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"password":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var errorResponse courseHttp.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errorResponse))
	assert.Equal(t, "Validation failed", errorResponse.Error)
	require.Len(t, errorResponse.Details, 3)
	assert.Contains(t, errorResponse.Details[0], "firstName")
	assert.Contains(t, errorResponse.Details[1], "lastName")
	assert.Contains(t, errorResponse.Details[2], "emailAddress")
	mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestUserHandler_handleCreateUser_BlankFields(t *testing.T) {
	mockService := new(MockUserService)
	router := newUserRouter(mockService)

	body := `{"firstName":"   ", "lastName":"Lovelace", "emailAddress":"ada@x.com", "password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var errorResponse courseHttp.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errorResponse))
	require.Len(t, errorResponse.Details, 1)
	assert.Contains(t, errorResponse.Details[0], "firstName")
	mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestUserHandler_handleCreateUser_InvalidEmail(t *testing.T) {
	mockService := new(MockUserService)
	router := newUserRouter(mockService)

	body := `{"firstName":"Ada", "lastName":"Lovelace", "emailAddress":"not-an-email", "password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var errorResponse courseHttp.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errorResponse))
	require.Len(t, errorResponse.Details, 1)
	assert.Contains(t, errorResponse.Details[0], "must be a valid email address")
	mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestUserHandler_handleCreateUser_EmailExists(t *testing.T) {
	mockService := new(MockUserService)
	router := newUserRouter(mockService)

	mockService.On("Register", mock.Anything, mock.AnythingOfType("*user.User")).
		Return(nil, user.ErrEmailExists).
		Once()

	body := `{"firstName":"Ada", "lastName":"Lovelace", "emailAddress":"ada@x.com", "password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)

	var errorResponse map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errorResponse))
	assert.Contains(t, errorResponse["error"], "Email already exists")
	mockService.AssertExpectations(t)
}

func TestUserHandler_handleGetCurrentUser_Success(t *testing.T) {
	mockService := new(MockUserService)
	router := newUserRouter(mockService)

	storedUser := &user.User{
		ID:           1,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		EmailAddress: "ada@x.com",
		Password:     "$2a$10$somestoredbcrypthashvalue",
	}

	mockService.On("Authenticate", mock.Anything, "ada@x.com", "s3cret").
		Return(storedUser, nil).
		Once()

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.SetBasicAuth("ada@x.com", "s3cret")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password", "password must never be serialized")
	assert.NotContains(t, rr.Body.String(), storedUser.Password)

	var actualResponse courseHttp.UserResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&actualResponse))
	assert.Equal(t, int64(1), actualResponse.ID)
	assert.Equal(t, "Ada", actualResponse.FirstName)
	assert.Equal(t, "Lovelace", actualResponse.LastName)
	assert.Equal(t, "ada@x.com", actualResponse.EmailAddress)
	mockService.AssertExpectations(t)
}

func TestUserHandler_handleGetCurrentUser_BadCredentials(t *testing.T) {
	mockService := new(MockUserService)
	router := newUserRouter(mockService)

	mockService.On("Authenticate", mock.Anything, "ada@x.com", "wrong").
		Return(nil, user.ErrInvalidCredentials).
		Once()

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.SetBasicAuth("ada@x.com", "wrong")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var errorResponse map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errorResponse))
	assert.Equal(t, "Access Denied", errorResponse["error"])
	mockService.AssertExpectations(t)
}

func TestUserHandler_handleGetCurrentUser_NoCredentials(t *testing.T) {
	mockService := new(MockUserService)
	router := newUserRouter(mockService)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var errorResponse map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errorResponse))
	assert.Equal(t, "Access Denied", errorResponse["error"])
	mockService.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything, mock.Anything)
}

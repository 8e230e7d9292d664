package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tdea-viajes/travelbooking/internal/domain"
	"github.com/tdea-viajes/travelbooking/internal/service/auth"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input auth.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestAuthHandler_login(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]string{"username": "carla", "password": "secretpass"})
	c.Request = httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	user := &domain.User{
		ID:           3,
		Username:     "carla",
		PasswordHash: "$2a$10$hash",
		Role:         domain.RoleClient,
		Name:         "Carla",
		Surname:      "Gomez",
		Email:        "carla@example.com",
	}
	mockService.On("Login", c.Request.Context(), "carla", "secretpass").Return(user, nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "carla", response["username"])
	assert.Equal(t, "CLIENT", response["rol"])
	// The password hash must never leave the server.
	_, hasPassword := response["password"]
	assert.False(t, hasPassword)
	assert.NotContains(t, w.Body.String(), "$2a$10$hash")

	mockService.AssertExpectations(t)
}

func TestAuthHandler_login_invalidCredentials(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]string{"username": "carla", "password": "x"})
	c.Request = httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Login", c.Request.Context(), "carla", "x").Return(nil, domain.ErrInvalidCredentials)

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.NotEmpty(t, response["message"])
}

func TestAuthHandler_register(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]string{
		"username": "carla",
		"password": "secretpass",
		"rol":      "CLIENT",
		"name":     "Carla",
		"surname":  "Gomez",
		"email":    "carla@example.com",
	})
	c.Request = httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.User{
		ID:       3,
		Username: "carla",
		Role:     domain.RoleClient,
		Name:     "Carla",
		Surname:  "Gomez",
		Email:    "carla@example.com",
	}
	mockService.On("Register", c.Request.Context(), mock.AnythingOfType("auth.RegisterInput")).Return(created, nil)

	handler.register(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response userResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "carla", response.Username)

	mockService.AssertExpectations(t)
}

func TestAuthHandler_register_conflict(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]string{
		"username": "carla",
		"password": "secretpass",
		"name":     "Carla",
		"surname":  "Gomez",
		"email":    "carla@example.com",
	})
	c.Request = httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Register", c.Request.Context(), mock.AnythingOfType("auth.RegisterInput")).
		Return(nil, domain.ErrConflict)

	handler.register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

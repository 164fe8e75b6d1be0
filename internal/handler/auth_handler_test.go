package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ridenbite/internal/auth"
	"ridenbite/internal/model"
	"ridenbite/internal/service"
)

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken, accessToken string) error {
	args := m.Called(ctx, refreshToken, accessToken)
	return args.Error(0)
}

func newRegisterContext(t *testing.T, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_PhoneRequiredPerRole(t *testing.T) {
	t.Run("restaurant without phone fails validation", func(t *testing.T) {
		authService := new(MockAuthService)
		h := NewAuthHandler(authService)

		c, _ := newRegisterContext(t, RegisterRequest{
			Email: "owner@example.com", Password: "password123", Name: "Owner",
			Role: "RESTAURANT", BusinessName: "Pasta Place", Address: "12 Noodle Ave",
		})

		err := h.Register(c)

		var httpErr *echo.HTTPError
		if assert.ErrorAs(t, err, &httpErr) {
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		}
		authService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("customer without phone registers", func(t *testing.T) {
		authService := new(MockAuthService)
		authService.On("Register", mock.Anything, mock.AnythingOfType("service.RegisterInput")).
			Return(&service.AuthResult{
				User:   &model.User{ID: 1, Email: "test@example.com", Role: model.RoleCustomer},
				Tokens: &auth.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
			}, nil)
		h := NewAuthHandler(authService)

		c, rec := newRegisterContext(t, RegisterRequest{
			Email: "test@example.com", Password: "password123", Name: "Test User",
		})

		err := h.Register(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
		authService.AssertExpectations(t)
	})
}

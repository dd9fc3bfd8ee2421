package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/app"
	"userhub/internal/model"
	"userhub/internal/pkg/jwtutil"
	"userhub/internal/transport/http/middleware"
)

const testSecret = "handler-test-secret"

type stubAuthService struct {
	registerUser *model.User
	registerErr  error
	loginResult  *app.AuthResult
	loginErr     error
	meUser       *model.User
	meErr        error
}

func (s *stubAuthService) Register(_ context.Context, _ app.RegisterInput) (*model.User, error) {
	return s.registerUser, s.registerErr
}

func (s *stubAuthService) Login(_ context.Context, _ app.LoginInput) (*app.AuthResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) GetUserByID(_ context.Context, _ uint) (*model.User, error) {
	return s.meUser, s.meErr
}

func setupRouter(svc AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewAuthHandler(svc)
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.GET("/users/me", middleware.AuthJWT(testSecret), h.Me)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func testUser() *model.User {
	return &model.User{
		ID:           1,
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$secretsecretsecretsecretsecret",
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestRegisterCreated(t *testing.T) {
	router := setupRouter(&stubAuthService{registerUser: testUser()})

	rec := doJSON(t, router, http.MethodPost, "/register",
		`{"username":"alice","email":"a@x.com","password":"Abc123"}`, "")

	require.Equal(t, http.StatusCreated, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"username":"alice"`)
	assert.Contains(t, body, `"is_active":true`)
	// The stored hash must never cross the trust boundary.
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "$2a$10$")
}

func TestRegisterBindingValidation(t *testing.T) {
	router := setupRouter(&stubAuthService{})

	rec := doJSON(t, router, http.MethodPost, "/register",
		`{"username":"alice","password":"Abc123"}`, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "email", resp.Details[0].Field)
	assert.Equal(t, "is required", resp.Details[0].Message)
}

func TestRegisterPolicyValidation(t *testing.T) {
	svc := &stubAuthService{
		registerErr: &app.ValidationError{Fields: []app.FieldError{
			{Field: "password", Message: "must contain at least one uppercase letter"},
		}},
	}
	router := setupRouter(svc)

	rec := doJSON(t, router, http.MethodPost, "/register",
		`{"username":"alice","email":"a@x.com","password":"abc123"}`, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must contain at least one uppercase letter")
}

func TestRegisterConflict(t *testing.T) {
	router := setupRouter(&stubAuthService{registerErr: app.ErrUsernameExists})

	rec := doJSON(t, router, http.MethodPost, "/register",
		`{"username":"alice","email":"b@x.com","password":"Abc123"}`, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "username already exists")
}

func TestLoginOK(t *testing.T) {
	router := setupRouter(&stubAuthService{
		loginResult: &app.AuthResult{Token: "signed-token", User: testUser()},
	})

	rec := doJSON(t, router, http.MethodPost, "/login",
		`{"username":"alice","password":"Abc123"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"signed-token"`)
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
}

func TestLoginUnauthorized(t *testing.T) {
	router := setupRouter(&stubAuthService{loginErr: app.ErrInvalidCredential})

	rec := doJSON(t, router, http.MethodPost, "/login",
		`{"username":"alice","password":"Wrong123"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeWithoutToken(t *testing.T) {
	router := setupRouter(&stubAuthService{meUser: testUser()})

	rec := doJSON(t, router, http.MethodGet, "/users/me", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeOK(t *testing.T) {
	router := setupRouter(&stubAuthService{meUser: testUser()})

	token, err := jwtutil.GenerateToken(testSecret, time.Minute, 1, "alice")
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/users/me", "", token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestMeInactiveAccount(t *testing.T) {
	user := testUser()
	user.IsActive = false
	router := setupRouter(&stubAuthService{meUser: user})

	token, err := jwtutil.GenerateToken(testSecret, time.Minute, 1, "alice")
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/users/me", "", token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeExpiredToken(t *testing.T) {
	router := setupRouter(&stubAuthService{meUser: testUser()})

	token, err := jwtutil.GenerateToken(testSecret, -time.Minute, 1, "alice")
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/users/me", "", token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

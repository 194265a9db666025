package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"workflow-management-api/internal/authz"
	"workflow-management-api/internal/middleware"
	"workflow-management-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func userRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/users/register", RegisterUser)
	r.POST("/api/users/login", Login)
	r.POST("/api/users/member", middleware.RequireOperation(authz.OpUserCreateStaff), CreateMember)
	r.GET("/api/users", middleware.RequireOperation(authz.OpUserList), GetAllUsers)
	return r
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	setupHandlerTest(t)
	r := userRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/users/register", "",
		map[string]any{
			"username": "alice",
			"email":    "alice@example.com",
			"password": "s3cret",
			"role":     "Admin",
		}))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/users/login", "",
		map[string]any{"email": "alice@example.com", "password": "s3cret"}))
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "alice", resp.Username)
	require.Equal(t, "Admin", resp.Role)

	// The issued token authorizes admin-only endpoints.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodGet, "/api/users", resp.Token, nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	setupHandlerTest(t)
	r := userRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/users/register", "",
		map[string]any{
			"username": "bob",
			"email":    "bob@example.com",
			"password": "right",
			"role":     "Member",
		}))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/users/login", "",
		map[string]any{"email": "bob@example.com", "password": "wrong"}))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	setupHandlerTest(t)
	r := userRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/users/login", "",
		map[string]any{"email": "ghost@example.com", "password": "x"}))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterUser_InvalidRole(t *testing.T) {
	setupHandlerTest(t)
	r := userRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/users/register", "",
		map[string]any{
			"username": "eve",
			"email":    "eve@example.com",
			"password": "x",
			"role":     "Root",
		}))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMember_PinsRole(t *testing.T) {
	db := setupHandlerTest(t)
	r := userRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/users/member",
		tokenFor(t, 1, "admin", models.RoleAdmin),
		map[string]any{
			"username": "m1",
			"email":    "m1@example.com",
			"password": "x",
		}))
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "m1@example.com").First(&user).Error)
	require.Equal(t, models.RoleMember, user.Role)
}

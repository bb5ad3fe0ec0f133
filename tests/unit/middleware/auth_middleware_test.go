package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"bananabill/internal/domain"
	"bananabill/internal/middleware"
	"bananabill/internal/service"
	"bananabill/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(authService *mocks.MockAuthService) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(authService), func(c *gin.Context) {
		userID, err := middleware.GetUserID(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "mobile": middleware.GetMobile(c)})
	})
	return r
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := protectedRouter(new(mocks.MockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_NonBearerScheme(t *testing.T) {
	authService := new(mocks.MockAuthService)
	r := protectedRouter(authService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	authService.AssertNotCalled(t, "ValidateToken", "dXNlcjpwYXNz")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	authService := new(mocks.MockAuthService)
	authService.On("ValidateToken", "bad-token").Return(nil, domain.ErrUnauthorized)
	r := protectedRouter(authService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidTokenInjectsContext(t *testing.T) {
	authService := new(mocks.MockAuthService)
	userID := uuid.New()
	authService.On("ValidateToken", "good-token").Return(&service.Claims{
		UserID: userID,
		Mobile: "9876543210",
	}, nil)
	r := protectedRouter(authService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "9876543210")
}

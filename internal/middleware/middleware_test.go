package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sanfeliz/internal/auth"

	"github.com/gin-gonic/gin"
)

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware())
	if len(roles) > 0 {
		router.Use(RequireRole(roles...))
	}
	router.GET("/test", func(c *gin.Context) {
		adminID, _ := c.Get(KeyAdminID)
		c.JSON(http.StatusOK, gin.H{"adminID": adminID})
	})
	return router
}

func serve(router *gin.Engine, authorization string) int {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

// TestAuthMiddleware_MissingAuthHeader tests the middleware with missing Authorization header
func TestAuthMiddleware_MissingAuthHeader(t *testing.T) {
	if code := serve(protectedRouter(), ""); code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, code)
	}
}

// TestAuthMiddleware_InvalidAuthFormat tests the middleware with invalid Bearer format
func TestAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	if code := serve(protectedRouter(), "InvalidFormat"); code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, code)
	}
}

// TestAuthMiddleware_InvalidToken tests the middleware with an invalid token
func TestAuthMiddleware_InvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	if code := serve(protectedRouter(), "Bearer invalid_token_xyz"); code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, code)
	}
}

// TestAuthMiddleware_ValidToken tests the middleware with a valid token
func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	token, err := auth.GenerateToken("admin-id", "admin@sanfeliz.cl", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	if code := serve(protectedRouter(auth.RoleAdmin), "Bearer "+token); code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, code)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	token, err := auth.GenerateToken("editor-id", "editor@sanfeliz.cl", "EDITOR")
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	if code := serve(protectedRouter(auth.RoleAdmin), "Bearer "+token); code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, code)
	}
}

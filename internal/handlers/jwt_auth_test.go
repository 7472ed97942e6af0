package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/services"
	"github.com/skilldeck/learning-platform/internal/utils"
	"github.com/skilldeck/learning-platform/internal/validator"
)

const testSecret = "test-secret"

func newTestAuthService() services.AuthService {
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return services.NewAuthService(nil, validator.New(), logger, services.AuthConfig{
		Secret:          testSecret,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

// mintToken signs a token directly so middleware tests do not need a
// database.
func mintToken(t *testing.T, username string, role models.UserRole, tokenType string) string {
	t.Helper()

	now := time.Now()
	claims := services.TokenClaims{
		TokenType: tokenType,
		Role:      role,
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func newGuardedRouter(handler gin.HandlerFunc, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	middleware := NewJWTAuthMiddleware(newTestAuthService())

	chain := []gin.HandlerFunc{middleware.AuthMiddleware()}
	chain = append(chain, extra...)
	chain = append(chain, handler)
	router.POST("/guarded", chain...)
	return router
}

func TestAuthMiddleware(t *testing.T) {
	echoUsername := func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ctxKeyUsername))
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "", http.StatusOK, "alice"},
		{"missing header", "-", http.StatusUnauthorized, ""},
		{"malformed header", "Token abc", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newGuardedRouter(echoUsername)

			req := httptest.NewRequest("POST", "/guarded", nil)
			switch tt.authHeader {
			case "":
				req.Header.Set("Authorization", "Bearer "+mintToken(t, "alice", models.RoleStudent, services.TokenTypeAccess))
			case "-":
			default:
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("expected body %q, got %q", tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_RejectsRefreshToken(t *testing.T) {
	router := newGuardedRouter(func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "alice", models.RoleStudent, services.TokenTypeRefresh))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("refresh token must not work as a bearer credential: got %d, want 401", w.Code)
	}
}

func TestRequireRoleMiddleware(t *testing.T) {
	middleware := NewJWTAuthMiddleware(newTestAuthService())
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("allowed role passes", func(t *testing.T) {
		router := newGuardedRouter(ok, middleware.RequireRoleMiddleware(models.RoleTeacher))

		req := httptest.NewRequest("POST", "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "teach", models.RoleTeacher, services.TokenTypeAccess))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("wrong role is unauthorized", func(t *testing.T) {
		router := newGuardedRouter(ok, middleware.RequireRoleMiddleware(models.RoleTeacher))

		req := httptest.NewRequest("POST", "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "study", models.RoleStudent, services.TokenTypeAccess))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}

func TestRequireActor(t *testing.T) {
	t.Run("matching actor passes", func(t *testing.T) {
		router := newGuardedRouter(func(c *gin.Context) {
			if !RequireActor(c, "alice") {
				return
			}
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest("POST", "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "alice", models.RoleStudent, services.TokenTypeAccess))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("claiming another actor is unauthorized", func(t *testing.T) {
		router := newGuardedRouter(func(c *gin.Context) {
			if !RequireActor(c, "bob") {
				return
			}
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest("POST", "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "alice", models.RoleStudent, services.TokenTypeAccess))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}

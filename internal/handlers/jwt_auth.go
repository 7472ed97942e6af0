package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/services"
)

// Context keys set by the auth middleware.
const (
	ctxKeyUserID   = "user_id"
	ctxKeyUsername = "username"
	ctxKeyUserRole = "user_role"
	ctxKeyClaims   = "claims"
)

// JWTAuthMiddleware authenticates requests against the bearer access token.
// The guard is purely comparative: all identity and role data comes from the
// token claims, no ledger lookup happens here.
type JWTAuthMiddleware struct {
	auth services.AuthService
}

func NewJWTAuthMiddleware(auth services.AuthService) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{auth: auth}
}

// AuthMiddleware parses the Authorization header and stores the token claims
// in the request context.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "authorization header missing",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "invalid authorization header format",
			})
			return
		}

		claims, err := m.auth.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: services.ErrInvalidToken.Error(),
			})
			return
		}

		// Only access tokens are bearer credentials; a refresh token is
		// exclusively for the refresh endpoint.
		if claims.TokenType != services.TokenTypeAccess {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: services.ErrInvalidToken.Error(),
			})
			return
		}

		c.Set(ctxKeyUserID, claims.Subject)
		c.Set(ctxKeyUsername, claims.Username)
		c.Set(ctxKeyUserRole, claims.Role)
		c.Set(ctxKeyClaims, claims)

		c.Next()
	}
}

// RequireRoleMiddleware rejects requests whose token role claim is not one of
// the allowed roles. Role failures surface as 401, matching the rest of the
// authorization taxonomy.
func (m *JWTAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ctxKeyUserRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "user not authenticated",
			})
			return
		}

		role, ok := value.(models.UserRole)
		if ok {
			for _, allowed := range roles {
				if role == allowed {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Message: services.ErrForbidden.Error(),
		})
	}
}

// RequireActor checks that the authenticated username equals the actor the
// request body claims to act as. On mismatch it writes a 401 and returns
// false.
func RequireActor(c *gin.Context, claimedUsername string) bool {
	authenticated := c.GetString(ctxKeyUsername)
	if authenticated == "" || authenticated != claimedUsername {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Message: services.ErrActorMismatch.Error(),
		})
		return false
	}
	return true
}

// CurrentClaims returns the token claims stored by AuthMiddleware.
func CurrentClaims(c *gin.Context) (*services.TokenClaims, bool) {
	value, exists := c.Get(ctxKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.TokenClaims)
	return claims, ok
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/validator"
)

func newAuthService(t *testing.T) (AuthService, UserService) {
	t.Helper()
	repo := newTestRepo(t)
	userSvc := newUserService(repo)
	authSvc := NewAuthService(repo, validator.New(), newTestLogger(), AuthConfig{
		Secret:          "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	return authSvc, userSvc
}

func TestAuthService_ObtainPair(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds identity and role claims", func(t *testing.T) {
		authSvc, userSvc := newAuthService(t)
		registerTestUser(t, userSvc, "teach", models.RoleTeacher)

		pair, err := authSvc.ObtainPair(ctx, &ObtainTokenRequest{
			Username: "teach",
			Password: "sup3r-secret",
		})
		if err != nil {
			t.Fatalf("ObtainPair failed: %v", err)
		}

		claims, err := authSvc.ParseToken(pair.Access)
		if err != nil {
			t.Fatalf("ParseToken failed: %v", err)
		}
		if claims.Role != models.RoleTeacher {
			t.Errorf("expected teacher role claim, got %q", claims.Role)
		}
		if claims.Username != "teach" || claims.FirstName != "Teach" || claims.LastName != "Tester" {
			t.Errorf("unexpected identity claims: %+v", claims)
		}
		if claims.TokenType != "access" {
			t.Errorf("expected access token type, got %q", claims.TokenType)
		}

		refreshClaims, err := authSvc.ParseToken(pair.Refresh)
		if err != nil {
			t.Fatalf("ParseToken(refresh) failed: %v", err)
		}
		if refreshClaims.TokenType != "refresh" || refreshClaims.Username != "teach" {
			t.Errorf("unexpected refresh claims: %+v", refreshClaims)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		authSvc, userSvc := newAuthService(t)
		registerTestUser(t, userSvc, "teach", models.RoleTeacher)

		_, err := authSvc.ObtainPair(ctx, &ObtainTokenRequest{
			Username: "teach",
			Password: "not-the-password",
		})
		if !errors.Is(err, ErrAuthenticationFailed) {
			t.Errorf("expected ErrAuthenticationFailed, got %v", err)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		authSvc, _ := newAuthService(t)

		_, err := authSvc.ObtainPair(ctx, &ObtainTokenRequest{
			Username: "ghost",
			Password: "whatever1",
		})
		if !errors.Is(err, ErrAuthenticationFailed) {
			t.Errorf("expected ErrAuthenticationFailed, got %v", err)
		}
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("reissues access with the same claims", func(t *testing.T) {
		authSvc, userSvc := newAuthService(t)
		registerTestUser(t, userSvc, "study", models.RoleStudent)

		pair, err := authSvc.ObtainPair(ctx, &ObtainTokenRequest{
			Username: "study",
			Password: "sup3r-secret",
		})
		if err != nil {
			t.Fatalf("ObtainPair failed: %v", err)
		}

		resp, err := authSvc.Refresh(ctx, &RefreshTokenRequest{Refresh: pair.Refresh})
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}

		claims, err := authSvc.ParseToken(resp.Access)
		if err != nil {
			t.Fatalf("ParseToken failed: %v", err)
		}
		if claims.TokenType != "access" || claims.Username != "study" || claims.Role != models.RoleStudent {
			t.Errorf("unexpected reissued claims: %+v", claims)
		}
	})

	t.Run("access token is not accepted as refresh", func(t *testing.T) {
		authSvc, userSvc := newAuthService(t)
		registerTestUser(t, userSvc, "study", models.RoleStudent)

		pair, err := authSvc.ObtainPair(ctx, &ObtainTokenRequest{
			Username: "study",
			Password: "sup3r-secret",
		})
		if err != nil {
			t.Fatalf("ObtainPair failed: %v", err)
		}

		_, err = authSvc.Refresh(ctx, &RefreshTokenRequest{Refresh: pair.Access})
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		authSvc, _ := newAuthService(t)

		_, err := authSvc.Refresh(ctx, &RefreshTokenRequest{Refresh: "not.a.token"})
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

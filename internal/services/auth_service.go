package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/repositories"
	"github.com/skilldeck/learning-platform/internal/utils"
	"github.com/skilldeck/learning-platform/internal/validator"
)

// Token types embedded in the token_type claim. The auth middleware only
// accepts access tokens as bearer credentials.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims are embedded in both access and refresh tokens. The guard
// trusts these claims as the sole source of identity and role, no ledger
// re-query happens on protected requests.
type TokenClaims struct {
	TokenType string          `json:"token_type"`
	Role      models.UserRole `json:"role"`
	Username  string          `json:"username"`
	FirstName string          `json:"firstname"`
	LastName  string          `json:"lastname"`
	jwt.RegisteredClaims
}

// AuthConfig carries the signing secret and token lifetimes.
type AuthConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type authService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
	config    AuthConfig
}

func NewAuthService(repo repositories.Repository, v *validator.Validator, logger utils.Logger, config AuthConfig) AuthService {
	return &authService{
		repo:      repo,
		validator: v,
		logger:    logger,
		config:    config,
	}
}

func (s *authService) ObtainPair(ctx context.Context, req *ObtainTokenRequest) (*TokenPairResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	user, err := s.repo.User().GetByUsernameWithProfile(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.logger.Warn("credential verification failed", "username", req.Username)
		return nil, ErrAuthenticationFailed
	}

	var role models.UserRole
	if user.Role != nil {
		role = user.Role.Role
	}

	access, err := s.mint(user, role, TokenTypeAccess, s.config.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.mint(user, role, TokenTypeRefresh, s.config.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("token pair issued", "username", user.Username, "role", role)

	return &TokenPairResponse{Access: access, Refresh: refresh}, nil
}

func (s *authService) Refresh(ctx context.Context, req *RefreshTokenRequest) (*RefreshResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	claims, err := s.ParseToken(req.Refresh)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	// Reissue an access token carrying the same identity claims; the role
	// embedded at login stays authoritative for the token's lifetime.
	user := &models.User{
		ID:        claims.Subject,
		Username:  claims.Username,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	}
	access, err := s.mint(user, claims.Role, TokenTypeAccess, s.config.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	return &RefreshResponse{Access: access}, nil
}

func (s *authService) ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) mint(user *models.User, role models.UserRole, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		TokenType: tokenType,
		Role:      role,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

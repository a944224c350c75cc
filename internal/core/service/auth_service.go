package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/enrollhub/enrollment-api/internal/core/domain"
	"github.com/enrollhub/enrollment-api/internal/core/ports"
	"github.com/enrollhub/enrollment-api/internal/pkg/password"
	"github.com/enrollhub/enrollment-api/internal/pkg/token"
)

// AuthService orchestrates signup, login and refresh. Sessions are stateless:
// token validity is purely a function of signature, type and expiry, so the
// service keeps no per-session state and issues at most one database call per
// flow.
type AuthService struct {
	users      ports.UserRepository
	codec      *token.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration

	// dummyHash is verified against when the email is unknown, so login
	// timing does not distinguish "no such user" from "wrong password".
	dummyHash string
}

func NewAuthService(users ports.UserRepository, codec *token.Codec, accessTTL, refreshTTL time.Duration) (*AuthService, error) {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	dummy, err := password.Hash("dummy-password-for-timing-equalisation")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrHashingFailure, err)
	}
	return &AuthService{
		users:      users,
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		dummyHash:  dummy,
	}, nil
}

// Signup registers a new active user and issues its first token pair.
// Email uniqueness is enforced by the store's constraint; a violation comes
// back as domain.ErrEmailTaken.
func (s *AuthService) Signup(ctx context.Context, email, pass string, role domain.Role) (*ports.TokenPair, error) {
	email = strings.TrimSpace(email)
	pass = strings.TrimSpace(pass)
	if email == "" || pass == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRole, role)
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrHashingFailure, err)
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	return s.issuePair(user)
}

// Login verifies credentials and issues a fresh token pair. Unknown email and
// wrong password fail identically; an inactive account that proved its
// password fails distinctly.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*ports.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			password.Verify(pass, s.dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(pass, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}

	return s.issuePair(user)
}

// Refresh exchanges a valid refresh token for a new access+refresh pair.
// Rotation is stateless: the old refresh token is not invalidated server-side
// and stays usable until its natural expiry. Inherited tradeoff of the
// stateless session model; revoking would require a server-side token store.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.codec.Verify(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != token.TypeRefresh {
		return nil, fmt.Errorf("%w: expected refresh token, got %q", domain.ErrInvalidToken, claims.Type)
	}

	id, err := parseSubject(claims.Subject)
	if err != nil {
		return nil, err
	}

	// A vanished and a deactivated user fail the same way here: unlike login,
	// the caller proved nothing beyond token possession, so refresh exposes
	// no distinct forbidden class.
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user not found or inactive", domain.ErrInvalidToken)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user not found or inactive", domain.ErrInvalidToken)
	}

	return s.issuePair(user)
}

func (s *AuthService) issuePair(user *domain.User) (*ports.TokenPair, error) {
	sub := strconv.FormatInt(user.ID, 10)

	access, err := s.codec.Sign(sub, user.Role.String(), token.TypeAccess, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.codec.Sign(sub, user.Role.String(), token.TypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

func parseSubject(sub string) (int64, error) {
	if sub == "" {
		return 0, fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: subject is not a valid user id", domain.ErrInvalidToken)
	}
	return id, nil
}

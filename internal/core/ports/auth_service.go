package ports

import (
	"context"

	"github.com/enrollhub/enrollment-api/internal/core/domain"
)

// TokenPair is the credential set returned by every successful auth flow.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type AuthService interface {
	Signup(ctx context.Context, email, password string, role domain.Role) (*TokenPair, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

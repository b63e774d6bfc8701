package ports

import (
	"context"

	"github.com/taskhub/task-system/internal/core/domain"
)

// LoginInput carries login credentials. Identity may be either the user's
// email address or their username; the repository resolves both.
type LoginInput struct {
	Identity string
	Password string
}

// AuthService defines registration, login and identity lookup.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}

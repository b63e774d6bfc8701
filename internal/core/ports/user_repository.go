package ports

import (
	"context"

	"github.com/taskhub/task-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIdentity resolves a login identity that may be either an email
	// address or a username. The union is deliberate: the login contract
	// accepts both through a single field.
	FindByIdentity(ctx context.Context, identity string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}

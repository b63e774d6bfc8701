package ports

import (
	"context"

	"github.com/taskhub/task-system/internal/core/domain"
)

// ListTasksFilter carries the query parameters for listing tasks.
// OwnerID is always enforced for non-admin callers by the service layer.
type ListTasksFilter struct {
	OwnerID string // empty = no filter (admin listing); non-empty = scoped to owner
	Page    int    // 1-based
	Limit   int    // max rows per page (clamped to 50 by the service)
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns a page of tasks matching filter, sorted by creation time
	// descending, plus the total count for the filter.
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int64, error)
	Update(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	// DeleteByOwner removes every task owned by ownerID and reports how many
	// records were deleted.
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
}

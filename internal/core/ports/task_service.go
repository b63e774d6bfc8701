package ports

import (
	"context"

	"github.com/taskhub/task-system/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a new task. Status and
// priority default to "pending" / "medium" when empty. DueDate is an optional
// date string (RFC 3339 or 2006-01-02); empty means no due date.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     string
}

// UpdateTaskInput carries a partial update. Nil fields are left unchanged.
// A non-nil empty DueDate clears the stored due date.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *string
}

// HasFields reports whether at least one recognized field is present.
func (in UpdateTaskInput) HasFields() bool {
	return in.Title != nil || in.Description != nil || in.Status != nil ||
		in.Priority != nil || in.DueDate != nil
}

// TaskPage is returned by List.
type TaskPage struct {
	Items []*domain.Task
	Page  int
	Pages int
	Total int64
	Limit int
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	Create(ctx context.Context, ownerID string, input CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, ownerID string, page, limit int) (*TaskPage, error)
	// Update mutates the already-resolved task. Ownership has been checked
	// upstream; the service only validates and persists.
	Update(ctx context.Context, task *domain.Task, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, task *domain.Task) error
}

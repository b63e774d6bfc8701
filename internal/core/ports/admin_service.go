package ports

import (
	"context"

	"github.com/taskhub/task-system/internal/core/domain"
)

// TaskOwner is the subset of user fields exposed alongside a task in admin
// listings. Empty when the owning account no longer exists.
type TaskOwner struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// AdminTask is a task enriched with its owner for the admin overview.
type AdminTask struct {
	Task  *domain.Task `json:"task"`
	Owner TaskOwner    `json:"owner"`
}

// DeleteUserResult reports the outcome of a cascading user delete.
type DeleteUserResult struct {
	TasksDeleted int64
}

// AdminService defines the unrestricted operations behind the admin role gate.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	ListTasks(ctx context.Context) ([]AdminTask, error)
	// DeleteUser removes the user and every task it owns. Not atomic, but it
	// must not leave orphaned tasks behind.
	DeleteUser(ctx context.Context, id string) (*DeleteUserResult, error)
	DeleteTask(ctx context.Context, id string) error
	RecentAudit(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}

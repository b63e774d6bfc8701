package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/task-system/internal/core/domain"
	"github.com/taskhub/task-system/internal/core/ports"
)

// SeedCredentials holds the optional bootstrap accounts read from the
// environment. Seeding is skipped entirely when any field is empty.
type SeedCredentials struct {
	AdminEmail    string
	AdminPassword string
	UserEmail     string
	UserPassword  string
}

func (c SeedCredentials) complete() bool {
	return c.AdminEmail != "" && c.AdminPassword != "" && c.UserEmail != "" && c.UserPassword != ""
}

var seedTaskTitles = []string{
	"Finish project outline",
	"Review security checklist",
	"Write API docs",
	"Prepare demo script",
	"Fix pagination bug",
	"Add input validation",
	"Refactor controller logic",
	"Polish UI layout",
	"Test role permissions",
	"Seed demo data",
	"Optimize query performance",
	"Improve error handling",
	"Update README",
	"Check deployment env vars",
	"Verify JWT expiration",
	"Add due dates",
	"Update admin panel",
	"Clean up CSS",
	"Run smoke tests",
	"Prepare defense answers",
	"Create backup plan",
	"Double-check CRUD",
}

var seedStatuses = []domain.TaskStatus{domain.StatusPending, domain.StatusInProgress, domain.StatusDone}
var seedPriorities = []domain.TaskPriority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh}

// Bootstrapper seeds the default admin/user accounts and demo tasks at
// startup. Every step is idempotent: existing accounts are left alone, and
// demo tasks are only inserted when both accounts own none.
type Bootstrapper struct {
	users  ports.UserRepository
	tasks  ports.TaskRepository
	logger zerolog.Logger
}

func NewBootstrapper(users ports.UserRepository, tasks ports.TaskRepository, logger zerolog.Logger) *Bootstrapper {
	return &Bootstrapper{users: users, tasks: tasks, logger: logger}
}

// EnsureDefaults creates the default accounts and demo tasks if missing.
func (b *Bootstrapper) EnsureDefaults(ctx context.Context, creds SeedCredentials) error {
	if !creds.complete() {
		b.logger.Info().Msg("default accounts not created (missing DEFAULT_* env vars)")
		return nil
	}

	admin, err := b.ensureUser(ctx, "admin", creds.AdminEmail, creds.AdminPassword, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	user, err := b.ensureUser(ctx, "user", creds.UserEmail, creds.UserPassword, domain.RoleUser)
	if err != nil {
		return fmt.Errorf("bootstrap user: %w", err)
	}

	userTasks, err := b.tasks.CountByOwner(ctx, user.ID)
	if err != nil {
		return err
	}
	adminTasks, err := b.tasks.CountByOwner(ctx, admin.ID)
	if err != nil {
		return err
	}
	if userTasks > 0 || adminTasks > 0 {
		return nil
	}

	if err := b.seedTasks(ctx, user.ID, admin.ID); err != nil {
		return fmt.Errorf("bootstrap tasks: %w", err)
	}
	b.logger.Info().Msg("default demo tasks created")
	return nil
}

func (b *Bootstrapper) ensureUser(ctx context.Context, username, email, password, role string) (*domain.User, error) {
	existing, err := b.users.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := b.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	b.logger.Info().Str("username", username).Str("role", role).Msg("default account created")
	return created, nil
}

func (b *Bootstrapper) seedTasks(ctx context.Context, userID, adminID string) error {
	base := time.Now().UTC()
	for i, title := range seedTaskTitles {
		due := base.AddDate(0, 0, i+1)
		task := &domain.Task{
			Title:       title,
			Description: fmt.Sprintf("Task %d description", i+1),
			Status:      seedStatuses[i%len(seedStatuses)],
			Priority:    seedPriorities[i%len(seedPriorities)],
			DueDate:     &due,
			OwnerID:     userID,
			CreatedAt:   base,
			UpdatedAt:   base,
		}
		if _, err := b.tasks.Create(ctx, task); err != nil {
			return err
		}
	}

	adminDue1 := base.AddDate(0, 0, 3)
	adminDue2 := base.AddDate(0, 0, 5)
	adminSeed := []*domain.Task{
		{
			Title:       "Admin audit review",
			Description: "Review system activity logs",
			Status:      domain.StatusInProgress,
			Priority:    domain.PriorityHigh,
			DueDate:     &adminDue1,
			OwnerID:     adminID,
			CreatedAt:   base,
			UpdatedAt:   base,
		},
		{
			Title:       "Admin access test",
			Description: "Verify admin permissions",
			Status:      domain.StatusPending,
			Priority:    domain.PriorityMedium,
			DueDate:     &adminDue2,
			OwnerID:     adminID,
			CreatedAt:   base,
			UpdatedAt:   base,
		},
	}
	for _, task := range adminSeed {
		if _, err := b.tasks.Create(ctx, task); err != nil {
			return err
		}
	}
	return nil
}

// Reseed force-recreates the demo data: accounts are ensured and their tasks
// replaced. Used by the standalone seed command.
func (b *Bootstrapper) Reseed(ctx context.Context, creds SeedCredentials) error {
	if !creds.complete() {
		return errors.New("bootstrap: missing seed credentials")
	}

	admin, err := b.ensureUser(ctx, "admin", creds.AdminEmail, creds.AdminPassword, domain.RoleAdmin)
	if err != nil {
		return err
	}
	user, err := b.ensureUser(ctx, "user", creds.UserEmail, creds.UserPassword, domain.RoleUser)
	if err != nil {
		return err
	}

	if _, err := b.tasks.DeleteByOwner(ctx, user.ID); err != nil {
		return err
	}
	if _, err := b.tasks.DeleteByOwner(ctx, admin.ID); err != nil {
		return err
	}
	return b.seedTasks(ctx, user.ID, admin.ID)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-system/internal/core/domain"
	"github.com/taskhub/task-system/internal/core/ports"
)

type stubAuditRepo struct {
	entries []*domain.AuditEntry
}

func (r *stubAuditRepo) Insert(_ context.Context, entry *domain.AuditEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubAuditRepo) ListRecent(_ context.Context, limit int) ([]*domain.AuditEntry, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]*domain.AuditEntry, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

func seedUser(t *testing.T, repo *stubUserRepo, username, email, role string) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedTask(t *testing.T, repo *stubTaskRepo, ownerID, title string) *domain.Task {
	t.Helper()
	now := time.Now().UTC()
	task, err := repo.Create(context.Background(), &domain.Task{
		Title:     title,
		Status:    domain.StatusPending,
		Priority:  domain.PriorityMedium,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed task %s: %v", title, err)
	}
	return task
}

func newAdminService(users *stubUserRepo, tasks *stubTaskRepo) *AdminService {
	return NewAdminService(users, tasks, &stubAuditRepo{}, nil, zerolog.Nop())
}

func TestAdminService_DeleteUser_Cascades(t *testing.T) {
	users := newStubUserRepo()
	tasks := newStubTaskRepo()
	svc := newAdminService(users, tasks)

	alice := seedUser(t, users, "alice", "alice@example.com", domain.RoleUser)
	bob := seedUser(t, users, "bob", "bob@example.com", domain.RoleUser)

	for i := 0; i < 3; i++ {
		seedTask(t, tasks, alice.ID, "alice task")
	}
	keep := seedTask(t, tasks, bob.ID, "bob task")

	result, err := svc.DeleteUser(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if result.TasksDeleted != 3 {
		t.Fatalf("expected 3 tasks deleted, got %d", result.TasksDeleted)
	}

	if _, err := users.FindByID(context.Background(), alice.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
	if n, _ := tasks.CountByOwner(context.Background(), alice.ID); n != 0 {
		t.Fatalf("expected no orphaned tasks, got %d", n)
	}
	if _, err := tasks.FindByID(context.Background(), keep.ID); err != nil {
		t.Fatalf("other user's task should be untouched: %v", err)
	}
}

func TestAdminService_DeleteUser_NotFound(t *testing.T) {
	svc := newAdminService(newStubUserRepo(), newStubTaskRepo())

	if _, err := svc.DeleteUser(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAdminService_DeleteTask(t *testing.T) {
	users := newStubUserRepo()
	tasks := newStubTaskRepo()
	svc := newAdminService(users, tasks)

	owner := seedUser(t, users, "carol", "carol@example.com", domain.RoleUser)
	task := seedTask(t, tasks, owner.ID, "any task")

	if err := svc.DeleteTask(context.Background(), task.ID); err != nil {
		t.Fatalf("DeleteTask returned error: %v", err)
	}
	if err := svc.DeleteTask(context.Background(), task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on second delete, got %v", err)
	}
	// The owner survives a task delete.
	if _, err := users.FindByID(context.Background(), owner.ID); err != nil {
		t.Fatalf("owner should survive: %v", err)
	}
}

func TestAdminService_ListTasks_EnrichesOwner(t *testing.T) {
	users := newStubUserRepo()
	tasks := newStubTaskRepo()
	svc := newAdminService(users, tasks)

	owner := seedUser(t, users, "dora", "dora@example.com", domain.RoleAdmin)
	seedTask(t, tasks, owner.ID, "owned task")
	seedTask(t, tasks, "vanished_user", "orphaned task")

	listed, err := svc.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(listed))
	}

	byTitle := make(map[string]ports.AdminTask)
	for _, at := range listed {
		byTitle[at.Task.Title] = at
	}
	owned := byTitle["owned task"]
	if owned.Owner.Username != "dora" || owned.Owner.Email != "dora@example.com" || owned.Owner.Role != domain.RoleAdmin {
		t.Fatalf("owner not enriched: %+v", owned.Owner)
	}
	orphan := byTitle["orphaned task"]
	if orphan.Owner != (ports.TaskOwner{}) {
		t.Fatalf("expected empty owner for orphan, got %+v", orphan.Owner)
	}
}

func TestAdminService_ListUsers(t *testing.T) {
	users := newStubUserRepo()
	svc := newAdminService(users, newStubTaskRepo())

	seedUser(t, users, "erin", "erin@example.com", domain.RoleUser)
	seedUser(t, users, "frank", "frank@example.com", domain.RoleAdmin)

	listed, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 users, got %d", len(listed))
	}
}

func TestAdminService_RecentAudit_ClampsLimit(t *testing.T) {
	audits := &stubAuditRepo{}
	svc := NewAdminService(newStubUserRepo(), newStubTaskRepo(), audits, nil, zerolog.Nop())

	for i := 0; i < 5; i++ {
		_ = audits.Insert(context.Background(), &domain.AuditEntry{Action: "task.create", At: time.Now().UTC()})
	}

	entries, err := svc.RecentAudit(context.Background(), -1)
	if err != nil {
		t.Fatalf("RecentAudit returned error: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
}

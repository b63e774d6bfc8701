package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-system/internal/core/domain"
	"github.com/taskhub/task-system/internal/core/ports"
)

const defaultAuditLimit = 100

// AdminService implements the unrestricted listings and deletes reachable only
// behind the admin role gate.
type AdminService struct {
	users  ports.UserRepository
	tasks  ports.TaskRepository
	audits ports.AuditRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewAdminService(users ports.UserRepository, tasks ports.TaskRepository, audits ports.AuditRepository, audit ports.AuditRecorder, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, tasks: tasks, audits: audits, audit: audit, logger: logger}
}

// ListUsers returns every account. Password hashes never serialize (json:"-").
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListAll(ctx)
}

// ListTasks returns every task enriched with its owner's public fields.
// Tasks whose owner no longer exists are still listed, with an empty owner.
func (s *AdminService) ListTasks(ctx context.Context) ([]ports.AdminTask, error) {
	tasks, _, err := s.tasks.List(ctx, ports.ListTasksFilter{})
	if err != nil {
		return nil, err
	}

	owners := make(map[string]*domain.User)
	out := make([]ports.AdminTask, 0, len(tasks))
	for _, t := range tasks {
		owner, ok := owners[t.OwnerID]
		if !ok {
			owner, err = s.users.FindByID(ctx, t.OwnerID)
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
			owners[t.OwnerID] = owner
		}

		at := ports.AdminTask{Task: t}
		if owner != nil {
			at.Owner = ports.TaskOwner{Username: owner.Username, Email: owner.Email, Role: owner.Role}
		}
		out = append(out, at)
	}
	return out, nil
}

// DeleteUser removes the user and cascades to every task it owns. The two
// deletes are not atomic; the user record goes first so a failure cannot
// leave a live account, and the task sweep follows so no orphans remain.
func (s *AdminService) DeleteUser(ctx context.Context, id string) (*ports.DeleteUserResult, error) {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}

	deleted, err := s.tasks.DeleteByOwner(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("cascade task delete failed")
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Int64("tasks_deleted", deleted).Msg("user deleted")
	s.record(ctx, domain.AuditEntry{Action: "admin.user.delete", Resource: id})
	return &ports.DeleteUserResult{TasksDeleted: deleted}, nil
}

// DeleteTask removes a single task regardless of owner.
func (s *AdminService) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.tasks.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, domain.AuditEntry{Action: "admin.task.delete", Resource: id})
	return nil
}

// RecentAudit returns the newest audit entries, bounded by limit.
func (s *AdminService) RecentAudit(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	if limit < 1 || limit > defaultAuditLimit {
		limit = defaultAuditLimit
	}
	return s.audits.ListRecent(ctx, limit)
}

func (s *AdminService) record(ctx context.Context, entry domain.AuditEntry) {
	if s.audit == nil {
		return
	}
	entry.ActorID = actorFromContext(ctx)
	entry.At = time.Now().UTC()
	s.audit.Record(entry)
}

type actorKey struct{}

// WithActor stamps the acting user id onto the context so admin mutations can
// be attributed in the audit trail.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func actorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}

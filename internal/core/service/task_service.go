package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-system/internal/core/domain"
	"github.com/taskhub/task-system/internal/core/ports"
)

const (
	titleMinLen   = 3
	titleMaxLen   = 500
	descMaxLen    = 500
	defaultLimit  = 10
	maxLimit      = 50
	dueDateLayout = "2006-01-02"
)

// TaskService implements task CRUD with validation and pagination.
type TaskService struct {
	repo   ports.TaskRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, audit ports.AuditRecorder, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, audit: audit, logger: logger}
}

// Create validates input and persists a new task owned by ownerID.
// Status defaults to pending and priority to medium when omitted.
func (s *TaskService) Create(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*domain.Task, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}

	status := domain.TaskStatus(input.Status)
	if input.Status == "" {
		status = domain.StatusPending
	} else if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, input.Status)
	}

	priority := domain.TaskPriority(input.Priority)
	if input.Priority == "" {
		priority = domain.PriorityMedium
	} else if !priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, input.Priority)
	}

	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create task")
		return nil, err
	}

	s.record(domain.AuditEntry{ActorID: ownerID, Action: "task.create", Resource: created.ID})
	return created, nil
}

// List returns the owner's tasks, newest first. Page and limit outside their
// valid ranges are clamped rather than rejected.
func (s *TaskService) List(ctx context.Context, ownerID string, page, limit int) (*ports.TaskPage, error) {
	if page < 1 {
		page = 1
	}
	// An omitted limit (zero) means the default page size; an explicit
	// negative one clamps to the smallest valid size instead.
	switch {
	case limit == 0:
		limit = defaultLimit
	case limit < 0:
		limit = 1
	case limit > maxLimit:
		limit = maxLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListTasksFilter{OwnerID: ownerID, Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}

	pages := int(math.Ceil(float64(total) / float64(limit)))
	if pages < 1 {
		pages = 1
	}

	return &ports.TaskPage{
		Items: items,
		Page:  page,
		Pages: pages,
		Total: total,
		Limit: limit,
	}, nil
}

// Update applies the provided fields to an already-resolved task, leaving nil
// fields untouched. An explicitly empty due date clears it. Changed fields are
// re-validated against the same constraints as creation.
func (s *TaskService) Update(ctx context.Context, task *domain.Task, input ports.UpdateTaskInput) (*domain.Task, error) {
	if !input.HasFields() {
		return nil, domain.ErrNoFields
	}

	if input.Title != nil {
		title, err := validateTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		task.Description = *input.Description
	}
	if input.Status != nil {
		status := domain.TaskStatus(*input.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, *input.Status)
		}
		task.Status = status
	}
	if input.Priority != nil {
		priority := domain.TaskPriority(*input.Priority)
		if !priority.Valid() {
			return nil, fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, *input.Priority)
		}
		task.Priority = priority
	}
	if input.DueDate != nil {
		if *input.DueDate == "" {
			task.DueDate = nil
		} else {
			dueDate, err := parseDueDate(*input.DueDate)
			if err != nil {
				return nil, err
			}
			task.DueDate = dueDate
		}
	}

	task.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("task_id", task.ID).Msg("failed to update task")
		return nil, err
	}

	s.record(domain.AuditEntry{ActorID: task.OwnerID, Action: "task.update", Resource: task.ID})
	return updated, nil
}

// Delete removes an already-resolved task.
func (s *TaskService) Delete(ctx context.Context, task *domain.Task) error {
	if err := s.repo.Delete(ctx, task.ID); err != nil {
		s.logger.Error().Err(err).Str("task_id", task.ID).Msg("failed to delete task")
		return err
	}
	s.record(domain.AuditEntry{ActorID: task.OwnerID, Action: "task.delete", Resource: task.ID})
	return nil
}

func (s *TaskService) record(entry domain.AuditEntry) {
	if s.audit == nil {
		return
	}
	entry.At = time.Now().UTC()
	s.audit.Record(entry)
}

func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if len(trimmed) < titleMinLen {
		return "", fmt.Errorf("%w: title must be at least %d characters", domain.ErrValidation, titleMinLen)
	}
	if len(trimmed) > titleMaxLen {
		return "", fmt.Errorf("%w: title must be at most %d characters", domain.ErrValidation, titleMaxLen)
	}
	return trimmed, nil
}

func validateDescription(desc string) error {
	if len(desc) > descMaxLen {
		return fmt.Errorf("%w: description must be at most %d characters", domain.ErrValidation, descMaxLen)
	}
	return nil
}

// parseDueDate accepts RFC 3339 timestamps or plain dates. Empty input means
// no due date.
func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.Parse(dueDateLayout, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, fmt.Errorf("%w: invalid due date %q", domain.ErrValidation, raw)
}

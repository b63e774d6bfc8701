package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-system/internal/core/domain"
	"github.com/taskhub/task-system/internal/core/ports"
)

type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	if t == nil {
		return nil
	}
	clone := *t
	if t.DueDate != nil {
		due := *t.DueDate
		clone.DueDate = &due
	}
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.nextID++
	created := cloneTask(t)
	created.ID = fmt.Sprintf("task_%d", r.nextID)
	r.tasks[created.ID] = cloneTask(created)
	return created, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	if t, ok := r.tasks[id]; ok {
		return cloneTask(t), nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) List(_ context.Context, filter ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	var matched []*domain.Task
	for _, t := range r.tasks {
		if filter.OwnerID == "" || t.OwnerID == filter.OwnerID {
			matched = append(matched, cloneTask(t))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if filter.Limit > 0 {
		start := (filter.Page - 1) * filter.Limit
		if start > len(matched) {
			start = len(matched)
		}
		end := start + filter.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) (*domain.Task, error) {
	if _, ok := r.tasks[t.ID]; !ok {
		return nil, domain.ErrTaskNotFound
	}
	r.tasks[t.ID] = cloneTask(t)
	return cloneTask(t), nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	var deleted int64
	for id, t := range r.tasks {
		if t.OwnerID == ownerID {
			delete(r.tasks, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *stubTaskRepo) CountByOwner(_ context.Context, ownerID string) (int64, error) {
	var n int64
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func newTaskService(repo *stubTaskRepo) *TaskService {
	return NewTaskService(repo, nil, zerolog.Nop())
}

func strptr(s string) *string { return &s }

func TestTaskService_Create_Defaults(t *testing.T) {
	svc := newTaskService(newStubTaskRepo())

	task, err := svc.Create(context.Background(), "user_1", ports.CreateTaskInput{Title: "  Write docs  "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.Title != "Write docs" {
		t.Fatalf("expected trimmed title, got %q", task.Title)
	}
	if task.Status != domain.StatusPending {
		t.Fatalf("expected default status pending, got %s", task.Status)
	}
	if task.Priority != domain.PriorityMedium {
		t.Fatalf("expected default priority medium, got %s", task.Priority)
	}
	if task.OwnerID != "user_1" {
		t.Fatalf("unexpected owner: %s", task.OwnerID)
	}
	if task.DueDate != nil {
		t.Fatalf("expected no due date, got %v", task.DueDate)
	}
}

func TestTaskService_Create_RoundTrip(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	created, err := svc.Create(context.Background(), "user_1", ports.CreateTaskInput{
		Title:       "Prepare demo",
		Description: "Walk through the admin panel",
		Status:      "in_progress",
		Priority:    "high",
		DueDate:     "2026-09-15",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	fetched, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if fetched.Title != created.Title || fetched.Description != created.Description {
		t.Fatalf("fetched task differs: %+v vs %+v", fetched, created)
	}
	if fetched.Status != domain.StatusInProgress || fetched.Priority != domain.PriorityHigh {
		t.Fatalf("fetched enums differ: %s/%s", fetched.Status, fetched.Priority)
	}
	if fetched.DueDate == nil || !fetched.DueDate.Equal(*created.DueDate) {
		t.Fatalf("fetched due date differs: %v vs %v", fetched.DueDate, created.DueDate)
	}
}

func TestTaskService_Create_Validation(t *testing.T) {
	svc := newTaskService(newStubTaskRepo())

	cases := []struct {
		name  string
		input ports.CreateTaskInput
	}{
		{"empty title", ports.CreateTaskInput{Title: ""}},
		{"short title", ports.CreateTaskInput{Title: "ab"}},
		{"whitespace title", ports.CreateTaskInput{Title: "  a  "}},
		{"long description", ports.CreateTaskInput{Title: "valid", Description: string(make([]byte, 501))}},
		{"bad status", ports.CreateTaskInput{Title: "valid", Status: "archived"}},
		{"bad priority", ports.CreateTaskInput{Title: "valid", Priority: "urgent"}},
		{"bad due date", ports.CreateTaskInput{Title: "valid", DueDate: "not-a-date"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), "user_1", tc.input); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestTaskService_List_Pagination(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	base := time.Now().UTC()
	for i := 0; i < 25; i++ {
		repo.tasks[fmt.Sprintf("seed_%d", i)] = &domain.Task{
			ID:        fmt.Sprintf("seed_%d", i),
			Title:     fmt.Sprintf("Task %d", i),
			Status:    domain.StatusPending,
			Priority:  domain.PriorityMedium,
			OwnerID:   "user_1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}

	cases := []struct {
		name                  string
		page, limit           int
		wantPage, wantLimit   int
		wantPages             int
		wantItems             int
	}{
		{"defaults", 0, 0, 1, 10, 3, 10},
		{"negative page", -5, 10, 1, 10, 3, 10},
		{"limit clamped high", 1, 500, 1, 50, 1, 25},
		{"negative limit clamped to one", 1, -1, 1, 1, 25, 1},
		{"last partial page", 3, 10, 3, 10, 3, 5},
		{"page past the end", 9, 10, 9, 10, 3, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := svc.List(context.Background(), "user_1", tc.page, tc.limit)
			if err != nil {
				t.Fatalf("List returned error: %v", err)
			}
			if page.Page != tc.wantPage || page.Limit != tc.wantLimit || page.Pages != tc.wantPages {
				t.Fatalf("got page=%d limit=%d pages=%d, want %d/%d/%d",
					page.Page, page.Limit, page.Pages, tc.wantPage, tc.wantLimit, tc.wantPages)
			}
			if len(page.Items) != tc.wantItems {
				t.Fatalf("got %d items, want %d", len(page.Items), tc.wantItems)
			}
			if page.Total != 25 {
				t.Fatalf("got total %d, want 25", page.Total)
			}
		})
	}
}

func TestTaskService_List_EmptyIsSinglePage(t *testing.T) {
	svc := newTaskService(newStubTaskRepo())

	page, err := svc.List(context.Background(), "user_1", 0, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.Pages != 1 || page.Total != 0 || page.Page != 1 || len(page.Items) != 0 {
		t.Fatalf("unexpected empty page: %+v", page)
	}
}

func TestTaskService_List_ScopedToOwner(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	_, _ = svc.Create(context.Background(), "user_1", ports.CreateTaskInput{Title: "mine"})
	_, _ = svc.Create(context.Background(), "user_2", ports.CreateTaskInput{Title: "theirs"})

	page, err := svc.List(context.Background(), "user_1", 1, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].Title != "mine" {
		t.Fatalf("expected only owner's task, got %+v", page.Items)
	}
}

func TestTaskService_Update_PartialFields(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	created, err := svc.Create(context.Background(), "user_1", ports.CreateTaskInput{
		Title:    "Original title",
		Status:   "pending",
		Priority: "low",
		DueDate:  "2026-09-01",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update(context.Background(), cloneTask(created), ports.UpdateTaskInput{
		Status: strptr("done"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Status != domain.StatusDone {
		t.Fatalf("expected status done, got %s", updated.Status)
	}
	if updated.Title != "Original title" || updated.Priority != domain.PriorityLow {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.DueDate == nil {
		t.Fatalf("due date should be unchanged")
	}
}

func TestTaskService_Update_ClearsDueDate(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	created, _ := svc.Create(context.Background(), "user_1", ports.CreateTaskInput{
		Title:   "Has a deadline",
		DueDate: "2026-09-01",
	})

	updated, err := svc.Update(context.Background(), cloneTask(created), ports.UpdateTaskInput{
		DueDate: strptr(""),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.DueDate != nil {
		t.Fatalf("expected due date cleared, got %v", updated.DueDate)
	}
}

func TestTaskService_Update_NoFields(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	created, _ := svc.Create(context.Background(), "user_1", ports.CreateTaskInput{Title: "No changes"})

	if _, err := svc.Update(context.Background(), cloneTask(created), ports.UpdateTaskInput{}); !errors.Is(err, domain.ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}
}

func TestTaskService_Update_RevalidatesChangedFields(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	created, _ := svc.Create(context.Background(), "user_1", ports.CreateTaskInput{Title: "Valid title"})

	if _, err := svc.Update(context.Background(), cloneTask(created), ports.UpdateTaskInput{Title: strptr(" x ")}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for short title, got %v", err)
	}
	if _, err := svc.Update(context.Background(), cloneTask(created), ports.UpdateTaskInput{Status: strptr("archived")}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad status, got %v", err)
	}
}

func TestTaskService_Delete(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	created, _ := svc.Create(context.Background(), "user_1", ports.CreateTaskInput{Title: "Delete me"})

	if err := svc.Delete(context.Background(), created); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected task gone, got %v", err)
	}
}

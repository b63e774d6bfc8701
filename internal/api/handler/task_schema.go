package handler

import "time"

// createTaskRequest is the payload for POST /tasks. Status and priority
// default server-side when omitted; due_date accepts RFC 3339 or 2006-01-02.
type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"max=500"`
	Status      string `json:"status"      validate:"omitempty,oneof=pending in_progress done"`
	Priority    string `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     string `json:"due_date"`
}

// updateTaskRequest is the payload for PUT /tasks/:id. Pointer fields
// distinguish "absent" from "present but empty": an absent field is left
// unchanged, an empty due_date clears the stored value. Field-level
// constraints are enforced by the service so partial updates share the
// creation rules.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
}

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	OwnerID     string     `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// listTasksResponse matches the pagination contract of GET /tasks.
type listTasksResponse struct {
	Items []taskResponse `json:"items"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
	Total int64          `json:"total"`
	Limit int            `json:"limit"`
}

type messageResponse struct {
	Message string `json:"message"`
}

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-system/internal/core/domain"
)

// TaskContextKey is where Owner stashes the resolved task for the handler,
// saving it a second lookup.
const TaskContextKey = "task"

// TaskLoader is the single repository operation Owner needs.
type TaskLoader interface {
	FindByID(ctx context.Context, id string) (*domain.Task, error)
}

// Owner guards task mutation routes: it loads the task from the :id path
// parameter, rejects with 404 when absent and 403 when the authenticated
// identity is not the owner, and attaches the resolved task to the context.
// The check is strict identity equality; an admin going through these routes
// is still subject to it. Only the dedicated admin routes bypass ownership.
func Owner(loader TaskLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			task, err := loader.FindByID(c.Request().Context(), c.Param("id"))
			if err != nil {
				if errors.Is(err, domain.ErrTaskNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "task not found")
				}
				return err
			}

			userID, _ := c.Get("user_id").(string)
			if task.OwnerID != userID {
				return echo.NewHTTPError(http.StatusForbidden, "not your task")
			}

			c.Set(TaskContextKey, task)
			return next(c)
		}
	}
}

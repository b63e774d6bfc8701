package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-system/internal/api/metrics"
	"github.com/taskhub/task-system/internal/core/ports"
	"github.com/taskhub/task-system/internal/core/service"
)

// AdminHandler handles the unrestricted routes behind the admin role gate.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type deleteUserResponse struct {
	Message      string `json:"message"`
	TasksDeleted int64  `json:"tasks_deleted"`
}

// ListUsers handles GET /admin/users.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// ListTasks handles GET /admin/tasks, every task enriched with its owner.
//
// @Summary      List all tasks with owners
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.AdminTask
// @Failure      403  {object}  map[string]string
// @Router       /admin/tasks [get]
func (h *AdminHandler) ListTasks(c echo.Context) error {
	tasks, err := h.service.ListTasks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// DeleteUser handles DELETE /admin/users/:id, cascading to the user's tasks.
//
// @Summary      Delete a user and all tasks it owns
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id"
// @Success      200  {object}  deleteUserResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actorID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ctx := service.WithActor(c.Request().Context(), actorID)
	result, err := h.service.DeleteUser(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return c.JSON(http.StatusOK, deleteUserResponse{
		Message:      "user deleted",
		TasksDeleted: result.TasksDeleted,
	})
}

// DeleteTask handles DELETE /admin/tasks/:id regardless of owner.
//
// @Summary      Delete any task
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/tasks/{id} [delete]
func (h *AdminHandler) DeleteTask(c echo.Context) error {
	actorID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ctx := service.WithActor(c.Request().Context(), actorID)
	if err := h.service.DeleteTask(ctx, c.Param("id")); err != nil {
		return err
	}

	metrics.TasksDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "task deleted"})
}

// Audit handles GET /admin/audit?limit.
//
// @Summary      Recent audit entries
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries (default 100)"
// @Success      200    {array}   domain.AuditEntry
// @Failure      403    {object}  map[string]string
// @Router       /admin/audit [get]
func (h *AdminHandler) Audit(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	entries, err := h.service.RecentAudit(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

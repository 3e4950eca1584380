package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bonehealth/analysis-system/internal/core/domain"
)

// TaskHandler serves the static analysis-task catalog.
type TaskHandler struct{}

func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

// List handles GET /v1/tasks.
//
// @Summary      List available analysis tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  taskView
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	tasks := domain.Tasks()
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView{ID: string(t.ID), Name: t.Name})
	}
	return c.JSON(http.StatusOK, views)
}

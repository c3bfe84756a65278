package handlers

import (
	"errors"
	"net/http"

	"task_manager/internal/models"
	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errCreateTask = "failed to create task"
	errListTasks  = "failed to list tasks"
	errGetTask    = "failed to load task"
	errUpdateTask = "failed to update task"
	errDeleteTask = "failed to delete task"

	msgTaskNotFound = "task not found"
)

// Centralized error logging and response for unexpected store failures.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for creating a task.
type createTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// @Summary      Create task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body  createTaskRequest  true  "Task payload"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/tasks [post]
// @Security     BearerAuth
func (h *Handler) createTask(c *gin.Context) {
	var req createTaskRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	if _, err := h.services.Tasks.Create(c.Request.Context(), req.Title, req.Description); err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errCreateTask, "task_create_failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "task created"})
}

// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Param        status  query  string  false  "Filter by status"  Enums(completed,pending)
// @Success      200  {array}   models.Task
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/tasks [get]
// @Security     BearerAuth
func (h *Handler) listTasks(c *gin.Context) {
	tasks, err := h.services.Tasks.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errListTasks, "task_list_failed", err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// @Summary      Get task
// @Tags         tasks
// @Produce      json
// @Param        id  path  string  true  "Task id"
// @Success      200  {object}  models.Task
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/tasks/{id} [get]
// @Security     BearerAuth
func (h *Handler) getTask(c *gin.Context) {
	id := h.taskIDOrBadRequest(c)
	if id == "" {
		return
	}

	task, err := h.services.Tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgTaskNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetTask, "task_get_failed", err, "id", id)
		return
	}

	c.JSON(http.StatusOK, task)
}

// @Summary      Update task
// @Description  If the payload carries "completed", only that flag is updated; otherwise every present field is merged.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "Task id"
// @Param        body  body  models.TaskPatch  true  "Fields to update"
// @Success      200  {object}  map[string]interface{}  "message, task"
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/tasks/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateTask(c *gin.Context) {
	id := h.taskIDOrBadRequest(c)
	if id == "" {
		return
	}

	var patch models.TaskPatch
	if ok := h.bindJSONOrBadRequest(c, &patch); !ok {
		return
	}

	task, err := h.services.Tasks.Update(c.Request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": msgTaskNotFound})
		case errors.Is(err, service.ErrEmptyTitle):
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errUpdateTask, "task_update_failed", err, "id", id)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task updated", "task": task})
}

// @Summary      Delete task
// @Tags         tasks
// @Produce      json
// @Param        id  path  string  true  "Task id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/tasks/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTask(c *gin.Context) {
	id := h.taskIDOrBadRequest(c)
	if id == "" {
		return
	}

	if err := h.services.Tasks.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgTaskNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteTask, "task_delete_failed", err, "id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

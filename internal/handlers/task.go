package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/middleware"
	"github.com/teamflow/backend/internal/services"
	"github.com/teamflow/backend/pkg/response"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(middleware.GetWorkspaceID(c), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskService.List(middleware.GetWorkspaceID(c), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

func (h *TaskHandler) Get(c *gin.Context) {
	taskID, ok := parseID(c, "taskID")
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(taskID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	taskID, ok := parseID(c, "taskID")
	if !ok {
		return
	}

	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Update(taskID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task)
}

// Move changes a task's kanban column.
func (h *TaskHandler) Move(c *gin.Context) {
	taskID, ok := parseID(c, "taskID")
	if !ok {
		return
	}

	var req services.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Move(taskID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, ok := parseID(c, "taskID")
	if !ok {
		return
	}

	if err := h.taskService.Delete(taskID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "task deleted"})
}

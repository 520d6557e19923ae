package services

import (
	"errors"

	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/response"
	"gorm.io/gorm"
)

// TaskService manages kanban cards. All operations are member-level.
type TaskService struct {
	db   *gorm.DB
	perm *PermissionService
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db, perm: NewPermissionService(db)}
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	AssignedTo  *uint  `json:"assigned_to"`
}

type UpdateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	AssignedTo  *uint   `json:"assigned_to"`
}

type MoveTaskRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *TaskService) getTask(taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(response.CodeTaskNotFound, "task not found")
		}
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Create(workspaceID, userID uint, req *CreateTaskRequest) (*models.Task, error) {
	if _, err := s.perm.Require(workspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	task := models.Task{
		WorkspaceID: workspaceID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusTodo,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   userID,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns a workspace's tasks grouped by creation order; the board
// grouping by column happens client-side.
func (s *TaskService) List(workspaceID, userID uint) ([]models.Task, error) {
	if _, err := s.perm.Require(workspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	var tasks []models.Task
	err := s.db.Where("workspace_id = ?", workspaceID).
		Preload("Assignee").
		Order("created_at").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) GetByID(taskID, userID uint) (*models.Task, error) {
	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.perm.Require(task.WorkspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Update(taskID, userID uint, req *UpdateTaskRequest) (*models.Task, error) {
	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.perm.Require(task.WorkspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = req.AssignedTo
	}

	if len(updates) > 0 {
		if err := s.db.Model(task).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return task, nil
}

// Move changes a task's kanban column.
func (s *TaskService) Move(taskID, userID uint, req *MoveTaskRequest) (*models.Task, error) {
	if !models.ValidTaskStatus(req.Status) {
		return nil, response.NewBadRequest(response.CodeInvalidArgument, "invalid status: must be todo, in_progress or done")
	}

	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.perm.Require(task.WorkspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	if err := s.db.Model(task).Update("status", req.Status).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(taskID, userID uint) error {
	task, err := s.getTask(taskID)
	if err != nil {
		return err
	}
	if _, err := s.perm.Require(task.WorkspaceID, userID, PermissionMember); err != nil {
		return err
	}

	return s.db.Delete(task).Error
}

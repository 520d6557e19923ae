package services

import (
	"net/http"
	"testing"

	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/response"
)

func TestTaskLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)
	manager := createUser(t, db, "alice")
	dev := createUser(t, db, "bob")
	ws := createWorkspace(t, db, "acme", manager.ID)
	addMember(t, db, ws.ID, dev.ID, models.RoleDeveloper)

	task, err := svc.Create(ws.ID, dev.ID, &CreateTaskRequest{Title: "write docs"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Status != models.TaskStatusTodo {
		t.Errorf("status = %s, want todo", task.Status)
	}

	moved, err := svc.Move(task.ID, dev.ID, &MoveTaskRequest{Status: models.TaskStatusInProgress})
	if err != nil {
		t.Fatalf("Move: %v", err)
	}

	var reloaded models.Task
	db.First(&reloaded, moved.ID)
	if reloaded.Status != models.TaskStatusInProgress {
		t.Errorf("status = %s, want in_progress", reloaded.Status)
	}

	_, err = svc.Move(task.ID, dev.ID, &MoveTaskRequest{Status: "archived"})
	assertAppError(t, err, http.StatusBadRequest, response.CodeInvalidArgument)

	if err := svc.Delete(task.ID, dev.ID); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestTaskMemberScope(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)
	manager := createUser(t, db, "alice")
	outsider := createUser(t, db, "eve")
	ws := createWorkspace(t, db, "acme", manager.ID)

	task, err := svc.Create(ws.ID, manager.ID, &CreateTaskRequest{Title: "write docs"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.GetByID(task.ID, outsider.ID)
	assertAppError(t, err, http.StatusNotFound, response.CodeUserNotMember)

	_, err = svc.Create(ws.ID, outsider.ID, &CreateTaskRequest{Title: "sneak in"})
	assertAppError(t, err, http.StatusNotFound, response.CodeUserNotMember)
}

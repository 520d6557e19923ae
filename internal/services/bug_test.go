package services

import (
	"net/http"
	"testing"

	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/response"
)

func TestBugCreateAnyMember(t *testing.T) {
	db := setupTestDB(t)
	releaseSvc := NewReleaseService(db)
	svc := NewBugService(db)
	manager := createUser(t, db, "alice")
	dev := createUser(t, db, "bob")
	ws := createWorkspace(t, db, "acme", manager.ID)
	addMember(t, db, ws.ID, dev.ID, models.RoleDeveloper)

	release, err := releaseSvc.Create(ws.ID, manager.ID, &CreateReleaseRequest{Name: "v1.0"})
	if err != nil {
		t.Fatalf("create release: %v", err)
	}

	bug, err := svc.Create(release.ID, dev.ID, &CreateBugRequest{Title: "crash on login"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if bug.Severity != "medium" {
		t.Errorf("default severity = %s, want medium", bug.Severity)
	}
	if bug.Status != "open" {
		t.Errorf("status = %s, want open", bug.Status)
	}
	if bug.WorkspaceID != ws.ID {
		t.Errorf("workspace_id = %d, want %d", bug.WorkspaceID, ws.ID)
	}
}

func TestBugCreateOutsiderRejected(t *testing.T) {
	db := setupTestDB(t)
	releaseSvc := NewReleaseService(db)
	svc := NewBugService(db)
	manager := createUser(t, db, "alice")
	outsider := createUser(t, db, "eve")
	ws := createWorkspace(t, db, "acme", manager.ID)

	release, err := releaseSvc.Create(ws.ID, manager.ID, &CreateReleaseRequest{Name: "v1.0"})
	if err != nil {
		t.Fatalf("create release: %v", err)
	}

	_, err = svc.Create(release.ID, outsider.ID, &CreateBugRequest{Title: "x"})
	assertAppError(t, err, http.StatusNotFound, response.CodeUserNotMember)
}

func TestBugUpdateRoles(t *testing.T) {
	db := setupTestDB(t)
	releaseSvc := NewReleaseService(db)
	svc := NewBugService(db)
	manager := createUser(t, db, "alice")
	qa := createUser(t, db, "quinn")
	dev := createUser(t, db, "bob")
	assignee := createUser(t, db, "carol")
	ws := createWorkspace(t, db, "acme", manager.ID)
	addMember(t, db, ws.ID, qa.ID, models.RoleQA)
	addMember(t, db, ws.ID, dev.ID, models.RoleDeveloper)
	addMember(t, db, ws.ID, assignee.ID, models.RoleDeveloper)

	release, err := releaseSvc.Create(ws.ID, manager.ID, &CreateReleaseRequest{Name: "v1.0"})
	if err != nil {
		t.Fatalf("create release: %v", err)
	}

	bug, err := svc.Create(release.ID, dev.ID, &CreateBugRequest{
		Title:      "crash",
		AssignedTo: &assignee.ID,
	})
	if err != nil {
		t.Fatalf("create bug: %v", err)
	}

	// qa, manager and the assignee may update
	for _, uid := range []uint{qa.ID, manager.ID, assignee.ID} {
		if _, err := svc.Update(bug.ID, uid, &UpdateBugRequest{Status: "in_progress"}); err != nil {
			t.Errorf("user %d update should succeed: %v", uid, err)
		}
	}

	// an unassigned developer may not
	_, err = svc.Update(bug.ID, dev.ID, &UpdateBugRequest{Status: "resolved"})
	assertAppError(t, err, http.StatusForbidden, response.CodeUnauthorizedAction)
}

func TestBugDeleteAssigneeNotEnough(t *testing.T) {
	db := setupTestDB(t)
	releaseSvc := NewReleaseService(db)
	svc := NewBugService(db)
	manager := createUser(t, db, "alice")
	assignee := createUser(t, db, "carol")
	ws := createWorkspace(t, db, "acme", manager.ID)
	addMember(t, db, ws.ID, assignee.ID, models.RoleDeveloper)

	release, err := releaseSvc.Create(ws.ID, manager.ID, &CreateReleaseRequest{Name: "v1.0"})
	if err != nil {
		t.Fatalf("create release: %v", err)
	}

	bug, err := svc.Create(release.ID, manager.ID, &CreateBugRequest{
		Title:      "crash",
		AssignedTo: &assignee.ID,
	})
	if err != nil {
		t.Fatalf("create bug: %v", err)
	}

	// Assignment grants update rights, not delete rights
	err = svc.Delete(bug.ID, assignee.ID)
	assertAppError(t, err, http.StatusForbidden, response.CodeUnauthorizedAction)

	if err := svc.Delete(bug.ID, manager.ID); err != nil {
		t.Errorf("manager delete: %v", err)
	}
}

func TestBugNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBugService(db)
	user := createUser(t, db, "alice")

	_, err := svc.GetByID(999, user.ID)
	assertAppError(t, err, http.StatusNotFound, response.CodeBugNotFound)

	_, err = svc.Create(999, user.ID, &CreateBugRequest{Title: "x"})
	assertAppError(t, err, http.StatusNotFound, response.CodeReleaseNotFound)
}

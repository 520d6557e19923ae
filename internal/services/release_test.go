package services

import (
	"net/http"
	"testing"

	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/response"
)

func TestReleaseCreateManagerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReleaseService(db)
	manager := createUser(t, db, "alice")
	dev := createUser(t, db, "bob")
	ws := createWorkspace(t, db, "acme", manager.ID)
	addMember(t, db, ws.ID, dev.ID, models.RoleDeveloper)

	_, err := svc.Create(ws.ID, dev.ID, &CreateReleaseRequest{Name: "v1.0"})
	assertAppError(t, err, http.StatusForbidden, response.CodeUnauthorizedAction)

	release, err := svc.Create(ws.ID, manager.ID, &CreateReleaseRequest{Name: "v1.0"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if release.Status != models.ReleaseStatusPlanned {
		t.Errorf("status = %s, want planned", release.Status)
	}
	if release.QAStatus != models.QAStatusPending {
		t.Errorf("qa_status = %s, want pending", release.QAStatus)
	}
}

func TestReleaseDeployCreatorOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReleaseService(db)
	creator := createUser(t, db, "alice")
	otherManager := createUser(t, db, "bob")
	ws := createWorkspace(t, db, "acme", creator.ID)
	addMember(t, db, ws.ID, otherManager.ID, models.RoleManager)

	release, err := svc.Create(ws.ID, creator.ID, &CreateReleaseRequest{Name: "v1.0"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A second manager who did not create the release may not deploy it
	_, err = svc.Deploy(release.ID, otherManager.ID)
	assertAppError(t, err, http.StatusForbidden, response.CodeUnauthorizedAction)

	deployed, err := svc.Deploy(release.ID, creator.ID)
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}

	var reloaded models.Release
	db.First(&reloaded, deployed.ID)
	if reloaded.Status != models.ReleaseStatusDeployed {
		t.Errorf("status = %s, want deployed", reloaded.Status)
	}
	if reloaded.DeployedAt == nil {
		t.Error("deployed_at should be set")
	}
}

func TestReleaseDeployRequiresManagerRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReleaseService(db)
	manager := createUser(t, db, "alice")
	ws := createWorkspace(t, db, "acme", manager.ID)

	release, err := svc.Create(ws.ID, manager.ID, &CreateReleaseRequest{Name: "v1.0"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The creator demoted to developer loses deploy rights even though
	// created_by still matches
	db.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", ws.ID, manager.ID).
		Update("role", models.RoleDeveloper)

	_, err = svc.Deploy(release.ID, manager.ID)
	assertAppError(t, err, http.StatusForbidden, response.CodeUnauthorizedAction)
}

func TestReleaseQAStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReleaseService(db)
	manager := createUser(t, db, "alice")
	qa := createUser(t, db, "quinn")
	dev := createUser(t, db, "bob")
	ws := createWorkspace(t, db, "acme", manager.ID)
	addMember(t, db, ws.ID, qa.ID, models.RoleQA)
	addMember(t, db, ws.ID, dev.ID, models.RoleDeveloper)

	release, err := svc.Create(ws.ID, manager.ID, &CreateReleaseRequest{Name: "v1.0"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.UpdateQAStatus(release.ID, dev.ID, &UpdateQAStatusRequest{QAStatus: models.QAStatusPassed})
	assertAppError(t, err, http.StatusForbidden, response.CodeUnauthorizedAction)

	updated, err := svc.UpdateQAStatus(release.ID, qa.ID, &UpdateQAStatusRequest{QAStatus: models.QAStatusPassed})
	if err != nil {
		t.Fatalf("qa UpdateQAStatus: %v", err)
	}
	if updated.QAStatus != models.QAStatusPassed {
		t.Errorf("qa_status = %s, want passed", updated.QAStatus)
	}

	// Managers may also set the verdict
	if _, err := svc.UpdateQAStatus(release.ID, manager.ID, &UpdateQAStatusRequest{QAStatus: models.QAStatusFailed}); err != nil {
		t.Errorf("manager UpdateQAStatus: %v", err)
	}
}

func TestReleaseGetNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReleaseService(db)
	user := createUser(t, db, "alice")

	_, err := svc.GetByID(999, user.ID)
	assertAppError(t, err, http.StatusNotFound, response.CodeReleaseNotFound)
}

func TestReleaseListMemberOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReleaseService(db)
	manager := createUser(t, db, "alice")
	outsider := createUser(t, db, "eve")
	ws := createWorkspace(t, db, "acme", manager.ID)

	if _, err := svc.Create(ws.ID, manager.ID, &CreateReleaseRequest{Name: "v1.0"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := svc.List(ws.ID, outsider.ID)
	assertAppError(t, err, http.StatusNotFound, response.CodeUserNotMember)

	releases, err := svc.List(ws.ID, manager.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(releases) != 1 {
		t.Errorf("len = %d, want 1", len(releases))
	}
}

func TestReleaseDeleteManagerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReleaseService(db)
	manager := createUser(t, db, "alice")
	qa := createUser(t, db, "quinn")
	ws := createWorkspace(t, db, "acme", manager.ID)
	addMember(t, db, ws.ID, qa.ID, models.RoleQA)

	release, err := svc.Create(ws.ID, manager.ID, &CreateReleaseRequest{Name: "v1.0"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = svc.Delete(release.ID, qa.ID)
	assertAppError(t, err, http.StatusForbidden, response.CodeUnauthorizedAction)

	if err := svc.Delete(release.ID, manager.ID); err != nil {
		t.Errorf("manager delete: %v", err)
	}
}

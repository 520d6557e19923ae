package services

import (
	"net/http"
	"testing"

	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/response"
)

func TestPrdMemberCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPrdService(db)
	manager := createUser(t, db, "alice")
	designer := createUser(t, db, "dana")
	outsider := createUser(t, db, "eve")
	ws := createWorkspace(t, db, "acme", manager.ID)
	addMember(t, db, ws.ID, designer.ID, models.RoleDesigner)

	prd, err := svc.Create(ws.ID, designer.ID, &CreatePrdRequest{Title: "onboarding flow", Content: "draft"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Any member may read and update; outsiders may not
	if _, err := svc.GetByID(prd.ID, manager.ID); err != nil {
		t.Errorf("member get: %v", err)
	}
	_, err = svc.GetByID(prd.ID, outsider.ID)
	assertAppError(t, err, http.StatusNotFound, response.CodeUserNotMember)

	content := "final"
	if _, err := svc.Update(prd.ID, manager.ID, &UpdatePrdRequest{Content: &content}); err != nil {
		t.Errorf("member update: %v", err)
	}

	if err := svc.Delete(prd.ID, designer.ID); err != nil {
		t.Errorf("member delete: %v", err)
	}

	_, err = svc.GetByID(prd.ID, manager.ID)
	assertAppError(t, err, http.StatusNotFound, response.CodePrdNotFound)
}

func TestDesignAssetMemberCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDesignAssetService(db)
	manager := createUser(t, db, "alice")
	outsider := createUser(t, db, "eve")
	ws := createWorkspace(t, db, "acme", manager.ID)

	asset, err := svc.Create(ws.ID, manager.ID, &CreateDesignAssetRequest{
		Name: "logo v2",
		URL:  "https://assets.example.com/logo-v2.svg",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Update(asset.ID, outsider.ID, &UpdateDesignAssetRequest{Name: "stolen"})
	assertAppError(t, err, http.StatusNotFound, response.CodeUserNotMember)

	assets, err := svc.List(ws.ID, manager.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(assets) != 1 {
		t.Errorf("len = %d, want 1", len(assets))
	}
}

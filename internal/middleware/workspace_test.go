package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/pkg/response"
)

func workspaceTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/workspaces/:workspaceID", WorkspaceScoped(), func(c *gin.Context) {
		response.Success(c, gin.H{"workspace_id": GetWorkspaceID(c)})
	})
	return r
}

func TestWorkspaceScopedValidID(t *testing.T) {
	r := workspaceTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/workspaces/12", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if want := `"workspace_id":12`; !strings.Contains(w.Body.String(), want) {
		t.Errorf("body %s missing %s", w.Body.String(), want)
	}
}

func TestWorkspaceScopedMalformedID(t *testing.T) {
	r := workspaceTestRouter()

	for _, id := range []string{"abc", "0", "-1", "1.5"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/workspaces/%s", id), nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("id %q: status = %d, want 400", id, w.Code)
		}
	}
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/utils"
	"github.com/teamflow/backend/pkg/response"
)

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		response.Success(c, gin.H{
			"user_id":  GetUserID(c),
			"username": GetUsername(c),
		})
	})
	return r
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	r := authTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthRequiredMalformedHeader(t *testing.T) {
	r := authTestRouter()

	for _, header := range []string{"Token abc", "Bearer", "abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	r := authTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Success {
		t.Error("success should be false")
	}
	if body.Error == nil || body.Error.Error != response.CodeInvalidCredentials {
		t.Errorf("unexpected error body: %+v", body.Error)
	}
}

func TestAuthRequiredValidToken(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	r := authTestRouter()

	token, err := utils.GenerateToken(42, "alice", 1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var body struct {
		Data struct {
			UserID   uint   `json:"user_id"`
			Username string `json:"username"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Data.UserID != 42 || body.Data.Username != "alice" {
		t.Errorf("identity = %d/%s, want 42/alice", body.Data.UserID, body.Data.Username)
	}
}

package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func record(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)
	return w
}

func TestSuccessEnvelope(t *testing.T) {
	w := record(func(c *gin.Context) {
		Success(c, gin.H{"hello": "world"})
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.Success || body.Status != http.StatusOK {
		t.Errorf("envelope = %+v", body)
	}
	if body.Error != nil {
		t.Error("success envelope must not carry an error body")
	}
}

func TestCreatedEnvelope(t *testing.T) {
	w := record(func(c *gin.Context) {
		Created(c, gin.H{"id": 1})
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
}

func TestErrorEnvelopeAppError(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, NewConflict(CodeDuplicateInvite, "a pending invite already exists for this user"))
	})

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Success {
		t.Error("success should be false")
	}
	if body.Error == nil {
		t.Fatal("error body missing")
	}
	if body.Error.Error != CodeDuplicateInvite {
		t.Errorf("code = %s, want %s", body.Error.Error, CodeDuplicateInvite)
	}
	if body.Error.StatusCode != http.StatusConflict {
		t.Errorf("statusCode = %d, want 409", body.Error.StatusCode)
	}
	if body.Message != body.Error.Message {
		t.Error("top-level message should mirror the error message")
	}
}

func TestErrorEnvelopeGenericError(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, errors.New("boom"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Error == nil || body.Error.Error != CodeInternal {
		t.Errorf("generic errors map to %s, got %+v", CodeInternal, body.Error)
	}
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{NewBadRequest(CodeInvalidArgument, "x"), http.StatusBadRequest},
		{NewUnauthorized("x"), http.StatusUnauthorized},
		{NewForbidden(CodeUnauthorizedAction, "x"), http.StatusForbidden},
		{NewNotFound(CodeWorkspaceNotFound, "x"), http.StatusNotFound},
		{NewConflict(CodeAlreadyMember, "x"), http.StatusConflict},
		{NewServerError("x"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if tc.err.HTTPStatus != tc.status {
			t.Errorf("%s: status = %d, want %d", tc.err.Code, tc.err.HTTPStatus, tc.status)
		}
		if tc.err.Error() != "x" {
			t.Errorf("Error() = %q, want x", tc.err.Error())
		}
	}
}

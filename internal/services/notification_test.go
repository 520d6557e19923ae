package services

import (
	"context"
	"strings"
	"testing"

	"github.com/teamflow/backend/internal/config"
)

func TestBuildInviteBody(t *testing.T) {
	svc := NewNotificationService(&config.EmailConfig{
		Enabled: true,
		BaseURL: "https://teamflow.example.com/",
	})

	body := svc.buildInviteBody(&InviteTask{
		InviteCode:    "abc-123",
		WorkspaceName: "acme",
		InviterName:   "Alice",
		InviteeName:   "Bob",
		Role:          "developer",
	})

	for _, want := range []string{
		"https://teamflow.example.com/invites?code=abc-123",
		"Hi Bob",
		"Alice",
		"<strong>acme</strong>",
		"<strong>developer</strong>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestBuildInviteBodyFallbacks(t *testing.T) {
	svc := NewNotificationService(&config.EmailConfig{BaseURL: "http://localhost:8080"})

	body := svc.buildInviteBody(&InviteTask{
		InviteCode:    "abc",
		WorkspaceName: "acme",
		Role:          "qa",
	})

	if !strings.Contains(body, "Hi there") {
		t.Error("missing greeting fallback")
	}
	if !strings.Contains(body, "A workspace manager") {
		t.Error("missing inviter fallback")
	}
}

func TestProcessInviteTaskDisabled(t *testing.T) {
	svc := NewNotificationService(&config.EmailConfig{Enabled: false})

	if err := svc.ProcessInviteTask(context.Background(), &InviteTask{InviteID: 1}); err != nil {
		t.Errorf("disabled email should be a no-op: %v", err)
	}
}

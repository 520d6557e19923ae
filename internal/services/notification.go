package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/teamflow/backend/internal/config"
	"github.com/teamflow/backend/pkg/logger"
)

// NotificationService turns invite tasks into outbound emails. It is the
// processor behind both queue modes.
type NotificationService struct {
	email *EmailService
	cfg   *config.EmailConfig
}

func NewNotificationService(cfg *config.EmailConfig) *NotificationService {
	return &NotificationService{
		email: NewEmailService(cfg),
		cfg:   cfg,
	}
}

// ProcessInviteTask delivers the invite notification. Delivery failures are
// returned so the async queue can retry; when email is disabled the task is a
// logged no-op.
func (s *NotificationService) ProcessInviteTask(ctx context.Context, task *InviteTask) error {
	if !s.cfg.Enabled {
		logger.Info().
			Uint("invite_id", task.InviteID).
			Str("workspace", task.WorkspaceName).
			Msg("email disabled, skipping invite notification")
		return nil
	}

	subject := fmt.Sprintf("[TeamFlow] You've been invited to %s", task.WorkspaceName)
	body := s.buildInviteBody(task)

	return s.email.Send([]string{task.InviteeEmail}, subject, body)
}

func (s *NotificationService) buildInviteBody(task *InviteTask) string {
	inviteURL := fmt.Sprintf("%s/invites?code=%s", strings.TrimSuffix(s.cfg.BaseURL, "/"), task.InviteCode)

	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString("<h2>Workspace invitation</h2>")

	greeting := task.InviteeName
	if greeting == "" {
		greeting = "there"
	}
	sb.WriteString(fmt.Sprintf("<p>Hi %s,</p>", greeting))

	inviter := task.InviterName
	if inviter == "" {
		inviter = "A workspace manager"
	}
	sb.WriteString(fmt.Sprintf(
		"<p>%s has invited you to join <strong>%s</strong> as a <strong>%s</strong>.</p>",
		inviter, task.WorkspaceName, task.Role,
	))

	sb.WriteString(fmt.Sprintf("<p><a href=\"%s\">Respond to this invitation</a></p>", inviteURL))
	sb.WriteString("<hr><p style=\"color: #888; font-size: 12px;\">Sent by TeamFlow</p>")
	sb.WriteString("</body></html>")

	return sb.String()
}

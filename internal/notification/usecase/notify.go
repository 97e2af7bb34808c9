package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/yatri/internal/notification/entity"
	"github.com/shandysiswandi/yatri/internal/notification/template"
	"github.com/shandysiswandi/yatri/internal/shared/event"
)

const msgNoEmailOnFile = "no email on file"

type (
	WelcomeInput struct {
		Recipient         entity.Recipient
		StaffName         string
		StaffID           string
		TemporaryPassword string
	}

	BroadcastInput struct {
		Subject    string
		Message    string
		SenderName string
		Recipients []entity.Recipient
	}
)

// NotifyWelcome sends the welcome email of a newly created staff member.
func (s *Usecase) NotifyWelcome(ctx context.Context, in WelcomeInput) entity.SendOutcome {
	ctx, span := s.startSpan(ctx, "NotifyWelcome")
	defer span.End()

	content, err := template.Welcome(template.WelcomeData{
		StaffName:         in.StaffName,
		StaffID:           in.StaffID,
		TemporaryPassword: in.TemporaryPassword,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to render welcome email", "staff_id", in.StaffID, "error", err)
		return entity.SendOutcome{Recipient: in.Recipient, Error: err.Error()}
	}

	return s.SendOne(ctx, in.Recipient, content)
}

// NotifyBroadcast renders an announcement and sends it to every recipient.
func (s *Usecase) NotifyBroadcast(ctx context.Context, in BroadcastInput) (*entity.BroadcastReport, error) {
	ctx, span := s.startSpan(ctx, "NotifyBroadcast")
	defer span.End()

	content, err := template.Broadcast(template.BroadcastData{
		Subject:    in.Subject,
		Message:    in.Message,
		SenderName: in.SenderName,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to render broadcast email", "error", err)
		return nil, err
	}

	return s.Broadcast(ctx, in.Recipients, content)
}

// ConsumeStaffCreated sends the welcome email for a staff record that was just created.
func (s *Usecase) ConsumeStaffCreated(ctx context.Context, ev event.StaffCreated) event.Delivery {
	address := strings.TrimSpace(ev.Email)
	if address == "" {
		slog.InfoContext(ctx, "welcome email skipped, no email on file", "staff_id", ev.StaffID)
		return event.Delivery{Error: msgNoEmailOnFile}
	}

	out := s.NotifyWelcome(ctx, WelcomeInput{
		Recipient:         entity.Recipient{Address: address, DisplayName: ev.Name},
		StaffName:         ev.Name,
		StaffID:           ev.StaffID,
		TemporaryPassword: ev.TemporaryPassword,
	})

	return event.Delivery{
		Sent:      out.Succeeded,
		MessageID: out.MessageID,
		Error:     out.Error,
	}
}

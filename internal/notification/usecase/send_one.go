package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/yatri/internal/notification/entity"
	"github.com/shandysiswandi/yatri/internal/pkg/mail"
)

// SendOne delivers content to a single recipient and reports the outcome.
//
// It never returns an error: every failure is described by the outcome.
func (s *Usecase) SendOne(ctx context.Context, to entity.Recipient, content entity.MessageContent) entity.SendOutcome {
	ctx, span := s.startSpan(ctx, "SendOne")
	defer span.End()

	out := entity.SendOutcome{Recipient: to}

	if !s.repoMail.Available() {
		out.Error = MsgEmailUnavailable
		return out
	}

	id, err := s.repoMail.Send(ctx, to, content)
	switch {
	case err == nil:
		out.Succeeded = true
		out.MessageID = id
		slog.InfoContext(ctx, "email sent", "kind", content.Kind.String(), "to", to.Address, "message_id", id)
		return out

	case errors.Is(err, mail.ErrTransportUnavailable):
		out.Error = MsgEmailUnavailable

	case errors.Is(err, context.DeadlineExceeded):
		out.Error = mail.ErrSendTimeout.Error()

	default:
		out.Error = err.Error()
	}

	slog.WarnContext(ctx, "failed to send email", "kind", content.Kind.String(), "to", to.Address, "error", err)

	return out
}

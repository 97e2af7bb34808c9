package usecase

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/yatri/internal/notification/entity"
	"github.com/shandysiswandi/yatri/internal/pkg/goroutine"
	"github.com/shandysiswandi/yatri/internal/pkg/mail"
)

const msgSendAborted = "send aborted"

// Broadcast sends content to every recipient and waits for all of them.
//
// At most s.workers sends are in flight at once. The batch is detached from
// the cancellation of ctx, so an abandoned caller does not stop it. When the
// transport is unavailable no send is attempted and mail.ErrTransportUnavailable
// is returned.
func (s *Usecase) Broadcast(ctx context.Context, recipients []entity.Recipient, content entity.MessageContent) (*entity.BroadcastReport, error) {
	ctx, span := s.startSpan(ctx, "Broadcast")
	defer span.End()

	report := &entity.BroadcastReport{
		TotalRecipients: len(recipients),
		Failed:          []entity.SendOutcome{},
	}
	if len(recipients) == 0 {
		return report, nil
	}

	if !s.repoMail.Available() {
		slog.WarnContext(ctx, "broadcast skipped, email service not available", "total_recipients", len(recipients))
		return nil, mail.ErrTransportUnavailable
	}

	outcomes := lo.Map(recipients, func(r entity.Recipient, _ int) entity.SendOutcome {
		return entity.SendOutcome{Recipient: r, Error: msgSendAborted}
	})

	goroutine.ForEach(context.WithoutCancel(ctx), len(recipients), s.workers, func(ctx context.Context, i int) {
		outcomes[i] = s.SendOne(ctx, recipients[i], content)
	})

	report.Succeeded = lo.CountBy(outcomes, func(o entity.SendOutcome) bool { return o.Succeeded })
	report.Failed = lo.Filter(outcomes, func(o entity.SendOutcome, _ int) bool { return !o.Succeeded })

	slog.InfoContext(ctx, "broadcast finished",
		"kind", content.Kind.String(),
		"total_recipients", report.TotalRecipients,
		"succeeded", report.Succeeded,
		"failed", len(report.Failed),
	)

	return report, nil
}

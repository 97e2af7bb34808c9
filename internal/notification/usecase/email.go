package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/yatri/internal/notification/entity"
	"github.com/shandysiswandi/yatri/internal/notification/template"
	"github.com/shandysiswandi/yatri/internal/pkg/goerror"
)

// SendTest mails the test template to the configured relay account.
func (s *Usecase) SendTest(ctx context.Context) (*entity.SendOutcome, error) {
	ctx, span := s.startSpan(ctx, "SendTest")
	defer span.End()

	account := s.account()
	if account == "" || !s.repoMail.Available() {
		return nil, goerror.NewBusiness(MsgEmailUnavailable, goerror.CodeUnavailable)
	}

	content, err := template.Test()
	if err != nil {
		slog.ErrorContext(ctx, "failed to render test email", "error", err)
		return nil, goerror.NewServer(err)
	}

	out := s.SendOne(ctx, entity.Recipient{Address: account}, content)

	return &out, nil
}

// Status reports whether outbound email can currently be attempted.
func (s *Usecase) Status(context.Context) entity.TransportStatus {
	return entity.TransportStatus{
		Available: s.repoMail.Available(),
		Account:   s.account(),
	}
}

func (s *Usecase) account() string {
	return strings.TrimSpace(s.cfg.GetString("mail.username"))
}

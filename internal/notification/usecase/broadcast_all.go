package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/yatri/internal/notification/entity"
	"github.com/shandysiswandi/yatri/internal/pkg/goerror"
	"github.com/shandysiswandi/yatri/internal/pkg/idempotency"
	"github.com/shandysiswandi/yatri/internal/pkg/mail"
)

type (
	BroadcastAllInput struct {
		Subject        string `validate:"required,notblank,max=200"`
		Message        string `validate:"required,notblank"`
		SenderName     string `validate:"max=100"`
		IdempotencyKey string `validate:"max=128"`
	}
)

// BroadcastAll sends an announcement to every staff member with an email on file.
//
// When IdempotencyKey is set, a repeated key is rejected until its state expires.
func (s *Usecase) BroadcastAll(ctx context.Context, in BroadcastAllInput) (*entity.BroadcastReport, error) {
	ctx, span := s.startSpan(ctx, "BroadcastAll")
	defer span.End()

	in.Subject = strings.TrimSpace(in.Subject)
	in.SenderName = strings.TrimSpace(in.SenderName)
	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	key := "notification:broadcast:" + in.IdempotencyKey
	lock := s.cfg.GetSecond("modules.notification.idempotency.lock_seconds")

	var report *entity.BroadcastReport
	run := func(ctx context.Context) error {
		recipients, err := s.repoDB.ListRecipients(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo list recipients", "error", err)
			return goerror.NewServer(err)
		}

		if in.IdempotencyKey != "" {
			d := s.broadcastLock(lock, len(recipients))
			if err := s.idemp.Extend(context.WithoutCancel(ctx), key, d); err != nil {
				slog.WarnContext(ctx, "failed to extend broadcast lock", "idempotency_key", in.IdempotencyKey, "lock", d, "error", err)
			}
		}

		report, err = s.NotifyBroadcast(ctx, BroadcastInput{
			Subject:    in.Subject,
			Message:    in.Message,
			SenderName: in.SenderName,
			Recipients: recipients,
		})
		if errors.Is(err, mail.ErrTransportUnavailable) {
			return goerror.NewBusiness(MsgEmailUnavailable, goerror.CodeUnavailable)
		}
		if err != nil {
			return goerror.NewServer(err)
		}

		return nil
	}

	if in.IdempotencyKey == "" {
		if err := run(ctx); err != nil {
			return nil, err
		}
		return report, nil
	}

	err := s.idemp.Exec(ctx, key, run,
		idempotency.WithLockDuration(lock),
		idempotency.WithStateTTL(s.cfg.GetSecond("modules.notification.idempotency.ttl_seconds")),
	)
	switch {
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		return nil, goerror.NewBusiness("Broadcast with this key is already in progress", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		return nil, goerror.NewBusiness("Broadcast with this key was already sent", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrAlreadyFailed):
		return nil, goerror.NewBusiness("Broadcast with this key previously failed, use a new key", goerror.CodeConflict)
	case err != nil:
		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			return nil, err
		}
		slog.ErrorContext(ctx, "failed to track broadcast idempotency", "idempotency_key", in.IdempotencyKey, "error", err)
		return nil, goerror.NewServer(err)
	}

	return report, nil
}

// broadcastLock covers the time the relay rate needs for n recipients on top
// of the configured base lock.
func (s *Usecase) broadcastLock(base time.Duration, n int) time.Duration {
	perMinute := s.cfg.GetInt("mail.rate_limit_per_minute")
	if perMinute < 1 {
		perMinute = mail.DefaultRateLimit
	}

	minutes := (n + perMinute - 1) / perMinute
	return base + time.Duration(minutes)*time.Minute
}

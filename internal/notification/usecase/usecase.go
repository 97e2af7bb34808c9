package usecase

import (
	"context"

	"github.com/shandysiswandi/yatri/internal/notification/entity"
	"github.com/shandysiswandi/yatri/internal/pkg/config"
	"github.com/shandysiswandi/yatri/internal/pkg/idempotency"
	"github.com/shandysiswandi/yatri/internal/pkg/instrument"
	"github.com/shandysiswandi/yatri/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBroadcastWorkers bounds concurrent sends of a broadcast when the
// configuration does not set modules.notification.broadcast_workers.
const DefaultBroadcastWorkers = 10

// MsgEmailUnavailable is reported to callers whenever the transport cannot deliver.
const MsgEmailUnavailable = "Email service not available"

type repoDB interface {
	ListRecipients(ctx context.Context) ([]entity.Recipient, error)
}

type repoMail interface {
	Send(ctx context.Context, to entity.Recipient, content entity.MessageContent) (string, error)
	Available() bool
}

type Usecase struct {
	repoDB    repoDB
	repoMail  repoMail
	idemp     idempotency.Idempotency
	validator validator.Validator
	cfg       config.Config
	ins       instrument.Instrumentation
	workers   int
}

type Dependency struct {
	RepoDB      repoDB
	RepoMail    repoMail
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Config      config.Config
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	workers := dep.Config.GetInt("modules.notification.broadcast_workers")
	if workers < 1 {
		workers = DefaultBroadcastWorkers
	}

	return &Usecase{
		repoDB:    dep.RepoDB,
		repoMail:  dep.RepoMail,
		idemp:     dep.Idempotency,
		validator: dep.Validator,
		cfg:       dep.Config,
		ins:       dep.Instrument,
		workers:   workers,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

package notification

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/yatri/internal/notification/inbound"
	"github.com/shandysiswandi/yatri/internal/notification/outbound/db"
	"github.com/shandysiswandi/yatri/internal/notification/outbound/email"
	"github.com/shandysiswandi/yatri/internal/notification/usecase"
	"github.com/shandysiswandi/yatri/internal/pkg/config"
	"github.com/shandysiswandi/yatri/internal/pkg/idempotency"
	"github.com/shandysiswandi/yatri/internal/pkg/instrument"
	"github.com/shandysiswandi/yatri/internal/pkg/mail"
	"github.com/shandysiswandi/yatri/internal/pkg/router"
	"github.com/shandysiswandi/yatri/internal/pkg/validator"
	"github.com/shandysiswandi/yatri/internal/shared/event"
)

// Notifier is what other modules use to have their events mailed.
type Notifier interface {
	ConsumeStaffCreated(ctx context.Context, ev event.StaffCreated) event.Delivery
}

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) (Notifier, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:      db.NewDB(dep.DBConn, dep.Instrument),
		RepoMail:    email.New(dep.Mail, dep.Instrument),
		Idempotency: dep.Idempotency,
		Validator:   dep.Validator,
		Config:      dep.Config,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return uc, nil
}

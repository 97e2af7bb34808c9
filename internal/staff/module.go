package staff

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/yatri/internal/pkg/config"
	"github.com/shandysiswandi/yatri/internal/pkg/hash"
	"github.com/shandysiswandi/yatri/internal/pkg/instrument"
	"github.com/shandysiswandi/yatri/internal/pkg/router"
	"github.com/shandysiswandi/yatri/internal/pkg/validator"
	"github.com/shandysiswandi/yatri/internal/shared/event"
	"github.com/shandysiswandi/yatri/internal/staff/inbound"
	"github.com/shandysiswandi/yatri/internal/staff/outbound/db"
	"github.com/shandysiswandi/yatri/internal/staff/usecase"
)

// Notifier receives staff lifecycle events.
type Notifier interface {
	ConsumeStaffCreated(ctx context.Context, ev event.StaffCreated) event.Delivery
}

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Notifier   Notifier                   `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc, err := usecase.New(usecase.Dependency{
		RepoDB:     db.NewDB(dep.DBConn, dep.Instrument),
		Notifier:   dep.Notifier,
		Bcrypt:     dep.Bcrypt,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Instrument: dep.Instrument,
	})
	if err != nil {
		return err
	}

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

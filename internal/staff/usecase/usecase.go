package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/yatri/internal/pkg/config"
	"github.com/shandysiswandi/yatri/internal/pkg/hash"
	"github.com/shandysiswandi/yatri/internal/pkg/instrument"
	"github.com/shandysiswandi/yatri/internal/pkg/validator"
	"github.com/shandysiswandi/yatri/internal/pkg/valueobject"
	"github.com/shandysiswandi/yatri/internal/shared/event"
	"github.com/shandysiswandi/yatri/internal/staff/entity"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetStaffCredential(ctx context.Context, staffID string) (*entity.StaffCredential, error)
	ListStaff(ctx context.Context) ([]entity.Staff, error)

	CreateStaff(ctx context.Context, in entity.NewStaff, hash string) (int64, error)
	UpdateStaff(ctx context.Context, in entity.UpdateStaff, hash string) (int64, error)
	UpdateProgress(ctx context.Context, staffID string, progress valueobject.JSONMap) (int64, error)
	UpdateQuizScore(ctx context.Context, staffID, score string) (int64, error)

	DeleteStaff(ctx context.Context, staffID string) (int64, error)
}

type notifier interface {
	ConsumeStaffCreated(ctx context.Context, ev event.StaffCreated) event.Delivery
}

type Usecase struct {
	repoDB    repoDB
	notifier  notifier
	bcrypt    hash.Hash
	validator validator.Validator
	cfg       config.Config
	ins       instrument.Instrumentation
	admins    map[string]string
}

type Dependency struct {
	RepoDB     repoDB
	Notifier   notifier
	Bcrypt     hash.Hash
	Validator  validator.Validator
	Config     config.Config
	Instrument instrument.Instrumentation
}

func New(dep Dependency) (*Usecase, error) {
	admins, err := loadAdmins(dep.Config.GetMap("modules.staff.admins"), dep.Bcrypt)
	if err != nil {
		return nil, err
	}
	if len(admins) == 0 {
		slog.Warn("no admin account configured, admin login is disabled")
	}

	return &Usecase{
		repoDB:    dep.RepoDB,
		notifier:  dep.Notifier,
		bcrypt:    dep.Bcrypt,
		validator: dep.Validator,
		cfg:       dep.Config,
		ins:       dep.Instrument,
		admins:    admins,
	}, nil
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("staff.usecase").Start(ctx, name)
}

// loadAdmins maps admin ids to password hashes. Values that already are a
// hash are kept, anything else is treated as a plaintext password.
func loadAdmins(pairs map[string]string, h hash.Hash) (map[string]string, error) {
	admins := make(map[string]string, len(pairs))
	for id, secret := range pairs {
		id = strings.TrimSpace(id)
		if id == "" || secret == "" {
			continue
		}

		if h.IsHashed(secret) {
			admins[id] = secret
			continue
		}

		hashed, err := h.Hash(secret)
		if err != nil {
			return nil, err
		}
		admins[id] = string(hashed)
	}

	return admins, nil
}

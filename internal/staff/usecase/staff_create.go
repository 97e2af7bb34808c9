package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/yatri/internal/pkg/goerror"
	"github.com/shandysiswandi/yatri/internal/shared/event"
	"github.com/shandysiswandi/yatri/internal/staff/entity"
)

type (
	StaffCreateInput struct {
		Name     string `validate:"required,notblank,max=100"`
		StaffID  string `validate:"required,notblank,max=50"`
		Email    string `validate:"max=254"`
		Password string `validate:"required,max=72"`
		AdminID  string
	}

	StaffCreateOutput struct {
		ID           int64
		Notification event.Delivery
	}
)

// StaffCreate stores a new staff record and mails the welcome email.
//
// A failed notification never fails the creation; it is reported in the output.
func (s *Usecase) StaffCreate(ctx context.Context, in StaffCreateInput) (*StaffCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "StaffCreate")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.StaffID = strings.TrimSpace(in.StaffID)
	in.Email = strings.TrimSpace(in.Email)
	in.AdminID = strings.TrimSpace(in.AdminID)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	hashed, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	createdBy := in.AdminID
	if createdBy == "" {
		createdBy = entity.DefaultCreatedBy
	}

	id, err := s.repoDB.CreateStaff(ctx, entity.NewStaff{
		Name:      in.Name,
		StaffID:   in.StaffID,
		Email:     in.Email,
		CreatedBy: createdBy,
	}, string(hashed))
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "staff id already exists", "staff_id", in.StaffID)
		return nil, goerror.NewBusiness("Staff ID already exists.", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create staff", "staff_id", in.StaffID, "error", err)
		return nil, goerror.NewServer(err)
	}

	delivery := s.notifier.ConsumeStaffCreated(ctx, event.StaffCreated{
		Name:              in.Name,
		StaffID:           in.StaffID,
		Email:             in.Email,
		TemporaryPassword: in.Password,
	})
	if !delivery.Sent && in.Email != "" {
		slog.WarnContext(ctx, "staff created, notification not sent", "staff_id", in.StaffID, "reason", delivery.Error)
	}

	return &StaffCreateOutput{ID: id, Notification: delivery}, nil
}

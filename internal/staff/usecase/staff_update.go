package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/yatri/internal/pkg/goerror"
	"github.com/shandysiswandi/yatri/internal/staff/entity"
)

type (
	StaffUpdateInput struct {
		CurrentStaffID string `validate:"required"`
		Name           string `validate:"required,notblank,max=100"`
		StaffID        string `validate:"required,notblank,max=50"`
		Email          string `validate:"max=254"`
		Password       string `validate:"max=72"` // empty keeps the current password
	}

	ChangesOutput struct {
		Changes int64
	}
)

func (s *Usecase) StaffUpdate(ctx context.Context, in StaffUpdateInput) (*ChangesOutput, error) {
	ctx, span := s.startSpan(ctx, "StaffUpdate")
	defer span.End()

	in.CurrentStaffID = strings.TrimSpace(in.CurrentStaffID)
	in.Name = strings.TrimSpace(in.Name)
	in.StaffID = strings.TrimSpace(in.StaffID)
	in.Email = strings.TrimSpace(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	var hashed string
	if in.Password != "" {
		h, err := s.bcrypt.Hash(in.Password)
		if err != nil {
			slog.ErrorContext(ctx, "failed to hash password", "error", err)
			return nil, goerror.NewServer(err)
		}
		hashed = string(h)
	}

	changes, err := s.repoDB.UpdateStaff(ctx, entity.UpdateStaff{
		CurrentStaffID: in.CurrentStaffID,
		Name:           in.Name,
		StaffID:        in.StaffID,
		Email:          in.Email,
	}, hashed)
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "staff id already in use", "current_staff_id", in.CurrentStaffID, "staff_id", in.StaffID)
		return nil, goerror.NewBusiness("Staff ID might already be in use.", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update staff", "current_staff_id", in.CurrentStaffID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ChangesOutput{Changes: changes}, nil
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/yatri/internal/pkg/goerror"
	"github.com/shandysiswandi/yatri/internal/staff/entity"
)

const (
	msgInvalidAdmin = "Invalid Admin credentials."
	msgInvalidStaff = "Invalid Staff ID or password."
)

type (
	AdminLoginInput struct {
		AdminID  string
		Password string
	}

	StaffLoginInput struct {
		StaffID  string
		Password string
	}
)

// AdminLogin checks the credentials of a configured admin account.
func (s *Usecase) AdminLogin(ctx context.Context, in AdminLoginInput) error {
	ctx, span := s.startSpan(ctx, "AdminLogin")
	defer span.End()

	adminID := strings.TrimSpace(in.AdminID)
	hashed, ok := s.admins[adminID]
	if !ok || !s.bcrypt.Verify(hashed, in.Password) {
		slog.WarnContext(ctx, "admin login rejected", "admin_id", adminID)
		return goerror.NewBusiness(msgInvalidAdmin, goerror.CodeUnauthorized)
	}

	return nil
}

// StaffLogin checks staff credentials and returns the record without its password.
func (s *Usecase) StaffLogin(ctx context.Context, in StaffLoginInput) (*entity.Staff, error) {
	ctx, span := s.startSpan(ctx, "StaffLogin")
	defer span.End()

	staffID := strings.TrimSpace(in.StaffID)
	if staffID == "" || in.Password == "" {
		return nil, goerror.NewBusiness(msgInvalidStaff, goerror.CodeUnauthorized)
	}

	cred, err := s.repoDB.GetStaffCredential(ctx, staffID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "staff account not found", "staff_id", staffID)
		return nil, goerror.NewBusiness(msgInvalidStaff, goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get staff credential", "staff_id", staffID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(cred.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "password staff account not match", "staff_id", staffID)
		return nil, goerror.NewBusiness(msgInvalidStaff, goerror.CodeUnauthorized)
	}

	staff := cred.Staff
	return &staff, nil
}

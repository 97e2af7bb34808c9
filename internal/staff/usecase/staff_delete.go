package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/yatri/internal/pkg/goerror"
)

type StaffDeleteInput struct {
	StaffID string
}

func (s *Usecase) StaffDelete(ctx context.Context, in StaffDeleteInput) (*ChangesOutput, error) {
	ctx, span := s.startSpan(ctx, "StaffDelete")
	defer span.End()

	staffID := strings.TrimSpace(in.StaffID)

	changes, err := s.repoDB.DeleteStaff(ctx, staffID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete staff", "staff_id", staffID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ChangesOutput{Changes: changes}, nil
}

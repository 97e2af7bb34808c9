package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/yatri/internal/pkg/goerror"
	"github.com/shandysiswandi/yatri/internal/staff/entity"
)

func (s *Usecase) StaffList(ctx context.Context) ([]entity.Staff, error) {
	ctx, span := s.startSpan(ctx, "StaffList")
	defer span.End()

	staff, err := s.repoDB.ListStaff(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list staff", "error", err)
		return nil, goerror.NewServer(err)
	}

	return staff, nil
}

package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/yatri/internal/pkg/goerror"
	"github.com/shandysiswandi/yatri/internal/pkg/valueobject"
)

type ProgressUpdateInput struct {
	StaffID   string
	Progress  valueobject.JSONMap // takes precedence over QuizScore when set
	QuizScore string
}

// ProgressUpdate stores training progress, or the quiz score when no progress is given.
func (s *Usecase) ProgressUpdate(ctx context.Context, in ProgressUpdateInput) (*ChangesOutput, error) {
	ctx, span := s.startSpan(ctx, "ProgressUpdate")
	defer span.End()

	staffID := strings.TrimSpace(in.StaffID)

	var (
		changes int64
		err     error
	)
	switch {
	case in.Progress != nil:
		changes, err = s.repoDB.UpdateProgress(ctx, staffID, in.Progress)
	case in.QuizScore != "":
		changes, err = s.repoDB.UpdateQuizScore(ctx, staffID, in.QuizScore)
	default:
		return nil, goerror.NewInvalidFormat("No progress or quiz score provided.")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update progress", "staff_id", staffID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ChangesOutput{Changes: changes}, nil
}

package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shandysiswandi/yatri/internal/pkg/valueobject"
	"github.com/shandysiswandi/yatri/internal/staff/entity"
)

const (
	queryCreateStaff = `INSERT INTO staff (name, staff_id, email, password, progress, created_by)
VALUES ($1, $2, $3, $4, '{}'::jsonb, $5)
RETURNING id`

	queryUpdateStaff = `UPDATE staff SET name = $1, staff_id = $2, email = $3, updated_at = now()
WHERE staff_id = $4`

	queryUpdateStaffWithPassword = `UPDATE staff SET name = $1, staff_id = $2, email = $3, password = $5, updated_at = now()
WHERE staff_id = $4`

	queryUpdateProgress = `UPDATE staff SET progress = $1, updated_at = now() WHERE staff_id = $2`

	queryUpdateQuizScore = `UPDATE staff SET quiz_score = $1, updated_at = now() WHERE staff_id = $2`

	queryDeleteStaff = `DELETE FROM staff WHERE staff_id = $1`
)

func nullableText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func (s *DB) CreateStaff(ctx context.Context, in entity.NewStaff, hash string) (id int64, err error) {
	ctx, span := s.startSpan(ctx, "CreateStaff")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.QueryRow(ctx, queryCreateStaff, in.Name, in.StaffID, nullableText(in.Email), hash, in.CreatedBy).Scan(&id)
	err = s.mapError(err)
	return id, err
}

// UpdateStaff changes the record identified by in.CurrentStaffID. An empty
// hash keeps the stored password.
func (s *DB) UpdateStaff(ctx context.Context, in entity.UpdateStaff, hash string) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "UpdateStaff")
	defer func() { s.endSpan(span, err) }()

	query, args := queryUpdateStaff, []any{in.Name, in.StaffID, nullableText(in.Email), in.CurrentStaffID}
	if hash != "" {
		query, args = queryUpdateStaffWithPassword, append(args, hash)
	}

	return s.exec(ctx, query, args...)
}

func (s *DB) UpdateProgress(ctx context.Context, staffID string, progress valueobject.JSONMap) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "UpdateProgress")
	defer func() { s.endSpan(span, err) }()

	return s.exec(ctx, queryUpdateProgress, map[string]any(progress), staffID)
}

func (s *DB) UpdateQuizScore(ctx context.Context, staffID, score string) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "UpdateQuizScore")
	defer func() { s.endSpan(span, err) }()

	return s.exec(ctx, queryUpdateQuizScore, score, staffID)
}

func (s *DB) DeleteStaff(ctx context.Context, staffID string) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteStaff")
	defer func() { s.endSpan(span, err) }()

	return s.exec(ctx, queryDeleteStaff, staffID)
}

func (s *DB) exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := s.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, s.mapError(err)
	}
	return tag.RowsAffected(), nil
}

package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shandysiswandi/yatri/internal/staff/entity"
)

const (
	staffColumns = `id, name, staff_id, email, progress, quiz_score, created_by, created_at, updated_at`

	queryGetStaffCredential = `SELECT ` + staffColumns + `, password FROM staff WHERE staff_id = $1`

	queryListStaff = `SELECT ` + staffColumns + ` FROM staff ORDER BY id`
)

type staffRow struct {
	entity.Staff
	email pgtype.Text
}

func (r *staffRow) dest() []any {
	return []any{
		&r.ID,
		&r.Name,
		&r.StaffID,
		&r.email,
		&r.Progress,
		&r.QuizScore,
		&r.CreatedBy,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}

func (r *staffRow) toEntity() entity.Staff {
	st := r.Staff
	st.Email = r.email.String
	if st.Progress == nil {
		st.Progress = map[string]any{}
	}
	return st
}

func (s *DB) GetStaffCredential(ctx context.Context, staffID string) (_ *entity.StaffCredential, err error) {
	ctx, span := s.startSpan(ctx, "GetStaffCredential")
	defer func() { s.endSpan(span, err) }()

	var (
		row  staffRow
		hash string
	)
	if err = s.conn.QueryRow(ctx, queryGetStaffCredential, staffID).Scan(append(row.dest(), &hash)...); err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &entity.StaffCredential{Staff: row.toEntity(), PasswordHash: hash}, nil
}

func (s *DB) ListStaff(ctx context.Context) (_ []entity.Staff, err error) {
	ctx, span := s.startSpan(ctx, "ListStaff")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, queryListStaff)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	out, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (entity.Staff, error) {
		var row staffRow
		if err := r.Scan(row.dest()...); err != nil {
			return entity.Staff{}, err
		}
		return row.toEntity(), nil
	})
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return out, nil
}

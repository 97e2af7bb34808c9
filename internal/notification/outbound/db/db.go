package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/yatri/internal/notification/entity"
	"github.com/shandysiswandi/yatri/internal/pkg/goerror"
	"github.com/shandysiswandi/yatri/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const queryListRecipients = `SELECT name, email FROM staff
WHERE email IS NOT NULL AND btrim(email) <> ''
ORDER BY id`

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

func (s *DB) mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}
	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ListRecipients returns every staff member with an email on file, oldest first.
func (s *DB) ListRecipients(ctx context.Context) (out []entity.Recipient, err error) {
	ctx, span := s.startSpan(ctx, "ListRecipients")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, queryListRecipients)
	if err != nil {
		return nil, s.mapError(err)
	}

	out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Recipient, error) {
		var r entity.Recipient
		err := row.Scan(&r.DisplayName, &r.Address)
		return r, err
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return out, nil
}

// Package database holds the relational schema of the portal.
package database

import (
	"context"
	_ "embed"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// Schema returns the DDL that creates every table used by the service.
func Schema() string {
	return schema
}

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, conn *pgxpool.Pool) error {
	_, err := conn.Exec(ctx, schema)
	return err
}

//go:build integration

package db

import (
	"context"
	"testing"

	"github.com/shandysiswandi/yatri/database/databasetest"
	"github.com/shandysiswandi/yatri/internal/notification/entity"
	"github.com/shandysiswandi/yatri/internal/pkg/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_ListRecipients(t *testing.T) {
	pool := databasetest.NewPool(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `INSERT INTO staff (name, staff_id, email, password) VALUES
		('Asha', 'S1', 'asha@x.com', 'h'),
		('Ben', 'S2', NULL, 'h'),
		('Cara', 'S3', '  ', 'h'),
		('Dev', 'S4', 'dev@x.com', 'h')`)
	require.NoError(t, err)

	got, err := NewDB(pool, instrument.NewNoop()).ListRecipients(ctx)

	require.NoError(t, err)
	assert.Equal(t, []entity.Recipient{
		{Address: "asha@x.com", DisplayName: "Asha"},
		{Address: "dev@x.com", DisplayName: "Dev"},
	}, got)
}

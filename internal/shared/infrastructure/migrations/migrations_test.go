package migrations_test

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	for _, driver := range []database.Driver{database.DriverSQLite, database.DriverPostgres} {
		files, err := migrations.Files(driver)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_initial_schema.up.sql"}, files, driver.String())
	}
}

func TestRun_SQLiteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: ":memory:"})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, migrations.Run(ctx, conn))
	require.NoError(t, migrations.Run(ctx, conn))

	for _, table := range []string{"tasks", "priority_scores", "meetings"} {
		var name string
		err := conn.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

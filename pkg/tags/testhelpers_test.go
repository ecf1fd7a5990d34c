package tags

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/vidshelf/vidshelf/pkg/migrations"
	"github.com/vidshelf/vidshelf/pkg/models"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// seedFolder creates a main folder and one folder under it, returning the
// folder.
func seedFolder(t *testing.T, db *bun.DB, name string) *models.Folder {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	mainFolder := &models.MainFolder{
		Name:      "library",
		Path:      "/media/" + name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.NewInsert().Model(mainFolder).Returning("*").Exec(ctx)
	require.NoError(t, err)

	folder := &models.Folder{
		Name:         name,
		MainFolderID: mainFolder.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err = db.NewInsert().Model(folder).Returning("*").Exec(ctx)
	require.NoError(t, err)

	return folder
}

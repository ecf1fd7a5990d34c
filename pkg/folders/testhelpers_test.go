package folders

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

func seedMainFolder(t *testing.T, db *bun.DB, path string) *models.MainFolder {
	t.Helper()
	now := time.Now()

	mainFolder := &models.MainFolder{
		Name:      "library",
		Path:      path,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.NewInsert().Model(mainFolder).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return mainFolder
}

func seedFolder(t *testing.T, db *bun.DB, mainFolderID int, name string) *models.Folder {
	t.Helper()
	now := time.Now()

	folder := &models.Folder{
		Name:         name,
		MainFolderID: mainFolderID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := db.NewInsert().Model(folder).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return folder
}

func seedSubfolder(t *testing.T, db *bun.DB, folderID int, name string) *models.Subfolder {
	t.Helper()
	now := time.Now()

	subfolder := &models.Subfolder{
		Name:      name,
		FolderID:  folderID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.NewInsert().Model(subfolder).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return subfolder
}

func seedVideo(t *testing.T, db *bun.DB, subfolderID int, name, path string) *models.Video {
	t.Helper()
	now := time.Now()

	duration := "00:00"
	video := &models.Video{
		Name:        name,
		Path:        path,
		Duration:    &duration,
		SubfolderID: subfolderID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := db.NewInsert().Model(video).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return video
}

func seedTag(t *testing.T, db *bun.DB, name string) *models.Tag {
	t.Helper()
	now := time.Now()

	tag := &models.Tag{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.NewInsert().Model(tag).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return tag
}

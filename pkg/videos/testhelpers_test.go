package videos

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

type fixture struct {
	Folder    *models.Folder
	Subfolder *models.Subfolder
	Video     *models.Video
}

// seedFixture creates a main-folder/folder/subfolder chain with one video
// named name at the bottom.
func seedFixture(t *testing.T, db *bun.DB, name string) *fixture {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	mainFolder := &models.MainFolder{
		Name:      "library",
		Path:      "/media/library-" + name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.NewInsert().Model(mainFolder).Returning("*").Exec(ctx)
	require.NoError(t, err)

	folder := &models.Folder{
		Name:         "course",
		MainFolderID: mainFolder.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err = db.NewInsert().Model(folder).Returning("*").Exec(ctx)
	require.NoError(t, err)

	subfolder := &models.Subfolder{
		Name:      "chapter",
		FolderID:  folder.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = db.NewInsert().Model(subfolder).Returning("*").Exec(ctx)
	require.NoError(t, err)

	video := seedVideo(t, db, subfolder.ID, name, "/media/library-"+name+"/course/chapter/"+name)

	return &fixture{Folder: folder, Subfolder: subfolder, Video: video}
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

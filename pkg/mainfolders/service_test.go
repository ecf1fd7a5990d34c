package mainfolders

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/vidshelf/vidshelf/pkg/errcodes"
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

func seedMainFolder(t *testing.T, db *bun.DB, name, path string) *models.MainFolder {
	t.Helper()
	now := time.Now()

	mainFolder := &models.MainFolder{
		Name:      name,
		Path:      path,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.NewInsert().Model(mainFolder).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return mainFolder
}

func TestListMainFolders(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)

	seedMainFolder(t, db, "tutorials", "/media/tutorials")
	seedMainFolder(t, db, "courses", "/media/courses")

	mainFolders, err := svc.ListMainFolders(context.Background())
	require.NoError(t, err)
	require.Len(t, mainFolders, 2)
	assert.Equal(t, "courses", mainFolders[0].Name)
	assert.Equal(t, "tutorials", mainFolders[1].Name)
}

func TestRetrieveMainFolderByPath(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)

	seeded := seedMainFolder(t, db, "courses", "/media/courses")

	got, err := svc.RetrieveMainFolder(context.Background(), RetrieveMainFolderOptions{
		Path: pointerutil.String("/media/courses"),
	})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, got.ID)

	_, err = svc.RetrieveMainFolder(context.Background(), RetrieveMainFolderOptions{
		Path: pointerutil.String("/media/nope"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcodes.NotFound("Main folder")))
}

func TestDeleteMainFolderCascades(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	mainFolder := seedMainFolder(t, db, "courses", "/media/courses")
	now := time.Now()

	folder := &models.Folder{Name: "go", MainFolderID: mainFolder.ID, CreatedAt: now, UpdatedAt: now}
	_, err := db.NewInsert().Model(folder).Returning("*").Exec(ctx)
	require.NoError(t, err)

	subfolder := &models.Subfolder{Name: "basics", FolderID: folder.ID, CreatedAt: now, UpdatedAt: now}
	_, err = db.NewInsert().Model(subfolder).Returning("*").Exec(ctx)
	require.NoError(t, err)

	duration := "00:00"
	video := &models.Video{
		Name: "a.mp4", Path: "/media/courses/go/basics/a.mp4", Duration: &duration,
		SubfolderID: subfolder.ID, CreatedAt: now, UpdatedAt: now,
	}
	_, err = db.NewInsert().Model(video).Returning("*").Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMainFolder(ctx, mainFolder.ID))

	for _, model := range []interface{}{
		(*models.Folder)(nil),
		(*models.Subfolder)(nil),
		(*models.Video)(nil),
	} {
		count, err := db.NewSelect().Model(model).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	}

	err = svc.DeleteMainFolder(ctx, mainFolder.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcodes.NotFound("Main folder")))
}

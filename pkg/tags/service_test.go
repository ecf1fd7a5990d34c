package tags

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidshelf/vidshelf/pkg/errcodes"
	"github.com/vidshelf/vidshelf/pkg/models"
)

func TestCreateTag(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tag := &models.Tag{Name: "golang"}
	require.NoError(t, svc.CreateTag(ctx, tag))
	assert.NotZero(t, tag.ID)
	assert.False(t, tag.CreatedAt.IsZero())

	err := svc.CreateTag(ctx, &models.Tag{Name: "golang"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcodes.BadRequest("Tag already exists.")))
}

func TestCreateTagCaseSensitive(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, svc.CreateTag(ctx, &models.Tag{Name: "Go"}))
	// A different casing is a different tag.
	require.NoError(t, svc.CreateTag(ctx, &models.Tag{Name: "go"}))

	tags, err := svc.ListTags(ctx, ListTagsOptions{})
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestCreateTagEmptyName(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)

	err := svc.CreateTag(context.Background(), &models.Tag{Name: "   "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcodes.ValidationError("Tag name cannot be empty.")))
}

func TestFindOrCreateTag(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	first, err := svc.FindOrCreateTag(ctx, "docker")
	require.NoError(t, err)

	second, err := svc.FindOrCreateTag(ctx, "docker")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestListTagsSearch(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	for _, name := range []string{"Golang", "python", "go-basics"} {
		require.NoError(t, svc.CreateTag(ctx, &models.Tag{Name: name}))
	}

	search := "go"
	tags, total, err := svc.ListTagsWithTotal(ctx, ListTagsOptions{Search: &search})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, tags, 2)
	// Search is case-insensitive and results come back name-ascending.
	assert.Equal(t, "Golang", tags[0].Name)
	assert.Equal(t, "go-basics", tags[1].Name)
}

func TestListTagsFolderCount(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tag := &models.Tag{Name: "course"}
	require.NoError(t, svc.CreateTag(ctx, tag))

	folder := seedFolder(t, db, "kubernetes")
	_, err := db.NewInsert().
		Model(&models.FolderTag{FolderID: folder.ID, TagID: tag.ID}).
		Exec(ctx)
	require.NoError(t, err)

	tags, err := svc.ListTags(ctx, ListTagsOptions{})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, 1, tags[0].FolderCount)
}

func TestDeleteUnmappedTags(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	mapped := &models.Tag{Name: "keep"}
	require.NoError(t, svc.CreateTag(ctx, mapped))
	require.NoError(t, svc.CreateTag(ctx, &models.Tag{Name: "drop-1"}))
	require.NoError(t, svc.CreateTag(ctx, &models.Tag{Name: "drop-2"}))

	folder := seedFolder(t, db, "terraform")
	_, err := db.NewInsert().
		Model(&models.FolderTag{FolderID: folder.ID, TagID: mapped.ID}).
		Exec(ctx)
	require.NoError(t, err)

	deleted, err := svc.DeleteUnmappedTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	tags, err := svc.ListTags(ctx, ListTagsOptions{})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "keep", tags[0].Name)
}

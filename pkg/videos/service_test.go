package videos

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidshelf/vidshelf/pkg/errcodes"
	"github.com/vidshelf/vidshelf/pkg/models"
)

func TestRetrieveVideoNotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.RetrieveVideo(context.Background(), RetrieveVideoOptions{ID: pointerutil.Int(9999)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcodes.NotFound("Video")))
}

func TestRetrieveVideoWithNotes(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	f := seedFixture(t, db, "lesson.mp4")
	require.NoError(t, svc.UpdateProgress(ctx, f.Video, UpdateProgressOptions{
		Note: pointerutil.String("remember this part"),
	}))

	video, err := svc.RetrieveVideo(ctx, RetrieveVideoOptions{ID: &f.Video.ID, IncludeNotes: true})
	require.NoError(t, err)
	require.Len(t, video.Notes, 1)
	assert.Equal(t, "remember this part", video.Notes[0].Content)
}

func TestUpdateProgress(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	f := seedFixture(t, db, "lesson.mp4")

	err := svc.UpdateProgress(ctx, f.Video, UpdateProgressOptions{
		Progress: pointerutil.Float64(42.5),
	})
	require.NoError(t, err)

	video, err := svc.RetrieveVideo(ctx, RetrieveVideoOptions{ID: &f.Video.ID})
	require.NoError(t, err)
	assert.Equal(t, 42.5, video.Progress)
}

func TestUpdateProgressUpsertsLastPlayed(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	f := seedFixture(t, db, "lesson.mp4")
	second := seedVideo(t, db, f.Subfolder.ID, "lesson-2.mp4", "/media/library-lesson.mp4/course/chapter/lesson-2.mp4")

	require.NoError(t, svc.UpdateProgress(ctx, f.Video, UpdateProgressOptions{
		Progress: pointerutil.Float64(10),
	}))

	lastPlayed := &models.FolderLastPlayed{}
	err := db.NewSelect().Model(lastPlayed).Where("flp.folder_id = ?", f.Folder.ID).Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.Video.ID, lastPlayed.VideoID)

	// Playing a second video in the same folder replaces the row instead of
	// adding one.
	require.NoError(t, svc.UpdateProgress(ctx, second, UpdateProgressOptions{
		Progress: pointerutil.Float64(5),
	}))

	count, err := db.NewSelect().Model((*models.FolderLastPlayed)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = db.NewSelect().Model(lastPlayed).Where("flp.folder_id = ?", f.Folder.ID).Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, lastPlayed.VideoID)
}

func TestUpdateProgressZeroSkipsLastPlayed(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	f := seedFixture(t, db, "lesson.mp4")

	require.NoError(t, svc.UpdateProgress(ctx, f.Video, UpdateProgressOptions{
		Progress: pointerutil.Float64(0),
	}))

	count, err := db.NewSelect().Model((*models.FolderLastPlayed)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUpdateProgressLegacyNote(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	f := seedFixture(t, db, "lesson.mp4")

	require.NoError(t, svc.UpdateProgress(ctx, f.Video, UpdateProgressOptions{
		Progress: pointerutil.Float64(50),
		Note:     pointerutil.String("halfway"),
	}))

	notes := []*models.Note{}
	require.NoError(t, db.NewSelect().Model(&notes).Where("n.video_id = ?", f.Video.ID).Scan(ctx))
	require.Len(t, notes, 1)
	assert.Equal(t, "halfway", notes[0].Content)

	// An empty note is a no-op.
	require.NoError(t, svc.UpdateProgress(ctx, f.Video, UpdateProgressOptions{
		Note: pointerutil.String(""),
	}))
	count, err := db.NewSelect().Model((*models.Note)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestListVideosSearch(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	f := seedFixture(t, db, "Intro to Go.mp4")
	seedVideo(t, db, f.Subfolder.ID, "advanced go.mp4", "/media/x/advanced go.mp4")
	seedVideo(t, db, f.Subfolder.ID, "python.mp4", "/media/x/python.mp4")

	videos, total, err := svc.ListVideosWithTotal(ctx, ListVideosOptions{
		Search: pointerutil.String("go"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, videos, 2)
	// Case-insensitive match, name ascending.
	assert.Equal(t, "Intro to Go.mp4", videos[0].Name)
	assert.Equal(t, "advanced go.mp4", videos[1].Name)
}

func TestListVideosNoteCount(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	f := seedFixture(t, db, "lesson.mp4")
	require.NoError(t, svc.UpdateProgress(ctx, f.Video, UpdateProgressOptions{
		Note: pointerutil.String("one"),
	}))
	require.NoError(t, svc.UpdateProgress(ctx, f.Video, UpdateProgressOptions{
		Note: pointerutil.String("two"),
	}))

	videos, err := svc.ListVideos(ctx, ListVideosOptions{SubfolderID: &f.Subfolder.ID})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, 2, videos[0].NoteCount)
}

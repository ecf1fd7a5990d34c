package videos

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/vidshelf/vidshelf/pkg/errcodes"
	"github.com/vidshelf/vidshelf/pkg/models"
)

type RetrieveVideoOptions struct {
	ID   *int
	Path *string

	IncludeNotes bool
}

type ListVideosOptions struct {
	Search      *string
	SubfolderID *int

	includeTotal bool
}

// UpdateProgressOptions carries the optional pieces of a progress update.
type UpdateProgressOptions struct {
	// Progress replaces the video's progress percentage when set.
	Progress *float64
	// Note creates a note on the video when set and non-empty.
	Note *string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) RetrieveVideo(ctx context.Context, opts RetrieveVideoOptions) (*models.Video, error) {
	video := &models.Video{}

	q := svc.db.
		NewSelect().
		Model(video)

	if opts.ID != nil {
		q = q.Where("v.id = ?", *opts.ID)
	}
	if opts.Path != nil {
		q = q.Where("v.path = ?", *opts.Path)
	}
	if opts.IncludeNotes {
		q = q.Relation("Notes", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("n.created_at ASC", "n.id ASC")
		})
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Video")
		}
		return nil, errors.WithStack(err)
	}

	return video, nil
}

func (svc *Service) ListVideos(ctx context.Context, opts ListVideosOptions) ([]*models.Video, error) {
	v, _, err := svc.listVideosWithTotal(ctx, opts)
	return v, errors.WithStack(err)
}

func (svc *Service) ListVideosWithTotal(ctx context.Context, opts ListVideosOptions) ([]*models.Video, int, error) {
	opts.includeTotal = true
	return svc.listVideosWithTotal(ctx, opts)
}

func (svc *Service) listVideosWithTotal(ctx context.Context, opts ListVideosOptions) ([]*models.Video, int, error) {
	var videos []*models.Video
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&videos).
		ColumnExpr("v.*").
		ColumnExpr("(SELECT COUNT(*) FROM notes n WHERE n.video_id = v.id) AS note_count").
		Order("v.name ASC")

	if opts.Search != nil && *opts.Search != "" {
		q = q.Where("v.name LIKE ?", "%"+*opts.Search+"%")
	}
	if opts.SubfolderID != nil {
		q = q.Where("v.subfolder_id = ?", *opts.SubfolderID)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return videos, total, nil
}

// UpdateProgress persists a progress update and its side effects in one
// transaction: the progress write, the owning folder's last-played upsert
// when the new progress is non-zero, and an optional note.
func (svc *Service) UpdateProgress(ctx context.Context, video *models.Video, opts UpdateProgressOptions) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()

		if opts.Progress != nil {
			video.Progress = *opts.Progress
			video.UpdatedAt = now

			_, err := tx.NewUpdate().
				Model(video).
				Column("progress", "updated_at").
				WherePK().
				Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			if video.Progress > 0 {
				if err := upsertLastPlayed(ctx, tx, video, now); err != nil {
					return err
				}
			}
		}

		if opts.Note != nil && *opts.Note != "" {
			// Note timestamps are always stamped in UTC.
			stamp := now.UTC()
			note := &models.Note{
				VideoID:   video.ID,
				Content:   *opts.Note,
				CreatedAt: stamp,
				UpdatedAt: stamp,
			}
			_, err := tx.NewInsert().
				Model(note).
				Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		return nil
	})
}

func upsertLastPlayed(ctx context.Context, tx bun.Tx, video *models.Video, now time.Time) error {
	subfolder := &models.Subfolder{}
	err := tx.NewSelect().
		Model(subfolder).
		Where("sf.id = ?", video.SubfolderID).
		Scan(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	lastPlayed := &models.FolderLastPlayed{
		FolderID:     subfolder.FolderID,
		VideoID:      video.ID,
		LastPlayedAt: now,
	}
	_, err = tx.NewInsert().
		Model(lastPlayed).
		On("CONFLICT (folder_id) DO UPDATE").
		Set("video_id = EXCLUDED.video_id").
		Set("last_played_at = EXCLUDED.last_played_at").
		Exec(ctx)
	return errors.WithStack(err)
}

package notes

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/vidshelf/vidshelf/pkg/errcodes"
	"github.com/vidshelf/vidshelf/pkg/models"
)

type RetrieveNoteOptions struct {
	ID *int
}

type ListNotesOptions struct {
	VideoID *int
}

type UpdateNoteOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateNote attaches a note to a video. The video must exist.
func (svc *Service) CreateNote(ctx context.Context, note *models.Note) error {
	exists, err := svc.db.
		NewSelect().
		Model((*models.Video)(nil)).
		Where("v.id = ?", note.VideoID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.NotFound("Video")
	}

	// Note timestamps are stamped in UTC so they read the same regardless of
	// where the server runs.
	now := time.Now().UTC()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = note.CreatedAt

	_, err = svc.db.
		NewInsert().
		Model(note).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveNote(ctx context.Context, opts RetrieveNoteOptions) (*models.Note, error) {
	note := &models.Note{}

	q := svc.db.
		NewSelect().
		Model(note)

	if opts.ID != nil {
		q = q.Where("n.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Note")
		}
		return nil, errors.WithStack(err)
	}

	return note, nil
}

// ListNotes returns a video's notes, oldest first. The video must exist.
func (svc *Service) ListNotes(ctx context.Context, opts ListNotesOptions) ([]*models.Note, error) {
	if opts.VideoID != nil {
		exists, err := svc.db.
			NewSelect().
			Model((*models.Video)(nil)).
			Where("v.id = ?", *opts.VideoID).
			Exists(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if !exists {
			return nil, errcodes.NotFound("Video")
		}
	}

	notes := []*models.Note{}
	q := svc.db.
		NewSelect().
		Model(&notes).
		Order("n.created_at ASC", "n.id ASC")

	if opts.VideoID != nil {
		q = q.Where("n.video_id = ?", *opts.VideoID)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return notes, nil
}

// UpdateNote persists the given columns and refreshes updated_at.
func (svc *Service) UpdateNote(ctx context.Context, note *models.Note, opts UpdateNoteOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	note.UpdatedAt = time.Now().UTC()
	columns := append(opts.Columns, "updated_at")

	_, err := svc.db.
		NewUpdate().
		Model(note).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errcodes.NotFound("Note")
		}
		return errors.WithStack(err)
	}
	return nil
}

func (svc *Service) DeleteNote(ctx context.Context, noteID int) error {
	result, err := svc.db.
		NewDelete().
		Model((*models.Note)(nil)).
		Where("id = ?", noteID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errcodes.NotFound("Note")
	}
	return nil
}

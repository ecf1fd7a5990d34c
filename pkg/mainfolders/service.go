package mainfolders

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/vidshelf/vidshelf/pkg/errcodes"
	"github.com/vidshelf/vidshelf/pkg/models"
)

type RetrieveMainFolderOptions struct {
	ID   *int
	Path *string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) RetrieveMainFolder(ctx context.Context, opts RetrieveMainFolderOptions) (*models.MainFolder, error) {
	mainFolder := &models.MainFolder{}

	q := svc.db.
		NewSelect().
		Model(mainFolder)

	if opts.ID != nil {
		q = q.Where("mf.id = ?", *opts.ID)
	}
	if opts.Path != nil {
		q = q.Where("mf.path = ?", *opts.Path)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Main folder")
		}
		return nil, errors.WithStack(err)
	}

	return mainFolder, nil
}

func (svc *Service) ListMainFolders(ctx context.Context) ([]*models.MainFolder, error) {
	mainFolders := []*models.MainFolder{}

	err := svc.db.
		NewSelect().
		Model(&mainFolders).
		Order("mf.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return mainFolders, nil
}

// DeleteMainFolder removes a library root. Every folder, subfolder, video,
// and note beneath it goes with it through the cascade.
func (svc *Service) DeleteMainFolder(ctx context.Context, id int) error {
	result, err := svc.db.
		NewDelete().
		Model((*models.MainFolder)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errcodes.NotFound("Main folder")
	}
	return nil
}

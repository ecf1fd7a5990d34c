package folders

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/vidshelf/vidshelf/pkg/errcodes"
	"github.com/vidshelf/vidshelf/pkg/models"
)

type RetrieveFolderOptions struct {
	ID *int
}

type ListFoldersOptions struct {
	MainFolderPath *string
	Search         *string

	includeTotal bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) RetrieveFolder(ctx context.Context, opts RetrieveFolderOptions) (*models.Folder, error) {
	folder := &models.Folder{}

	q := svc.db.
		NewSelect().
		Model(folder).
		Relation("MainFolder").
		Relation("LastPlayed").
		Relation("LastPlayed.Video")

	if opts.ID != nil {
		q = q.Where("f.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Folder")
		}
		return nil, errors.WithStack(err)
	}

	if err := svc.loadTags(ctx, []*models.Folder{folder}); err != nil {
		return nil, err
	}
	composePaths([]*models.Folder{folder})

	return folder, nil
}

func (svc *Service) ListFolders(ctx context.Context, opts ListFoldersOptions) ([]*models.Folder, error) {
	f, _, err := svc.listFoldersWithTotal(ctx, opts)
	return f, errors.WithStack(err)
}

func (svc *Service) ListFoldersWithTotal(ctx context.Context, opts ListFoldersOptions) ([]*models.Folder, int, error) {
	opts.includeTotal = true
	return svc.listFoldersWithTotal(ctx, opts)
}

func (svc *Service) listFoldersWithTotal(ctx context.Context, opts ListFoldersOptions) ([]*models.Folder, int, error) {
	folders := []*models.Folder{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&folders).
		Relation("MainFolder").
		Relation("LastPlayed").
		Relation("LastPlayed.Video").
		Order("f.name ASC")

	if opts.MainFolderPath != nil {
		q = q.Where("main_folder.path = ?", *opts.MainFolderPath)
	}
	if opts.Search != nil && *opts.Search != "" {
		q = q.Where("f.name LIKE ?", "%"+*opts.Search+"%")
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	if err := svc.loadTags(ctx, folders); err != nil {
		return nil, 0, err
	}
	composePaths(folders)

	return folders, total, nil
}

// loadTags fills each folder's Tags slice through the folder_tags join table.
func (svc *Service) loadTags(ctx context.Context, folders []*models.Folder) error {
	if len(folders) == 0 {
		return nil
	}

	folderIDs := make([]int, 0, len(folders))
	for _, folder := range folders {
		folder.Tags = []*models.Tag{}
		folderIDs = append(folderIDs, folder.ID)
	}

	folderTags := []*models.FolderTag{}
	err := svc.db.
		NewSelect().
		Model(&folderTags).
		Relation("Tag").
		Where("ft.folder_id IN (?)", bun.In(folderIDs)).
		Order("ft.id ASC").
		Scan(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	byFolder := map[int]*models.Folder{}
	for _, folder := range folders {
		byFolder[folder.ID] = folder
	}
	for _, folderTag := range folderTags {
		if folder, ok := byFolder[folderTag.FolderID]; ok && folderTag.Tag != nil {
			folder.Tags = append(folder.Tags, folderTag.Tag)
		}
	}

	return nil
}

func composePaths(folders []*models.Folder) {
	for _, folder := range folders {
		if folder.MainFolder != nil {
			folder.Path = filepath.Join(folder.MainFolder.Path, folder.Name)
		}
	}
}

// ListSubfoldersWithVideos returns the folder's subfolders with their videos
// nested. Subfolders sort numerically on their name so chapter-style names
// ("2. Basics" before "10. Advanced") come back in viewing order; videos sort
// by name. Videos carry their note counts. A folder with no subfolders is
// reported as not found.
func (svc *Service) ListSubfoldersWithVideos(ctx context.Context, folderID int) ([]*models.Subfolder, error) {
	exists, err := svc.db.
		NewSelect().
		Model((*models.Folder)(nil)).
		Where("f.id = ?", folderID).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !exists {
		return nil, errcodes.NotFound("Folder")
	}

	subfolders := []*models.Subfolder{}
	err = svc.db.
		NewSelect().
		Model(&subfolders).
		Relation("Videos", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				ColumnExpr("v.*").
				ColumnExpr("(SELECT COUNT(*) FROM notes n WHERE n.video_id = v.id) AS note_count").
				Order("v.name ASC")
		}).
		Where("sf.folder_id = ?", folderID).
		OrderExpr("CAST(sf.name AS INTEGER) ASC, sf.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(subfolders) == 0 {
		return nil, errcodes.NotFound("Subfolders")
	}

	return subfolders, nil
}

// AttachTag maps an existing tag onto a folder by name. Attaching a tag
// that's already mapped is a no-op success.
func (svc *Service) AttachTag(ctx context.Context, folderID int, tagName string) (*models.Tag, error) {
	folderExists, err := svc.db.
		NewSelect().
		Model((*models.Folder)(nil)).
		Where("f.id = ?", folderID).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !folderExists {
		return nil, errcodes.NotFound("Folder")
	}

	tag := &models.Tag{}
	err = svc.db.
		NewSelect().
		Model(tag).
		Where("t.name = ?", tagName).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Tag")
		}
		return nil, errors.WithStack(err)
	}

	mapped, err := svc.db.
		NewSelect().
		Model((*models.FolderTag)(nil)).
		Where("ft.folder_id = ? AND ft.tag_id = ?", folderID, tag.ID).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if mapped {
		return tag, nil
	}

	_, err = svc.db.
		NewInsert().
		Model(&models.FolderTag{FolderID: folderID, TagID: tag.ID}).
		Exec(ctx)
	return tag, errors.WithStack(err)
}

// DetachTag removes a tag mapping from a folder by tag name.
func (svc *Service) DetachTag(ctx context.Context, folderID int, tagName string) error {
	tag := &models.Tag{}
	err := svc.db.
		NewSelect().
		Model(tag).
		Where("t.name = ?", tagName).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errcodes.NotFound("Tag")
		}
		return errors.WithStack(err)
	}

	result, err := svc.db.
		NewDelete().
		Model((*models.FolderTag)(nil)).
		Where("folder_id = ? AND tag_id = ?", folderID, tag.ID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errcodes.NotFound("Tag mapping")
	}
	return nil
}

// UpsertLastPlayed records videoID as the folder's most recently played
// video, replacing any previous record.
func (svc *Service) UpsertLastPlayed(ctx context.Context, folderID, videoID int) (*models.FolderLastPlayed, error) {
	folderExists, err := svc.db.
		NewSelect().
		Model((*models.Folder)(nil)).
		Where("f.id = ?", folderID).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !folderExists {
		return nil, errcodes.NotFound("Folder")
	}

	videoExists, err := svc.db.
		NewSelect().
		Model((*models.Video)(nil)).
		Where("v.id = ?", videoID).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !videoExists {
		return nil, errcodes.NotFound("Video")
	}

	lastPlayed := &models.FolderLastPlayed{
		FolderID:     folderID,
		VideoID:      videoID,
		LastPlayedAt: time.Now(),
	}
	_, err = svc.db.
		NewInsert().
		Model(lastPlayed).
		On("CONFLICT (folder_id) DO UPDATE").
		Set("video_id = EXCLUDED.video_id").
		Set("last_played_at = EXCLUDED.last_played_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return lastPlayed, nil
}

// RetrieveLastPlayed returns the folder's last-played record with the video
// embedded.
func (svc *Service) RetrieveLastPlayed(ctx context.Context, folderID int) (*models.FolderLastPlayed, error) {
	folderExists, err := svc.db.
		NewSelect().
		Model((*models.Folder)(nil)).
		Where("f.id = ?", folderID).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !folderExists {
		return nil, errcodes.NotFound("Folder")
	}

	lastPlayed := &models.FolderLastPlayed{}
	err = svc.db.
		NewSelect().
		Model(lastPlayed).
		Relation("Video").
		Where("flp.folder_id = ?", folderID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Last played record")
		}
		return nil, errors.WithStack(err)
	}

	return lastPlayed, nil
}

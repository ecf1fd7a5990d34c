package scanner

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"github.com/vidshelf/vidshelf/pkg/mediaprobe"
	"github.com/vidshelf/vidshelf/pkg/models"
)

// ScanResult reports what a single scan pass inserted.
type ScanResult struct {
	MainFolder        *models.MainFolder `json:"main_folder"`
	FoldersCreated    int                `json:"folders_created"`
	SubfoldersCreated int                `json:"subfolders_created"`
	VideosCreated     int                `json:"videos_created"`
}

// ReconcileResult reports how many rows the sweep purged at each level.
// Counts only cover rows deleted directly; cascaded children are not counted.
type ReconcileResult struct {
	MainFoldersRemoved int `json:"main_folders_removed"`
	FoldersRemoved     int `json:"folders_removed"`
	SubfoldersRemoved  int `json:"subfolders_removed"`
	VideosRemoved      int `json:"videos_removed"`
}

type Service struct {
	db    *bun.DB
	probe mediaprobe.Prober
}

func NewService(db *bun.DB, probe mediaprobe.Prober) *Service {
	return &Service{db: db, probe: probe}
}

// ScanLibrary walks rootPath two levels deep and inserts every folder,
// subfolder, and video it finds that isn't already registered. Rows are found
// by their natural keys, so scanning the same tree twice never duplicates
// anything. The whole insert pass runs in one transaction; a failed duration
// probe degrades that video to the zero duration instead of aborting the
// scan. Callers must verify rootPath exists before calling.
func (svc *Service) ScanLibrary(ctx context.Context, rootPath string) (*ScanResult, error) {
	log := logger.FromContext(ctx).Data(logger.Data{"scan_id": uuid.NewString(), "path": rootPath})
	log.Info("scanning library")

	tree, err := Walk(rootPath)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	result := &ScanResult{}
	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		mainFolder, err := svc.findOrCreateMainFolder(ctx, tx, rootPath)
		if err != nil {
			return err
		}
		result.MainFolder = mainFolder

		for _, folderEntry := range tree {
			folder, created, err := svc.findOrCreateFolder(ctx, tx, mainFolder.ID, folderEntry.Name)
			if err != nil {
				return err
			}
			if created {
				result.FoldersCreated++
			}

			for _, subfolderEntry := range folderEntry.Subfolders {
				subfolder, created, err := svc.findOrCreateSubfolder(ctx, tx, folder.ID, subfolderEntry.Name)
				if err != nil {
					return err
				}
				if created {
					result.SubfoldersCreated++
				}

				for _, videoEntry := range subfolderEntry.Videos {
					created, err := svc.findOrCreateVideo(ctx, tx, subfolder.ID, videoEntry)
					if err != nil {
						return err
					}
					if created {
						result.VideosCreated++
					}
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	log.Info("scan finished", logger.Data{
		"folders_created":    result.FoldersCreated,
		"subfolders_created": result.SubfoldersCreated,
		"videos_created":     result.VideosCreated,
	})

	return result, nil
}

func (svc *Service) findOrCreateMainFolder(ctx context.Context, tx bun.Tx, path string) (*models.MainFolder, error) {
	mainFolder := &models.MainFolder{}
	err := tx.NewSelect().
		Model(mainFolder).
		Where("mf.path = ?", path).
		Scan(ctx)
	if err == nil {
		return mainFolder, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.WithStack(err)
	}

	now := time.Now()
	mainFolder = &models.MainFolder{
		Name:      filepath.Base(path),
		Path:      path,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = tx.NewInsert().
		Model(mainFolder).
		Returning("*").
		Exec(ctx)
	return mainFolder, errors.WithStack(err)
}

func (svc *Service) findOrCreateFolder(ctx context.Context, tx bun.Tx, mainFolderID int, name string) (*models.Folder, bool, error) {
	folder := &models.Folder{}
	err := tx.NewSelect().
		Model(folder).
		Where("f.main_folder_id = ? AND f.name = ?", mainFolderID, name).
		Scan(ctx)
	if err == nil {
		return folder, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, errors.WithStack(err)
	}

	now := time.Now()
	folder = &models.Folder{
		Name:         name,
		MainFolderID: mainFolderID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err = tx.NewInsert().
		Model(folder).
		Returning("*").
		Exec(ctx)
	return folder, true, errors.WithStack(err)
}

func (svc *Service) findOrCreateSubfolder(ctx context.Context, tx bun.Tx, folderID int, name string) (*models.Subfolder, bool, error) {
	subfolder := &models.Subfolder{}
	err := tx.NewSelect().
		Model(subfolder).
		Where("sf.folder_id = ? AND sf.name = ?", folderID, name).
		Scan(ctx)
	if err == nil {
		return subfolder, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, errors.WithStack(err)
	}

	now := time.Now()
	subfolder = &models.Subfolder{
		Name:      name,
		FolderID:  folderID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = tx.NewInsert().
		Model(subfolder).
		Returning("*").
		Exec(ctx)
	return subfolder, true, errors.WithStack(err)
}

func (svc *Service) findOrCreateVideo(ctx context.Context, tx bun.Tx, subfolderID int, entry VideoEntry) (bool, error) {
	exists, err := tx.NewSelect().
		Model((*models.Video)(nil)).
		Where("v.path = ?", entry.Path).
		Exists(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}
	if exists {
		// The path is the natural key; the scanner never touches a video
		// after it's registered.
		return false, nil
	}

	// Duration is probed once, at registration.
	duration := svc.probe.Duration(ctx, entry.Path)

	now := time.Now()
	video := &models.Video{
		Name:        entry.Name,
		Path:        entry.Path,
		Progress:    0,
		Duration:    &duration,
		SubfolderID: subfolderID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err = tx.NewInsert().
		Model(video).
		Returning("*").
		Exec(ctx)
	return true, errors.WithStack(err)
}

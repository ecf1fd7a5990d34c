package scanner

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/vidshelf/vidshelf/pkg/models"
)

// Reconcile prunes rows whose backing filesystem path no longer exists. It
// sweeps top-down: main folders first, then folders, subfolders, and videos.
// Deleting a row cascades to everything beneath it, and each level is
// re-queried after the one above was pruned, so a subtree is never descended
// into once its root is gone.
func (svc *Service) Reconcile(ctx context.Context) (*ReconcileResult, error) {
	log := logger.FromContext(ctx)
	result := &ReconcileResult{}

	mainFolders := []*models.MainFolder{}
	err := svc.db.NewSelect().
		Model(&mainFolders).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	for _, mainFolder := range mainFolders {
		if pathExists(mainFolder.Path) {
			continue
		}
		log.Info("pruning main folder", logger.Data{"main_folder_id": mainFolder.ID, "path": mainFolder.Path})
		_, err := svc.db.NewDelete().
			Model(mainFolder).
			WherePK().
			Exec(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		result.MainFoldersRemoved++
	}

	folders := []*models.Folder{}
	err = svc.db.NewSelect().
		Model(&folders).
		Relation("MainFolder").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	folderPaths := map[int]string{}
	for _, folder := range folders {
		folderPath := filepath.Join(folder.MainFolder.Path, folder.Name)
		if pathExists(folderPath) {
			folderPaths[folder.ID] = folderPath
			continue
		}
		log.Info("pruning folder", logger.Data{"folder_id": folder.ID, "path": folderPath})
		_, err := svc.db.NewDelete().
			Model(folder).
			WherePK().
			Exec(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		result.FoldersRemoved++
	}

	subfolders := []*models.Subfolder{}
	err = svc.db.NewSelect().
		Model(&subfolders).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	for _, subfolder := range subfolders {
		folderPath, ok := folderPaths[subfolder.FolderID]
		if !ok {
			// Parent folder was just pruned; the cascade already took this
			// row with it.
			continue
		}
		if pathExists(filepath.Join(folderPath, subfolder.Name)) {
			continue
		}
		log.Info("pruning subfolder", logger.Data{"subfolder_id": subfolder.ID, "name": subfolder.Name})
		_, err := svc.db.NewDelete().
			Model(subfolder).
			WherePK().
			Exec(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		result.SubfoldersRemoved++
	}

	videos := []*models.Video{}
	err = svc.db.NewSelect().
		Model(&videos).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	for _, video := range videos {
		if pathExists(video.Path) {
			continue
		}
		log.Info("pruning video", logger.Data{"video_id": video.ID, "path": video.Path})
		_, err := svc.db.NewDelete().
			Model(video).
			WherePK().
			Exec(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		result.VideosRemoved++
	}

	return result, nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

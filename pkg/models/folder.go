package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Folder is the first directory level beneath a main folder. Its name is
// unique within its main folder.
type Folder struct {
	bun.BaseModel `bun:"table:folders,alias:f"`

	ID           int               `bun:",pk,nullzero" json:"id"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Name         string            `bun:",nullzero" json:"name"`
	MainFolderID int               `bun:",nullzero" json:"main_folder_id"`
	MainFolder   *MainFolder       `bun:"rel:belongs-to,join:main_folder_id=id" json:"main_folder,omitempty"`
	Subfolders   []*Subfolder      `bun:"rel:has-many,join:id=folder_id" json:"subfolders,omitempty"`
	LastPlayed   *FolderLastPlayed `bun:"rel:has-one,join:id=folder_id" json:"last_played,omitempty"`

	// Tags are loaded through the folder_tags join table by the folders
	// service rather than a bun m2m relation.
	Tags []*Tag `bun:"-" json:"tags"`

	// Path is composed from the main folder's path and the folder name when
	// the main folder relation is loaded.
	Path string `bun:"-" json:"path,omitempty"`
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

// MainFolder is a user-chosen root directory representing one media library
// root. Deleting it cascades to every folder, subfolder, video, and note
// beneath it.
type MainFolder struct {
	bun.BaseModel `bun:"table:main_folders,alias:mf"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `bun:",nullzero" json:"name"`
	Path      string    `bun:",nullzero" json:"path"`
	Folders   []*Folder `bun:"rel:has-many,join:id=main_folder_id" json:"folders,omitempty"`
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Subfolder is the second directory level; it holds the video files. Its name
// is unique within its folder.
type Subfolder struct {
	bun.BaseModel `bun:"table:subfolders,alias:sf"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `bun:",nullzero" json:"name"`
	FolderID  int       `bun:",nullzero" json:"folder_id"`
	Videos    []*Video  `bun:"rel:has-many,join:id=subfolder_id" json:"videos,omitempty"`
}

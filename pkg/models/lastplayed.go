package models

import (
	"time"

	"github.com/uptrace/bun"
)

// FolderLastPlayed points at the most recently played video within a folder.
// At most one row exists per folder, enforced by a unique index on folder_id.
type FolderLastPlayed struct {
	bun.BaseModel `bun:"table:folder_last_played,alias:flp"`

	ID           int       `bun:",pk,nullzero" json:"id"`
	FolderID     int       `bun:",nullzero" json:"folder_id"`
	VideoID      int       `bun:",nullzero" json:"video_id"`
	LastPlayedAt time.Time `json:"last_played_at"`
	Video        *Video    `bun:"rel:belongs-to,join:video_id=id" json:"video,omitempty"`
}

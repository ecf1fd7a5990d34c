package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Video is a single media file. The filesystem path is globally unique and
// acts as the natural key during scans, so re-scanning the same tree never
// creates duplicate rows.
type Video struct {
	bun.BaseModel `bun:"table:videos,alias:v"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `bun:",nullzero" json:"name"`
	Path      string    `bun:",nullzero" json:"path"`

	// Progress is a percentage in [0, 100].
	Progress float64 `json:"progress"`

	// Duration is a formatted HH:MM:SS or MM:SS string, or "00:00" when
	// extraction failed at scan time.
	Duration *string `json:"duration"`

	SubfolderID int     `bun:",nullzero" json:"subfolder_id"`
	Notes       []*Note `bun:"rel:has-many,join:id=video_id" json:"notes,omitempty"`

	NoteCount int `bun:",scanonly" json:"note_count,omitempty"`
}

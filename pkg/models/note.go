package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Note is a free-text annotation on a video. UpdatedAt is refreshed on every
// content update.
type Note struct {
	bun.BaseModel `bun:"table:notes,alias:n"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	VideoID   int       `bun:",nullzero" json:"video_id"`
	Content   string    `bun:",nullzero" json:"content"`
}

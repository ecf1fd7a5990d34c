package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Tag is a global label attached to folders. Names are unique and
// case-sensitive. A tag can outlive all of its folder associations; only the
// explicit unmapped sweep removes it.
type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:t"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `bun:",nullzero" json:"name"`

	FolderCount int `bun:",scanonly" json:"folder_count,omitempty"`
}

// FolderTag is the folder/tag join row. The (folder_id, tag_id) pair is
// unique, which is what makes attaching a tag idempotent.
type FolderTag struct {
	bun.BaseModel `bun:"table:folder_tags,alias:ft"`

	ID       int  `bun:",pk,nullzero" json:"id"`
	FolderID int  `bun:",nullzero" json:"folder_id"`
	TagID    int  `bun:",nullzero" json:"tag_id"`
	Tag      *Tag `bun:"rel:belongs-to,join:tag_id=id" json:"tag,omitempty"`
}

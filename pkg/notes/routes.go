package notes

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroups registers the video-scoped note routes on the
// videos group and the note routes on the notes group.
func RegisterRoutesWithGroups(videos *echo.Group, notes *echo.Group, db *bun.DB) {
	h := &handler{
		noteService: NewService(db),
	}

	videos.POST("/:id/notes", h.create)
	videos.GET("/:id/notes", h.list)

	notes.PUT("/:id", h.update)
	notes.DELETE("/:id", h.deleteNote)
}

package folders

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers folder routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		folderService: NewService(db),
	}

	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.GET("/:id/subfolders", h.subfolders)
	g.PUT("/:id/tags", h.attachTag)
	g.DELETE("/:id/tags/:name", h.detachTag)
	g.PUT("/:id/last_played", h.upsertLastPlayed)
	g.GET("/:id/last_played", h.retrieveLastPlayed)
}

// RegisterSearchRoute registers the free-text folder search endpoint at
// /api/folder.
func RegisterSearchRoute(g *echo.Group, db *bun.DB) {
	h := &handler{
		folderService: NewService(db),
	}

	g.GET("", h.search)
}

// RegisterExistsRoute registers the on-disk existence probe at
// /api/folder-exists.
func RegisterExistsRoute(g *echo.Group, db *bun.DB) {
	h := &handler{
		folderService: NewService(db),
	}

	g.GET("", h.folderExists)
}

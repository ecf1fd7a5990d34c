package mainfolders

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"github.com/vidshelf/vidshelf/pkg/scanner"
)

// RegisterRoutesWithGroups registers the scan route on the folders group and
// the main folder routes on the main folders group.
func RegisterRoutesWithGroups(foldersGroup *echo.Group, mainFoldersGroup *echo.Group, db *bun.DB, scanService *scanner.Service) {
	h := &handler{
		mainFolderService: NewService(db),
		scanService:       scanService,
	}

	foldersGroup.POST("/scan", h.scan)

	mainFoldersGroup.GET("", h.list)
	mainFoldersGroup.DELETE("/:id", h.deleteMainFolder)
}

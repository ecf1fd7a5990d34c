package mainfolders

import (
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/vidshelf/vidshelf/pkg/errcodes"
	"github.com/vidshelf/vidshelf/pkg/scanner"
)

type handler struct {
	mainFolderService *Service
	scanService       *scanner.Service
}

// scan registers a library root and synchronizes the database with the
// directory tree beneath it: new entries are inserted, then rows whose files
// disappeared are pruned.
func (h *handler) scan(c echo.Context) error {
	ctx := c.Request().Context()

	params := ScanPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	info, err := os.Stat(params.Path)
	if err != nil || !info.IsDir() {
		return errcodes.BadRequest("Path does not exist or is not a directory.")
	}

	scanResult, err := h.scanService.ScanLibrary(ctx, params.Path)
	if err != nil {
		return errors.WithStack(err)
	}

	reconcileResult, err := h.scanService.Reconcile(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"main_folder": scanResult.MainFolder,
		"scan":        scanResult,
		"reconcile":   reconcileResult,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	mainFolders, err := h.mainFolderService.ListMainFolders(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"main_folders": mainFolders,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) deleteMainFolder(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Main folder")
	}

	if err := h.mainFolderService.DeleteMainFolder(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

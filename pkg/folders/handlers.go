package folders

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
	folderService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListFoldersQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	folderList, total, err := h.folderService.ListFoldersWithTotal(ctx, ListFoldersOptions{
		MainFolderPath: params.MainFolderPath,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"folders": folderList,
		"total":   total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Folder")
	}

	folder, err := h.folderService.RetrieveFolder(ctx, RetrieveFolderOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, folder))
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	params := SearchFoldersQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	folderList, total, err := h.folderService.ListFoldersWithTotal(ctx, ListFoldersOptions{
		Search: params.Search,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"folders": folderList,
		"total":   total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

// folderExists reports whether a directory exists on disk and whether any
// video file lives below it.
func (h *handler) folderExists(c echo.Context) error {
	params := FolderExistsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	info, err := os.Stat(params.FolderPath)
	if err != nil || !info.IsDir() {
		return errcodes.NotFound("Folder path")
	}

	response := map[string]any{
		"exists":     true,
		"has_videos": scanner.HasVideos(params.FolderPath),
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) subfolders(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Folder")
	}

	subfolderList, err := h.folderService.ListSubfoldersWithVideos(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"subfolders": subfolderList,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) attachTag(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Folder")
	}

	params := AttachTagPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	tag, err := h.folderService.AttachTag(ctx, id, params.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, tag))
}

func (h *handler) detachTag(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Folder")
	}

	if err := h.folderService.DetachTag(ctx, id, c.Param("name")); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

func (h *handler) upsertLastPlayed(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Folder")
	}

	params := UpsertLastPlayedPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	lastPlayed, err := h.folderService.UpsertLastPlayed(ctx, id, params.VideoID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, lastPlayed))
}

func (h *handler) retrieveLastPlayed(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Folder")
	}

	lastPlayed, err := h.folderService.RetrieveLastPlayed(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, lastPlayed))
}

package videos

import (
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/vidshelf/vidshelf/pkg/errcodes"
)

type handler struct {
	videoService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Video")
	}

	video, err := h.videoService.RetrieveVideo(ctx, RetrieveVideoOptions{
		ID:           &id,
		IncludeNotes: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, video))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Video")
	}

	params := UpdateVideoPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	video, err := h.videoService.RetrieveVideo(ctx, RetrieveVideoOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	err = h.videoService.UpdateProgress(ctx, video, UpdateProgressOptions{
		Progress: params.Progress,
		Note:     params.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, video))
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	params := SearchVideosQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	videos, total, err := h.videoService.ListVideosWithTotal(ctx, ListVideosOptions{
		Search: params.Search,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"videos": videos,
		"total":  total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

// stream serves the media file itself. The path has to belong to a registered
// video; arbitrary filesystem paths are never served.
func (h *handler) stream(c echo.Context) error {
	ctx := c.Request().Context()

	params := StreamVideoQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	video, err := h.videoService.RetrieveVideo(ctx, RetrieveVideoOptions{
		Path: &params.VideoPath,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if _, err := os.Stat(video.Path); err != nil {
		return errcodes.NotFound("Video file")
	}

	return errors.WithStack(c.File(video.Path))
}

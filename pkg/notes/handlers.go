package notes

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/vidshelf/vidshelf/pkg/errcodes"
	"github.com/vidshelf/vidshelf/pkg/models"
)

type handler struct {
	noteService *Service
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()
	videoID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Video")
	}

	params := CreateNotePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	note := &models.Note{
		VideoID: videoID,
		Content: params.Content,
	}
	if err := h.noteService.CreateNote(ctx, note); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, note))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()
	videoID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Video")
	}

	noteList, err := h.noteService.ListNotes(ctx, ListNotesOptions{
		VideoID: &videoID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"notes": noteList,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Note")
	}

	params := UpdateNotePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	note, err := h.noteService.RetrieveNote(ctx, RetrieveNoteOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	note.Content = params.Content
	err = h.noteService.UpdateNote(ctx, note, UpdateNoteOptions{
		Columns: []string{"content"},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, note))
}

func (h *handler) deleteNote(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Note")
	}

	if err := h.noteService.DeleteNote(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

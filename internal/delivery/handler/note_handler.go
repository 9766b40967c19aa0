package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"notes-service/internal/application/command"
	"notes-service/internal/application/interfaces"
	"notes-service/internal/application/query"
	"notes-service/internal/delivery/middleware"
	"notes-service/internal/domain"
	"notes-service/internal/domain/entities"
)

type NoteHandler struct {
	noteService interfaces.NoteService
}

func NewNoteHandler(noteService interfaces.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// List accepts skip or offset; offset wins when both are present.
func (h *NoteHandler) List(c echo.Context) error {
	owner, err := currentUser(c)
	if err != nil {
		return err
	}

	var q query.ListNotesQuery
	if err := echo.QueryParamsBinder(c).
		Int("skip", &q.Offset).
		Int("offset", &q.Offset).
		Int("limit", &q.Limit).
		String("search", &q.Search).
		BindError(); err != nil {
		return fmt.Errorf("%w: skip, offset and limit must be integers", domain.ErrInvalidInput)
	}

	res, err := h.noteService.ListNotes(c.Request().Context(), owner, q)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, res.Result)
}

func (h *NoteHandler) Create(c echo.Context) error {
	owner, err := currentUser(c)
	if err != nil {
		return err
	}

	var req command.CreateNoteCommand
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.noteService.CreateNote(c.Request().Context(), owner, &req)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, res.Result)
}

func (h *NoteHandler) Get(c echo.Context) error {
	owner, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := noteID(c)
	if err != nil {
		return err
	}

	res, err := h.noteService.GetNote(c.Request().Context(), owner, id)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, res.Result)
}

func (h *NoteHandler) Update(c echo.Context) error {
	owner, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := noteID(c)
	if err != nil {
		return err
	}

	var req command.UpdateNoteCommand
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := h.noteService.UpdateNote(c.Request().Context(), owner, &req)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, res.Result)
}

func (h *NoteHandler) Delete(c echo.Context) error {
	owner, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := noteID(c)
	if err != nil {
		return err
	}

	res, err := h.noteService.DeleteNote(c.Request().Context(), owner, id)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, res.Result)
}

func currentUser(c echo.Context) (*entities.User, error) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func noteID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid note id", domain.ErrInvalidInput)
	}
	return id, nil
}

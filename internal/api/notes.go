package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/nhle/dashboard/internal/api/response"
	"github.com/nhle/dashboard/internal/collection"
	"github.com/nhle/dashboard/internal/failure"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/validate"
)

type NoteHandler struct {
	notes *collection.Notes
}

func (handler *NoteHandler) Router(router chi.Router) {
	router.Route("/notes", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetNotes)
		routerGroup.Post("/", handler.CreateNote)
		routerGroup.Delete("/{id}", handler.DeleteNote)
	})
}

// GetNotes returns the notes newest first.
func (handler *NoteHandler) GetNotes(writer http.ResponseWriter, request *http.Request) {
	notes, err := handler.notes.List(request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get notes")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, notes)
}

func (handler *NoteHandler) CreateNote(writer http.ResponseWriter, request *http.Request) {
	req := CreateNoteRequest{}

	if err := validate.Decode(request.Body, &req); err != nil {
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	note, ok, err := handler.notes.Add(request.Context(), req.Text)
	if err != nil {
		log.Error().Err(err).Msg("failed to create note")

		response.WithError(writer, err)

		return
	}
	if !ok {
		response.WithError(writer, failure.BadRequestFromString("text is required"))

		return
	}

	response.WithJSON(writer, http.StatusCreated, note)
}

func (handler *NoteHandler) DeleteNote(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	existing, err := handler.notes.List(request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get notes")

		response.WithError(writer, err)

		return
	}
	if !containsID(existing, id, func(n model.Note) string { return n.ID }) {
		response.WithError(writer, failure.NotFound("note"))

		return
	}

	notes, err := handler.notes.Remove(request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete note")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, notes)
}

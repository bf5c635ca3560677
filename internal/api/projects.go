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

type ProjectHandler struct {
	projects *collection.Projects
}

func (handler *ProjectHandler) Router(router chi.Router) {
	router.Route("/projects", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetProjects)
		routerGroup.Post("/", handler.CreateProject)
		routerGroup.Patch("/{id}", handler.UpdateProject)
		routerGroup.Delete("/{id}", handler.DeleteProject)
	})
}

func (handler *ProjectHandler) GetProjects(writer http.ResponseWriter, request *http.Request) {
	projects, err := handler.projects.List(request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get projects")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, projects)
}

func (handler *ProjectHandler) CreateProject(writer http.ResponseWriter, request *http.Request) {
	req := CreateProjectRequest{}

	if err := validate.Decode(request.Body, &req); err != nil {
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	project, ok, err := handler.projects.Add(request.Context(), req.Name, req.Description, req.Status)
	if err != nil {
		log.Error().Err(err).Msg("failed to create project")

		response.WithError(writer, err)

		return
	}
	if !ok {
		response.WithError(writer, failure.BadRequestFromString("name is required"))

		return
	}

	response.WithJSON(writer, http.StatusCreated, project)
}

// UpdateProject changes the status of a project.
func (handler *ProjectHandler) UpdateProject(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	req := UpdateProjectRequest{}

	if err := validate.Decode(request.Body, &req); err != nil {
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	projects, err := handler.projects.SetStatus(request.Context(), id, req.Status)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update project")

		response.WithError(writer, err)

		return
	}
	if !containsID(projects, id, func(p model.Project) string { return p.ID }) {
		response.WithError(writer, failure.NotFound("project"))

		return
	}

	response.WithJSON(writer, http.StatusOK, projects)
}

func (handler *ProjectHandler) DeleteProject(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	existing, err := handler.projects.List(request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get projects")

		response.WithError(writer, err)

		return
	}
	if !containsID(existing, id, func(p model.Project) string { return p.ID }) {
		response.WithError(writer, failure.NotFound("project"))

		return
	}

	projects, err := handler.projects.Remove(request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete project")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, projects)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/nhle/dashboard/internal/api/response"
	"github.com/nhle/dashboard/internal/settings"
	"github.com/nhle/dashboard/internal/validate"
)

type SettingsHandler struct {
	settings *settings.Manager
}

func (handler *SettingsHandler) Router(router chi.Router) {
	router.Route("/settings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSettings)
		routerGroup.Put("/", handler.UpdateSettings)
		routerGroup.Post("/reset", handler.ResetSettings)
		routerGroup.Post("/theme", handler.ToggleTheme)
	})
}

// GetSettings returns the stored settings merged over the defaults.
func (handler *SettingsHandler) GetSettings(writer http.ResponseWriter, request *http.Request) {
	s, err := handler.settings.Load(request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, s)
}

// UpdateSettings decodes the body over the current settings, so omitted
// fields keep their value.
func (handler *SettingsHandler) UpdateSettings(writer http.ResponseWriter, request *http.Request) {
	req, err := handler.settings.Load(request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")

		response.WithError(writer, err)

		return
	}

	if err := validate.Decode(request.Body, &req); err != nil {
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.settings.Save(request.Context(), req); err != nil {
		log.Error().Err(err).Msg("failed to save settings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, req)
}

func (handler *SettingsHandler) ResetSettings(writer http.ResponseWriter, request *http.Request) {
	s, err := handler.settings.Reset(request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to reset settings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, s)
}

func (handler *SettingsHandler) ToggleTheme(writer http.ResponseWriter, request *http.Request) {
	s, err := handler.settings.ToggleTheme(request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to toggle theme")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, s)
}

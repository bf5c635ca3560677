package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nhle/dashboard/internal/api/response"
	"github.com/nhle/dashboard/internal/app"
)

type Handlers struct {
	Settings SettingsHandler
	Todos    TodoHandler
	Notes    NoteHandler
	Projects ProjectHandler
	Data     DataHandler
}

// NewHandlers builds every handler over the shared dashboard state.
func NewHandlers(c *app.Context) Handlers {
	return Handlers{
		Settings: SettingsHandler{settings: c.Settings},
		Todos:    TodoHandler{todos: c.Todos, settings: c.Settings, now: time.Now},
		Notes:    NoteHandler{notes: c.Notes},
		Projects: ProjectHandler{projects: c.Projects},
		Data: DataHandler{
			settings: c.Settings,
			weather:  c.Weather,
			quotes:   c.Quotes,
			probe:    c.Probe,
		},
	}
}

// NewRouter mounts the handlers under /api. An empty allowedOrigins list
// disables CORS headers.
func NewRouter(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)

	if len(allowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	router.Route("/api", func(routerGroup chi.Router) {
		routerGroup.Get("/health", health)
		h.Settings.Router(routerGroup)
		h.Todos.Router(routerGroup)
		h.Notes.Router(routerGroup)
		h.Projects.Router(routerGroup)
		h.Data.Router(routerGroup)
	})

	return router
}

func health(writer http.ResponseWriter, _ *http.Request) {
	response.WithJSON(writer, http.StatusOK, map[string]string{"status": "ok"})
}

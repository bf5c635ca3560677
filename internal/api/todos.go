package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/nhle/dashboard/internal/api/response"
	"github.com/nhle/dashboard/internal/collection"
	"github.com/nhle/dashboard/internal/failure"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/settings"
	"github.com/nhle/dashboard/internal/validate"
)

type TodoHandler struct {
	todos    *collection.Todos
	settings *settings.Manager
	now      func() time.Time
}

func (handler *TodoHandler) Router(router chi.Router) {
	router.Route("/todos", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTodos)
		routerGroup.Post("/", handler.CreateTodo)
		routerGroup.Post("/clear-completed", handler.ClearCompleted)
		routerGroup.Post("/{id}/toggle", handler.ToggleTodo)
		routerGroup.Delete("/{id}", handler.DeleteTodo)
	})
}

func (handler *TodoHandler) GetTodos(writer http.ResponseWriter, request *http.Request) {
	todos, err := handler.todos.List(request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get todos")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, todos)
}

// CreateTodo adds a todo. Text that is blank after trimming is rejected.
func (handler *TodoHandler) CreateTodo(writer http.ResponseWriter, request *http.Request) {
	req := CreateTodoRequest{}

	if err := validate.Decode(request.Body, &req); err != nil {
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	todo, ok, err := handler.todos.Add(request.Context(), req.Text)
	if err != nil {
		log.Error().Err(err).Msg("failed to create todo")

		response.WithError(writer, err)

		return
	}
	if !ok {
		response.WithError(writer, failure.BadRequestFromString("text is required"))

		return
	}

	res := CreateTodoResponse{Todo: todo}
	if handler.settings.Current().EnableNotifications {
		n := model.TaskAdded(todo, handler.now())
		res.Notification = &n
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

func (handler *TodoHandler) ToggleTodo(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	todos, err := handler.todos.Toggle(request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to toggle todo")

		response.WithError(writer, err)

		return
	}
	if !containsID(todos, id, func(t model.Todo) string { return t.ID }) {
		response.WithError(writer, failure.NotFound("todo"))

		return
	}

	response.WithJSON(writer, http.StatusOK, todos)
}

func (handler *TodoHandler) DeleteTodo(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	existing, err := handler.todos.List(request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get todos")

		response.WithError(writer, err)

		return
	}
	if !containsID(existing, id, func(t model.Todo) string { return t.ID }) {
		response.WithError(writer, failure.NotFound("todo"))

		return
	}

	todos, err := handler.todos.Remove(request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete todo")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, todos)
}

func (handler *TodoHandler) ClearCompleted(writer http.ResponseWriter, request *http.Request) {
	todos, err := handler.todos.ClearCompleted(request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to clear completed todos")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, todos)
}

func containsID[T any](items []T, id string, idOf func(T) string) bool {
	for _, it := range items {
		if idOf(it) == id {
			return true
		}
	}
	return false
}

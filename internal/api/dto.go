package api

import "github.com/nhle/dashboard/internal/model"

type CreateTodoRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// CreateTodoResponse carries the notification raised for the new todo when
// notifications are enabled.
type CreateTodoResponse struct {
	Todo         model.Todo          `json:"todo"`
	Notification *model.Notification `json:"notification,omitempty"`
}

type CreateNoteRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

type CreateProjectRequest struct {
	Name        string              `json:"name" validate:"required,max=200"`
	Description string              `json:"description" validate:"max=1000"`
	Status      model.ProjectStatus `json:"status" validate:"omitempty,oneof=planning in-progress testing completed on-hold"`
}

type UpdateProjectRequest struct {
	Status model.ProjectStatus `json:"status" validate:"required,oneof=planning in-progress testing completed on-hold"`
}

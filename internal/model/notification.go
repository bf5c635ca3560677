package model

import "time"

// Notification is a transient message raised by a user action, such as
// adding a to-do while notifications are enabled.
type Notification struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskAdded is raised after a todo is created.
func TaskAdded(todo Todo, at time.Time) Notification {
	return Notification{
		Title:     "Task Added",
		Body:      todo.Text,
		CreatedAt: at,
	}
}

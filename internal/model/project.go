package model

import "encoding/json"

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectTesting    ProjectStatus = "testing"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectOnHold     ProjectStatus = "on-hold"
)

// ProjectStatuses lists every status in display order.
var ProjectStatuses = []ProjectStatus{
	ProjectPlanning,
	ProjectInProgress,
	ProjectTesting,
	ProjectCompleted,
	ProjectOnHold,
}

// Valid reports whether s is one of ProjectStatuses.
func (s ProjectStatus) Valid() bool {
	for _, known := range ProjectStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Next returns the status following s, wrapping around.
func (s ProjectStatus) Next() ProjectStatus {
	for i, known := range ProjectStatuses {
		if s == known {
			return ProjectStatuses[(i+1)%len(ProjectStatuses)]
		}
	}
	return ProjectPlanning
}

// Label is the human-readable status name.
func (s ProjectStatus) Label() string {
	switch s {
	case ProjectPlanning:
		return "Planning"
	case ProjectInProgress:
		return "In Progress"
	case ProjectTesting:
		return "Testing"
	case ProjectCompleted:
		return "Completed"
	case ProjectOnHold:
		return "On Hold"
	default:
		return string(s)
	}
}

// ProjectDateLayout formats the creation date shown on a project.
const ProjectDateLayout = "1/2/2006"

// Project is an entry of the projects widget.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	Created     string        `json:"created"`
}

// UnmarshalJSON accepts numeric ids alongside string ones.
func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var aux struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := decodeID(aux.ID)
	if err != nil {
		return err
	}
	*p = Project(aux.plain)
	p.ID = id
	return nil
}

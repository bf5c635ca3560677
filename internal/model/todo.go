package model

import (
	"encoding/json"
	"time"
)

// Todo is a single entry of the to-do widget.
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalJSON accepts numeric ids alongside string ones.
func (t *Todo) UnmarshalJSON(data []byte) error {
	type plain Todo
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
	*t = Todo(aux.plain)
	t.ID = id
	return nil
}

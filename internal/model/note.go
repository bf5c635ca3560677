package model

import "encoding/json"

// NoteTimestampLayout formats the creation time shown on a note.
const NoteTimestampLayout = "1/2/2006, 3:04:05 PM"

// Note is a free-text note. Notes are never edited in place.
type Note struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// UnmarshalJSON accepts numeric ids alongside string ones.
func (n *Note) UnmarshalJSON(data []byte) error {
	type plain Note
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
	*n = Note(aux.plain)
	n.ID = id
	return nil
}

// Package entities defines the domain entities for the mynotes service.
package entities

import "time"

// Note представляет собой личную заметку пользователя.
type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"note"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote creates a new note owned by the given user. Both timestamps are
// set to the same instant; UpdatedAt moves forward on every edit.
func NewNote(userID int64, text string) *Note {
	now := time.Now().UTC()
	return &Note{
		UserID:    userID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

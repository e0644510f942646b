package notes

import (
	"mynotes/internal/mynotes/app"
	"mynotes/internal/mynotes/domain/entities"
)

// noteTimeLayout - формат времени создания заметки для отображения.
const noteTimeLayout = "2 January 2006, 3:04 PM"

// AddNoteRequest - тело запроса на создание заметки.
type AddNoteRequest struct {
	Note string `json:"note"`
}

// AddNoteResponse - ответ на создание заметки. RecordID равен нулю,
// если заметка не была создана; причина приходит в Warnings.
type AddNoteResponse struct {
	RecordID int64         `json:"recordid"`
	Warnings []app.Warning `json:"warnings"`
}

// EditNoteRequest - тело запроса на изменение заметки.
type EditNoteRequest struct {
	Note string `json:"note"`
}

// StatusResponse - ответ операций изменения и удаления.
type StatusResponse struct {
	Status string `json:"status"`
}

// NoteView - заметка в виде, пригодном для отображения.
type NoteView struct {
	ID          int64  `json:"id"`
	Note        string `json:"note"`
	TimeCreated string `json:"timecreated"`
}

// ListNotesResponse - страница заметок с окнами пагинации.
type ListNotesResponse struct {
	Notes      []NoteView `json:"notes"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
	HasMore    bool       `json:"hasmore"`
	NextOffset int        `json:"nextoffset"`
	HasPrev    bool       `json:"hasprev"`
	PrevOffset int        `json:"prevoffset"`
}

// newNoteView преобразует доменную заметку в отображаемую.
func newNoteView(note *entities.Note) NoteView {
	return NoteView{
		ID:          note.ID,
		Note:        note.Text,
		TimeCreated: note.CreatedAt.Format(noteTimeLayout),
	}
}

// Package app implements application business logic for the mynotes service.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mynotes/internal/mynotes/domain/entities"
	domain "mynotes/internal/mynotes/domain/services"
	"mynotes/internal/mynotes/ports/repositories"
)

// Ошибки уровня бизнес-логики.
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNotOwner     = errors.New("note belongs to another user")
	ErrEmptyNote    = errors.New("note text is empty")
)

// SentinelNoteID - зарезервированное значение ID, означающее "заметка не создана".
const SentinelNoteID int64 = 0

// WarningEmptyNote - код предупреждения о пустой заметке.
const WarningEmptyNote = "emptynote"

// Warning описывает некритичную проблему, возникшую при выполнении операции.
type Warning struct {
	Item        string `json:"item"`
	ItemID      int64  `json:"itemid"`
	WarningCode string `json:"warningcode"`
	Message     string `json:"message"`
}

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
	perPage  int
}

// NewNoteUseCase создает новый экземпляр NoteUseCase. perPage задает размер
// страницы списка по умолчанию; неположительное значение заменяется на
// domain.DefaultPerPage.
func NewNoteUseCase(noteRepo repositories.NoteRepository, perPage int) *NoteUseCase {
	if perPage <= 0 {
		perPage = domain.DefaultPerPage
	}
	return &NoteUseCase{
		noteRepo: noteRepo,
		perPage:  perPage,
	}
}

// AddNote создает новую заметку для пользователя.
//
// Пустой после обрезки пробелов текст не является ошибкой: операция
// возвращает SentinelNoteID и предупреждение, ничего не сохраняя.
// Вызывающая сторона обязана проверять ID, а не только ошибку.
func (uc *NoteUseCase) AddNote(ctx context.Context, userID int64, rawText string) (int64, []Warning, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		warning := Warning{
			Item:        "note",
			ItemID:      userID,
			WarningCode: WarningEmptyNote,
			Message:     "cannot add an empty note",
		}
		return SentinelNoteID, []Warning{warning}, nil
	}

	note := entities.NewNote(userID, text)
	noteID, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		return SentinelNoteID, nil, fmt.Errorf("failed to create note: %w", err)
	}

	return noteID, nil, nil
}

// EditNote заменяет текст существующей заметки и обновляет UpdatedAt.
//
// Порядок проверок фиксирован: существование, владение, валидность текста.
// В отличие от AddNote пустой текст здесь жесткая ошибка - правка не должна
// молча уничтожать существующее содержимое.
func (uc *NoteUseCase) EditNote(ctx context.Context, userID, noteID int64, rawText string) error {
	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return ErrNoteNotFound
	}

	if !domain.Owns(userID, note) {
		return ErrNotOwner
	}

	text := strings.TrimSpace(rawText)
	if text == "" {
		return ErrEmptyNote
	}

	if err := uc.noteRepo.Update(ctx, noteID, text, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	return nil
}

// DeleteNote безвозвратно удаляет заметку пользователя.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, userID, noteID int64) error {
	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return ErrNoteNotFound
	}

	if !domain.Owns(userID, note) {
		return ErrNotOwner
	}

	if err := uc.noteRepo.Delete(ctx, noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}

// ListNotes возвращает страницу заметок пользователя, новые первыми,
// и признак наличия следующей страницы. Выборка запрашивает limit+1
// строк; лишняя строка отбрасывается.
func (uc *NoteUseCase) ListNotes(ctx context.Context, userID int64, limit, offset int) ([]*entities.Note, bool, error) {
	limit, offset = domain.NormalizeWindow(limit, offset, uc.perPage)

	notes, err := uc.noteRepo.ListByUserID(ctx, userID, limit+1, offset)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list notes: %w", err)
	}

	hasMore := domain.HasMore(limit, len(notes))
	if hasMore {
		notes = notes[:limit]
	}

	return notes, hasMore, nil
}

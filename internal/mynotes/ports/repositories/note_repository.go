// Package repositories defines repository interfaces for the mynotes service.
package repositories

import (
	"context"
	"time"

	"mynotes/internal/mynotes/domain/entities"
)

// NoteRepository определяет интерфейс для работы с хранилищем заметок.
//
// GetByID намеренно не ограничен владельцем: слою бизнес-логики нужно
// отличать отсутствующую заметку от чужой. GetByID возвращает (nil, nil),
// если заметка не найдена.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (int64, error)
	GetByID(ctx context.Context, noteID int64) (*entities.Note, error)
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entities.Note, error)
	Update(ctx context.Context, noteID int64, text string, updatedAt time.Time) error
	Delete(ctx context.Context, noteID int64) error
}

// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"mynotes/internal/mynotes/domain/entities"
	"mynotes/internal/mynotes/ports/repositories"
	"mynotes/pkg/logger"
)

// Querier - минимальный интерфейс пула соединений, который использует
// репозиторий. Ему удовлетворяют *pgxpool.Pool и pgxmock.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ErrNoteMissing is returned when an update or delete affects no rows.
// The use case checks existence first, so hitting this means the note
// disappeared between the check and the write.
var ErrNoteMissing = errors.New("note does not exist")

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool Querier
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool Querier) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.Int64("userID", note.UserID))

	var noteID int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notes (user_id, note, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		note.UserID, note.Text, note.Status, note.CreatedAt, note.UpdatedAt,
	).Scan(&noteID)

	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return 0, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", noteID))
	return noteID, nil
}

// GetByID получает заметку по ID без фильтра по владельцу.
// Возвращает (nil, nil), если заметки нет.
func (r *NoteRepository) GetByID(ctx context.Context, noteID int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.Int64("noteID", noteID))

	var note entities.Note
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, note, status, created_at, updated_at
         FROM notes
         WHERE id = $1`,
		noteID,
	).Scan(&note.ID, &note.UserID, &note.Text, &note.Status, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("noteID", noteID))
			return nil, nil
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// ListByUserID получает список заметок пользователя с пагинацией.
// Сортировка: новые первыми, при равном created_at больший id первым,
// чтобы порядок был детерминированным.
func (r *NoteRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListByUserID"))
	log.Debug(ctx, "listing notes", zap.Int64("userID", userID), zap.Int("limit", limit), zap.Int("offset", offset))

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, note, status, created_at, updated_at
         FROM notes
         WHERE user_id = $1
         ORDER BY created_at DESC, id DESC
         LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		err := rows.Scan(&note.ID, &note.UserID, &note.Text, &note.Status, &note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// Update перезаписывает текст заметки и время обновления.
func (r *NoteRepository) Update(ctx context.Context, noteID int64, text string, updatedAt time.Time) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.Int64("noteID", noteID))

	result, err := r.pool.Exec(ctx,
		`UPDATE notes SET note = $1, updated_at = $2 WHERE id = $3`,
		text, updatedAt, noteID,
	)
	if err != nil {
		log.Error(ctx, "failed to update note", zap.Error(err))
		return fmt.Errorf("failed to update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note does not exist", zap.Int64("noteID", noteID))
		return ErrNoteMissing
	}

	return nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, noteID int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.Int64("noteID", noteID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1`,
		noteID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note does not exist", zap.Int64("noteID", noteID))
		return ErrNoteMissing
	}

	return nil
}

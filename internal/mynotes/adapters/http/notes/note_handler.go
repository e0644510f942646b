// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"mynotes/internal/mynotes/adapters/http/middleware"
	"mynotes/internal/mynotes/app"
	"mynotes/internal/mynotes/domain/entities"
	domain "mynotes/internal/mynotes/domain/services"
	"mynotes/internal/mynotes/ports/cache"
	"mynotes/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerAddNote    = "handling add note request"
	LogHandlerEditNote   = "handling edit note request"
	LogHandlerDeleteNote = "handling delete note request"
	LogHandlerListNotes  = "handling list notes request"

	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgInvalidPagination  = "invalid pagination parameters"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgNoPrincipal        = "no authenticated user in request"
)

// StatusSuccess - значение поля status успешного ответа.
const StatusSuccess = "success"

// NoteUseCase - операции бизнес-логики, которые использует обработчик.
type NoteUseCase interface {
	AddNote(ctx context.Context, userID int64, rawText string) (int64, []app.Warning, error)
	EditNote(ctx context.Context, userID, noteID int64, rawText string) error
	DeleteNote(ctx context.Context, userID, noteID int64) error
	ListNotes(ctx context.Context, userID int64, limit, offset int) ([]*entities.Note, bool, error)
}

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	useCase NoteUseCase
	cache   cache.Cache
	perPage int
}

// NewHandler создает новый экземпляр обработчика заметок. perPage - размер
// страницы списка, когда клиент не передал limit.
func NewHandler(useCase NoteUseCase, listCache cache.Cache, perPage int) *Handler {
	return &Handler{
		useCase: useCase,
		cache:   listCache,
		perPage: perPage,
	}
}

// AddNote обрабатывает запрос на создание новой заметки.
func (h *Handler) AddNote(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.AddNote"))
	log.Debug(userCtx, LogHandlerAddNote)

	userID, ok := ctx.Locals(middleware.UserIDKey).(int64)
	if !ok {
		log.Error(userCtx, ErrMsgNoPrincipal)
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrMsgNoPrincipal,
		})
	}

	var req AddNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		})
	}

	noteID, warnings, err := h.useCase.AddNote(userCtx, userID, req.Note)
	if err != nil {
		log.Error(userCtx, "failed to add note", zap.Error(err))
		return handleError(ctx, err)
	}

	if noteID != app.SentinelNoteID {
		h.invalidateListCache(userCtx, userID)
	}

	if warnings == nil {
		warnings = []app.Warning{}
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(AddNoteResponse{
		RecordID: noteID,
		Warnings: warnings,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// EditNote обрабатывает запрос на изменение текста заметки.
func (h *Handler) EditNote(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.EditNote"))
	log.Debug(userCtx, LogHandlerEditNote)

	userID, ok := ctx.Locals(middleware.UserIDKey).(int64)
	if !ok {
		log.Error(userCtx, ErrMsgNoPrincipal)
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrMsgNoPrincipal,
		})
	}

	noteID, err := parseNoteID(ctx)
	if err != nil {
		log.Error(userCtx, ErrMsgInvalidNoteID, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidNoteID,
		})
	}

	var req EditNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		})
	}

	if err := h.useCase.EditNote(userCtx, userID, noteID, req.Note); err != nil {
		log.Error(userCtx, "failed to edit note", zap.Error(err))
		return handleError(ctx, err)
	}

	h.invalidateListCache(userCtx, userID)

	if err := ctx.JSON(StatusResponse{Status: StatusSuccess}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote обрабатывает запрос на удаление заметки.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(userCtx, LogHandlerDeleteNote)

	userID, ok := ctx.Locals(middleware.UserIDKey).(int64)
	if !ok {
		log.Error(userCtx, ErrMsgNoPrincipal)
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrMsgNoPrincipal,
		})
	}

	noteID, err := parseNoteID(ctx)
	if err != nil {
		log.Error(userCtx, ErrMsgInvalidNoteID, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidNoteID,
		})
	}

	if err := h.useCase.DeleteNote(userCtx, userID, noteID); err != nil {
		log.Error(userCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err)
	}

	h.invalidateListCache(userCtx, userID)

	if err := ctx.JSON(StatusResponse{Status: StatusSuccess}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListNotes обрабатывает запрос на получение страницы заметок.
// Готовые страницы кэшируются; любая мутация пользователя поднимает
// версию его списка, так что устаревшие страницы не отдаются.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(userCtx, LogHandlerListNotes)

	userID, ok := ctx.Locals(middleware.UserIDKey).(int64)
	if !ok {
		log.Error(userCtx, ErrMsgNoPrincipal)
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrMsgNoPrincipal,
		})
	}

	limit, err := strconv.Atoi(ctx.Query("limit", "0"))
	if err != nil {
		log.Error(userCtx, ErrMsgInvalidPagination, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidPagination,
		})
	}

	offset, err := strconv.Atoi(ctx.Query("offset", "0"))
	if err != nil {
		log.Error(userCtx, ErrMsgInvalidPagination, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidPagination,
		})
	}

	limit, offset = domain.NormalizeWindow(limit, offset, h.perPage)

	cacheKey := h.listCacheKey(userCtx, userID, limit, offset)
	if cacheKey != "" {
		if cached, err := h.cache.Get(userCtx, cacheKey); err == nil && cached != "" {
			log.Debug(userCtx, "serving notes list from cache")
			ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			if err := ctx.SendString(cached); err != nil {
				return fmt.Errorf("error sending cached response: %w", err)
			}
			return nil
		}
	}

	listed, hasMore, err := h.useCase.ListNotes(userCtx, userID, limit, offset)
	if err != nil {
		log.Error(userCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err)
	}

	views := make([]NoteView, 0, len(listed))
	for _, note := range listed {
		views = append(views, newNoteView(note))
	}

	resp := ListNotesResponse{
		Notes:      views,
		Limit:      limit,
		Offset:     offset,
		HasMore:    hasMore,
		NextOffset: domain.NextOffset(offset, limit),
		HasPrev:    domain.HasPrev(offset),
		PrevOffset: domain.PrevOffset(offset, limit),
	}

	if cacheKey != "" {
		if payload, err := json.Marshal(resp); err == nil {
			if err := h.cache.Set(userCtx, cacheKey, string(payload), 0); err != nil {
				log.Warn(userCtx, "failed to cache notes list", zap.Error(err))
			}
		}
	}

	if err := ctx.JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// listCacheKey строит версионированный ключ страницы списка.
// Пустая строка означает, что кэш для этого запроса недоступен.
func (h *Handler) listCacheKey(ctx context.Context, userID int64, limit, offset int) string {
	version, err := h.cache.Get(ctx, listVersionKey(userID))
	if err != nil {
		return ""
	}
	if version == "" {
		version = "0"
	}
	return fmt.Sprintf("mynotes:notes:%d:v%s:%d:%d", userID, version, limit, offset)
}

// invalidateListCache поднимает версию списка пользователя после мутации.
func (h *Handler) invalidateListCache(ctx context.Context, userID int64) {
	if _, err := h.cache.Increment(ctx, listVersionKey(userID)); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to invalidate notes list cache", zap.Error(err))
	}
}

func listVersionKey(userID int64) string {
	return fmt.Sprintf("mynotes:notes:%d:version", userID)
}

// parseNoteID извлекает ID заметки из параметров пути.
func parseNoteID(ctx fiber.Ctx) (int64, error) {
	noteID, err := strconv.ParseInt(ctx.Params("note_id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing note id: %w", err)
	}
	return noteID, nil
}

// handleError преобразует ошибки бизнес-логики в HTTP статусы.
// Чужая заметка намеренно отдается как 403, а не 404: текущее поведение
// раскрывает существование заметки, и менять его нужно осознанно.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, app.ErrNoteNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": app.ErrNoteNotFound.Error(),
		})
	case errors.Is(err, app.ErrNotOwner):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": app.ErrNotOwner.Error(),
		})
	case errors.Is(err, app.ErrEmptyNote):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": app.ErrEmptyNote.Error(),
		})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}

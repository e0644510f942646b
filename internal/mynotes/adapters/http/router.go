// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"mynotes/internal/mynotes/adapters/http/middleware"
	"mynotes/internal/mynotes/adapters/http/notes"
	"mynotes/internal/mynotes/ports/cache"
	"mynotes/internal/mynotes/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, useCase notes.NoteUseCase, tokens services.TokenService, listCache cache.Cache, perPage int) {
	notesHandler := notes.NewHandler(useCase, listCache, perPage)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Маршруты заметок (требуют авторизации).
	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Use(middleware.NewAuthMiddleware(tokens))
	notesRoutes.Post("/", notesHandler.AddNote)
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Patch("/:note_id", notesHandler.EditNote)
	notesRoutes.Put("/:note_id", notesHandler.EditNote)
	notesRoutes.Delete("/:note_id", notesHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "route not found",
		})
	})
}

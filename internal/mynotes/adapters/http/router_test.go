package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpServer "mynotes/internal/mynotes/adapters/http"
	"mynotes/internal/mynotes/adapters/services"
	"mynotes/internal/mynotes/app"
	"mynotes/internal/mynotes/domain/entities"
	"mynotes/pkg/logger"
)

const testSecretKey = "test-secret-key-12345"

type mockNoteUseCase struct {
	mock.Mock
}

func (m *mockNoteUseCase) AddNote(ctx context.Context, userID int64, rawText string) (int64, []app.Warning, error) {
	args := m.Called(ctx, userID, rawText)
	warnings, _ := args.Get(1).([]app.Warning)
	return args.Get(0).(int64), warnings, args.Error(2)
}

func (m *mockNoteUseCase) EditNote(ctx context.Context, userID, noteID int64, rawText string) error {
	return m.Called(ctx, userID, noteID, rawText).Error(0)
}

func (m *mockNoteUseCase) DeleteNote(ctx context.Context, userID, noteID int64) error {
	return m.Called(ctx, userID, noteID).Error(0)
}

func (m *mockNoteUseCase) ListNotes(ctx context.Context, userID int64, limit, offset int) ([]*entities.Note, bool, error) {
	args := m.Called(ctx, userID, limit, offset)
	notes, _ := args.Get(0).([]*entities.Note)
	return notes, args.Bool(1), args.Error(2)
}

// memoryCache - кэш в памяти для тестов маршрутизатора.
type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]string)}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.values, key)
	}
	return nil
}

func (c *memoryCache) Increment(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var current int64
	if raw, ok := c.values[key]; ok {
		if _, err := fmt.Sscanf(raw, "%d", &current); err != nil {
			return 0, fmt.Errorf("not an integer: %w", err)
		}
	}
	current++
	c.values[key] = fmt.Sprintf("%d", current)
	return current, nil
}

func (c *memoryCache) Close() error { return nil }

func setupTestApp(t *testing.T, useCase *mockNoteUseCase) (*fiber.App, *memoryCache) {
	t.Helper()

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "error"))

	fiberApp := fiber.New()
	listCache := newMemoryCache()
	tokenService := services.NewJWT(testSecretKey)

	httpServer.SetupRouter(fiberApp, useCase, tokenService, listCache, 5)

	return fiberApp, listCache
}

func signTestToken(t *testing.T, userID int64) string {
	t.Helper()

	claims := &services.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecretKey))
	require.NoError(t, err)

	return tokenString
}

func doRequest(t *testing.T, fiberApp *fiber.App, method, target, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := fiberApp.Test(req)
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBody
}

func TestRouter_Authorization(t *testing.T) {
	useCase := new(mockNoteUseCase)
	fiberApp, _ := setupTestApp(t, useCase)

	t.Run("request without token is rejected", func(t *testing.T) {
		status, _ := doRequest(t, fiberApp, fiber.MethodGet, "/api/v1/notes/", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run("request with garbage token is rejected", func(t *testing.T) {
		status, _ := doRequest(t, fiberApp, fiber.MethodGet, "/api/v1/notes/", "garbage.token.value", nil)
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run("unknown route yields not found", func(t *testing.T) {
		status, _ := doRequest(t, fiberApp, fiber.MethodGet, "/api/v2/unknown", "", nil)
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestRouter_AddNote(t *testing.T) {
	const userID = int64(42)
	token := signTestToken(t, userID)

	t.Run("creates a note and returns its id", func(t *testing.T) {
		useCase := new(mockNoteUseCase)
		useCase.On("AddNote", mock.Anything, userID, "Hello").
			Return(int64(7), []app.Warning(nil), nil).Once()

		fiberApp, listCache := setupTestApp(t, useCase)

		status, body := doRequest(t, fiberApp, fiber.MethodPost, "/api/v1/notes/", token,
			map[string]string{"note": "Hello"})

		assert.Equal(t, fiber.StatusCreated, status)

		var resp struct {
			RecordID int64         `json:"recordid"`
			Warnings []app.Warning `json:"warnings"`
		}
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, int64(7), resp.RecordID)
		assert.NotNil(t, resp.Warnings)
		assert.Empty(t, resp.Warnings)

		version, err := listCache.Get(context.Background(), "mynotes:notes:42:version")
		require.NoError(t, err)
		assert.Equal(t, "1", version, "a successful add must invalidate the list cache")

		useCase.AssertExpectations(t)
	})

	t.Run("empty note returns sentinel id with warning", func(t *testing.T) {
		useCase := new(mockNoteUseCase)
		useCase.On("AddNote", mock.Anything, userID, "   ").
			Return(app.SentinelNoteID, []app.Warning{{
				Item:        "note",
				ItemID:      userID,
				WarningCode: app.WarningEmptyNote,
				Message:     "note text is empty",
			}}, nil).Once()

		fiberApp, listCache := setupTestApp(t, useCase)

		status, body := doRequest(t, fiberApp, fiber.MethodPost, "/api/v1/notes/", token,
			map[string]string{"note": "   "})

		assert.Equal(t, fiber.StatusCreated, status)

		var resp struct {
			RecordID int64         `json:"recordid"`
			Warnings []app.Warning `json:"warnings"`
		}
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, app.SentinelNoteID, resp.RecordID)
		require.Len(t, resp.Warnings, 1)
		assert.Equal(t, app.WarningEmptyNote, resp.Warnings[0].WarningCode)

		version, err := listCache.Get(context.Background(), "mynotes:notes:42:version")
		require.NoError(t, err)
		assert.Empty(t, version, "a rejected add must not invalidate the list cache")
	})
}

func TestRouter_EditNote(t *testing.T) {
	const userID = int64(42)
	token := signTestToken(t, userID)

	t.Run("successful edit reports success", func(t *testing.T) {
		useCase := new(mockNoteUseCase)
		useCase.On("EditNote", mock.Anything, userID, int64(100), "updated").Return(nil).Once()

		fiberApp, _ := setupTestApp(t, useCase)

		status, body := doRequest(t, fiberApp, fiber.MethodPatch, "/api/v1/notes/100", token,
			map[string]string{"note": "updated"})

		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{"status":"success"}`, string(body))
		useCase.AssertExpectations(t)
	})

	t.Run("missing note maps to 404", func(t *testing.T) {
		useCase := new(mockNoteUseCase)
		useCase.On("EditNote", mock.Anything, userID, int64(100), "updated").
			Return(app.ErrNoteNotFound).Once()

		fiberApp, _ := setupTestApp(t, useCase)

		status, _ := doRequest(t, fiberApp, fiber.MethodPatch, "/api/v1/notes/100", token,
			map[string]string{"note": "updated"})

		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("foreign note maps to 403", func(t *testing.T) {
		useCase := new(mockNoteUseCase)
		useCase.On("EditNote", mock.Anything, userID, int64(100), "updated").
			Return(app.ErrNotOwner).Once()

		fiberApp, _ := setupTestApp(t, useCase)

		status, _ := doRequest(t, fiberApp, fiber.MethodPatch, "/api/v1/notes/100", token,
			map[string]string{"note": "updated"})

		assert.Equal(t, fiber.StatusForbidden, status)
	})

	t.Run("empty replacement text maps to 400", func(t *testing.T) {
		useCase := new(mockNoteUseCase)
		useCase.On("EditNote", mock.Anything, userID, int64(100), "  ").
			Return(app.ErrEmptyNote).Once()

		fiberApp, _ := setupTestApp(t, useCase)

		status, _ := doRequest(t, fiberApp, fiber.MethodPatch, "/api/v1/notes/100", token,
			map[string]string{"note": "  "})

		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("non-numeric note id maps to 400", func(t *testing.T) {
		useCase := new(mockNoteUseCase)
		fiberApp, _ := setupTestApp(t, useCase)

		status, _ := doRequest(t, fiberApp, fiber.MethodPatch, "/api/v1/notes/abc", token,
			map[string]string{"note": "updated"})

		assert.Equal(t, fiber.StatusBadRequest, status)
		useCase.AssertNotCalled(t, "EditNote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unexpected error maps to 500", func(t *testing.T) {
		useCase := new(mockNoteUseCase)
		useCase.On("EditNote", mock.Anything, userID, int64(100), "updated").
			Return(errors.New("connection reset")).Once()

		fiberApp, _ := setupTestApp(t, useCase)

		status, _ := doRequest(t, fiberApp, fiber.MethodPatch, "/api/v1/notes/100", token,
			map[string]string{"note": "updated"})

		assert.Equal(t, fiber.StatusInternalServerError, status)
	})
}

func TestRouter_DeleteNote(t *testing.T) {
	const userID = int64(42)
	token := signTestToken(t, userID)

	t.Run("successful delete reports success", func(t *testing.T) {
		useCase := new(mockNoteUseCase)
		useCase.On("DeleteNote", mock.Anything, userID, int64(100)).Return(nil).Once()

		fiberApp, listCache := setupTestApp(t, useCase)

		status, body := doRequest(t, fiberApp, fiber.MethodDelete, "/api/v1/notes/100", token, nil)

		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{"status":"success"}`, string(body))

		version, err := listCache.Get(context.Background(), "mynotes:notes:42:version")
		require.NoError(t, err)
		assert.Equal(t, "1", version)
	})

	t.Run("missing note maps to 404", func(t *testing.T) {
		useCase := new(mockNoteUseCase)
		useCase.On("DeleteNote", mock.Anything, userID, int64(100)).
			Return(app.ErrNoteNotFound).Once()

		fiberApp, _ := setupTestApp(t, useCase)

		status, _ := doRequest(t, fiberApp, fiber.MethodDelete, "/api/v1/notes/100", token, nil)

		assert.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestRouter_ListNotes(t *testing.T) {
	const userID = int64(42)
	token := signTestToken(t, userID)

	created := time.Date(2025, time.March, 2, 15, 4, 0, 0, time.UTC)

	t.Run("returns a page with pagination windows", func(t *testing.T) {
		useCase := new(mockNoteUseCase)
		useCase.On("ListNotes", mock.Anything, userID, 5, 0).
			Return([]*entities.Note{
				{ID: 2, UserID: userID, Text: "second", CreatedAt: created},
				{ID: 1, UserID: userID, Text: "first", CreatedAt: created.Add(-time.Hour)},
			}, true, nil).Once()

		fiberApp, _ := setupTestApp(t, useCase)

		status, body := doRequest(t, fiberApp, fiber.MethodGet, "/api/v1/notes/", token, nil)

		assert.Equal(t, fiber.StatusOK, status)

		var resp struct {
			Notes []struct {
				ID          int64  `json:"id"`
				Note        string `json:"note"`
				TimeCreated string `json:"timecreated"`
			} `json:"notes"`
			Limit      int  `json:"limit"`
			Offset     int  `json:"offset"`
			HasMore    bool `json:"hasmore"`
			NextOffset int  `json:"nextoffset"`
			HasPrev    bool `json:"hasprev"`
			PrevOffset int  `json:"prevoffset"`
		}
		require.NoError(t, json.Unmarshal(body, &resp))

		require.Len(t, resp.Notes, 2)
		assert.Equal(t, int64(2), resp.Notes[0].ID)
		assert.Equal(t, "2 March 2025, 3:04 PM", resp.Notes[0].TimeCreated)
		assert.Equal(t, 5, resp.Limit)
		assert.Equal(t, 0, resp.Offset)
		assert.True(t, resp.HasMore)
		assert.Equal(t, 5, resp.NextOffset)
		assert.False(t, resp.HasPrev)
		assert.Equal(t, 0, resp.PrevOffset)

		useCase.AssertExpectations(t)
	})

	t.Run("second page exposes prev window", func(t *testing.T) {
		useCase := new(mockNoteUseCase)
		useCase.On("ListNotes", mock.Anything, userID, 5, 5).
			Return([]*entities.Note{
				{ID: 1, UserID: userID, Text: "first", CreatedAt: created},
			}, false, nil).Once()

		fiberApp, _ := setupTestApp(t, useCase)

		status, body := doRequest(t, fiberApp, fiber.MethodGet, "/api/v1/notes/?limit=5&offset=5", token, nil)

		assert.Equal(t, fiber.StatusOK, status)

		var resp struct {
			HasMore    bool `json:"hasmore"`
			HasPrev    bool `json:"hasprev"`
			PrevOffset int  `json:"prevoffset"`
		}
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.False(t, resp.HasMore)
		assert.True(t, resp.HasPrev)
		assert.Equal(t, 0, resp.PrevOffset)
	})

	t.Run("repeated request is served from cache", func(t *testing.T) {
		useCase := new(mockNoteUseCase)
		useCase.On("ListNotes", mock.Anything, userID, 5, 0).
			Return([]*entities.Note{
				{ID: 1, UserID: userID, Text: "first", CreatedAt: created},
			}, false, nil).Once()

		fiberApp, _ := setupTestApp(t, useCase)

		firstStatus, firstBody := doRequest(t, fiberApp, fiber.MethodGet, "/api/v1/notes/", token, nil)
		secondStatus, secondBody := doRequest(t, fiberApp, fiber.MethodGet, "/api/v1/notes/", token, nil)

		assert.Equal(t, fiber.StatusOK, firstStatus)
		assert.Equal(t, fiber.StatusOK, secondStatus)
		assert.JSONEq(t, string(firstBody), string(secondBody))

		useCase.AssertNumberOfCalls(t, "ListNotes", 1)
	})

	t.Run("non-numeric limit maps to 400", func(t *testing.T) {
		useCase := new(mockNoteUseCase)
		fiberApp, _ := setupTestApp(t, useCase)

		status, _ := doRequest(t, fiberApp, fiber.MethodGet, "/api/v1/notes/?limit=abc", token, nil)

		assert.Equal(t, fiber.StatusBadRequest, status)
		useCase.AssertNotCalled(t, "ListNotes", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// Package services defines service interfaces for the mynotes service.
package services

import (
	"context"
	"errors"
)

// Ошибки проверки токенов.
var (
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrExpiredJWTToken = errors.New("jwt token has expired")
)

// TokenService определяет интерфейс для проверки access токенов.
type TokenService interface {
	// ValidateAccessToken проверяет токен и возвращает ID пользователя.
	ValidateAccessToken(ctx context.Context, token string) (int64, error)
}

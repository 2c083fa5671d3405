package services

import "errors"

// Сентинельные ошибки сервисов. Хендлеры переводят их в HTTP-статусы,
// внутренние детали наружу не уходят.
var (
	ErrValidation         = errors.New("missing or invalid fields")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrNotVerified        = errors.New("account not verified")
	ErrUserNotFound       = errors.New("user not found")

	// ErrInvalidToken — одна ошибка на "не найден / использован / просрочен",
	// чтобы не давать оракула по состоянию токена.
	ErrInvalidToken = errors.New("invalid or expired token")
)

package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"livescore/internal/models"
	"livescore/internal/repositories"
	"livescore/internal/utils"
)

// ResetTTL заметно короче верификационного: окно сброса пароля — 15 минут.
const ResetTTL = 15 * time.Minute

type PasswordResetService interface {
	// Request — generic-успех независимо от существования email.
	// Возвращённый токен хендлер отдаёт в ответе только в dev-режиме почты.
	Request(email string) (string, error)

	// Reset — атомарно гасит токен, меняет пароль и возвращает пользователя
	// для выдачи новой сессии.
	Reset(token, newPassword string) (*models.User, error)
}

type passwordResetService struct {
	userRepo repositories.UserRepository
	tokens   repositories.TokenRepository
	emails   EmailService
	auth     AuthService
	baseURL  string
}

func NewPasswordResetService(userRepo repositories.UserRepository, tokens repositories.TokenRepository, emails EmailService, auth AuthService, publicBaseURL string) PasswordResetService {
	return &passwordResetService{
		userRepo: userRepo,
		tokens:   tokens,
		emails:   emails,
		auth:     auth,
		baseURL:  strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *passwordResetService) Request(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrValidation
	}
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		// не раскрываем существование
		log.Printf("[password-reset][request] no-op for %q", email)
		return "", nil
	}

	token, err := utils.NewSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("reset token: %w", err)
	}
	if err := s.tokens.Create(user.ID, token, time.Now().Add(ResetTTL)); err != nil {
		return "", err
	}

	resetURL := fmt.Sprintf("%s/reset?token=%s", s.baseURL, token)
	if err := s.emails.SendPasswordResetEmail(user.Email, resetURL); err != nil {
		log.Printf("[password-reset][request] warning: email for %s failed: %v", user.Email, err)
	}
	return token, nil
}

func (s *passwordResetService) Reset(token, newPassword string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" || newPassword == "" {
		return nil, ErrValidation
	}

	// Сначала атомарное погашение: из двух конкурентных запросов с одним
	// токеном выиграет ровно один, второй получит ErrInvalidToken.
	userID, ok, err := s.tokens.Consume(token, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidToken
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdatePassword(userID, hash); err != nil {
		return nil, fmt.Errorf("reset password: %w", err)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	log.Printf("[password-reset][reset] password replaced for userID=%d", userID)
	return user, nil
}

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

// VerificationTTL — срок жизни токена верификации почты.
const VerificationTTL = 24 * time.Hour

type VerificationService interface {
	// SendForUser — новый токен + письмо со ссылкой (каждый запрос — новая строка).
	SendForUser(user *models.User) error

	// Request — повторная отправка по email. Всегда generic-успех:
	// существование и состояние аккаунта не раскрываем.
	Request(email string) error

	// Confirm — погасить токен и отметить пользователя верифицированным.
	Confirm(token string) error
}

type verificationService struct {
	userRepo repositories.UserRepository
	tokens   repositories.TokenRepository
	emails   EmailService
	baseURL  string
}

func NewVerificationService(userRepo repositories.UserRepository, tokens repositories.TokenRepository, emails EmailService, publicBaseURL string) VerificationService {
	return &verificationService{
		userRepo: userRepo,
		tokens:   tokens,
		emails:   emails,
		baseURL:  strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *verificationService) SendForUser(user *models.User) error {
	token, err := utils.NewSecureToken(32)
	if err != nil {
		return fmt.Errorf("verification token: %w", err)
	}
	if err := s.tokens.Create(user.ID, token, time.Now().Add(VerificationTTL)); err != nil {
		return err
	}
	verifyURL := fmt.Sprintf("%s/verify?token=%s", s.baseURL, token)
	return s.emails.SendVerificationEmail(user.Email, user.Name, verifyURL)
}

func (s *verificationService) Request(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrValidation
	}
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil || user.IsVerified {
		// не раскрываем ни существование, ни состояние
		log.Printf("[verify][request] no-op for %q", email)
		return nil
	}
	if err := s.SendForUser(user); err != nil {
		log.Printf("[verify][request] warning: email for %s failed: %v", user.Email, err)
	}
	return nil
}

func (s *verificationService) Confirm(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidToken
	}
	userID, ok, err := s.tokens.Consume(token, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidToken
	}
	if err := s.userRepo.MarkVerified(userID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	log.Printf("[verify][confirm] userID=%d verified", userID)
	return nil
}

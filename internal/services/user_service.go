package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"livescore/internal/authz"
	"livescore/internal/models"
	"livescore/internal/repositories"
)

type UserService interface {
	// Register — создаёт пользователя (is_verified = FALSE) и отправляет
	// письмо верификации (best-effort). Сессию выдаёт хендлер.
	Register(name, email, password string) (*models.User, error)
	Login(email, password string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)

	// админские операции
	ListUsers() ([]*models.AdminUserRow, error)
	AdminResetPassword(userID int, newPassword string) error
}

type userService struct {
	repo          repositories.UserRepository
	auth          AuthService
	verifications VerificationService
}

func NewUserService(repo repositories.UserRepository, auth AuthService, verifications VerificationService) UserService {
	return &userService{
		repo:          repo,
		auth:          auth,
		verifications: verifications,
	}
}

func (s *userService) Register(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrValidation
	}

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         authz.RoleUser,
		IsVerified:   false,
	}
	if err := s.repo.Create(user); err != nil {
		// гонка двух регистраций на один email решается уникальным индексом
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// письмо не должно ронять регистрацию
	if err := s.verifications.SendForUser(user); err != nil {
		log.Printf("[users][register] warning: verification email for %s failed: %v", user.Email, err)
	}
	return user, nil
}

func (s *userService) Login(email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrValidation
	}
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	// одинаковый ответ для "нет пользователя" и "не тот пароль"
	if user == nil || !s.auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, ErrNotVerified
	}
	return user, nil
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(strings.TrimSpace(email))
}

func (s *userService) ListUsers() ([]*models.AdminUserRow, error) {
	return s.repo.List()
}

func (s *userService) AdminResetPassword(userID int, newPassword string) error {
	if userID <= 0 || len(newPassword) < 6 {
		return ErrValidation
	}
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(userID, hash); err != nil {
		return fmt.Errorf("admin reset password: %w", err)
	}
	log.Printf("[admin][reset-password] password replaced for userID=%d", userID)
	return nil
}

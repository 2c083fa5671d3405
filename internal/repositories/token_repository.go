package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"livescore/internal/models"
)

// TokenRepository — хранилище одноразовых токенов (верификация почты и
// сброс пароля — одинаковые таблицы, разные TTL на стороне сервиса).
type TokenRepository interface {
	Create(userID int, token string, expiresAt time.Time) error
	GetByToken(token string) (*models.OneTimeToken, error)

	// Consume — атомарное погашение: UPDATE с условием used = FALSE и
	// expires_at > now, возвращает user_id. ok=false — токен не найден,
	// уже использован или просрочен (без уточнения, какой из случаев).
	// Единственный путь погашения токена: гонка двух конкурентных
	// запросов решается на уровне БД, второй UPDATE не находит строку.
	Consume(token string, now time.Time) (userID int, ok bool, err error)
}

type tokenRepository struct {
	DB    *sql.DB
	table string
}

func NewEmailVerificationRepository(db *sql.DB) TokenRepository {
	return &tokenRepository{DB: db, table: "email_verifications"}
}

func NewPasswordResetRepository(db *sql.DB) TokenRepository {
	return &tokenRepository{DB: db, table: "password_resets"}
}

func (r *tokenRepository) Create(userID int, token string, expiresAt time.Time) error {
	q := fmt.Sprintf(`
		INSERT INTO %s (user_id, token, expires_at, used, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
	`, r.table)
	if _, err := r.DB.Exec(q, userID, token, expiresAt, time.Now()); err != nil {
		return fmt.Errorf("%s create: %w", r.table, err)
	}
	return nil
}

func (r *tokenRepository) GetByToken(token string) (*models.OneTimeToken, error) {
	q := fmt.Sprintf(`
		SELECT id, user_id, token, expires_at, used, created_at
		FROM %s
		WHERE token = $1
	`, r.table)
	t := &models.OneTimeToken{}
	err := r.DB.QueryRow(q, token).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s get: %w", r.table, err)
	}
	return t, nil
}

func (r *tokenRepository) Consume(token string, now time.Time) (int, bool, error) {
	q := fmt.Sprintf(`
		UPDATE %s
		SET used = TRUE
		WHERE token = $1 AND used = FALSE AND expires_at > $2
		RETURNING user_id
	`, r.table)
	var userID int
	err := r.DB.QueryRow(q, token, now).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%s consume: %w", r.table, err)
	}
	return userID, true, nil
}

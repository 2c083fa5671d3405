package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"livescore/internal/models"
)

// ErrDuplicateEmail — нарушение уникальности email на вставке.
var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List() ([]*models.AdminUserRow, error)
	UpdatePassword(userID int, passwordHash string) error
	MarkVerified(userID int) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (name, email, password_hash, role, is_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	err := r.DB.QueryRow(q,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsVerified,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `
		SELECT id, name, email, password_hash, role, is_verified, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, name, email, password_hash, role, is_verified, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.DB.QueryRow(q, email))
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsVerified, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	return u, nil
}

func (r *userRepository) List() ([]*models.AdminUserRow, error) {
	const q = `
		SELECT id, name, email, role, is_verified, created_at, password_hash
		FROM users
		ORDER BY id
	`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}
	defer rows.Close()

	var out []*models.AdminUserRow
	for rows.Next() {
		u := &models.AdminUserRow{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.IsVerified, &u.CreatedAt, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("user list scan: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	const q = `UPDATE users SET password_hash = $1 WHERE id = $2`
	res, err := r.DB.Exec(q, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("user update password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *userRepository) MarkVerified(userID int) error {
	const q = `UPDATE users SET is_verified = TRUE WHERE id = $1`
	res, err := r.DB.Exec(q, userID)
	if err != nil {
		return fmt.Errorf("user mark verified: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	// sqlite в тестах
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Package testutil — фейки репозиториев и почты для тестов сервисов
// и хендлеров. Поведение повторяет контракт SQL-реализаций, включая
// атомарное погашение одноразовых токенов.
package testutil

import (
	"database/sql"
	"sort"
	"sync"
	"time"

	"livescore/internal/models"
	"livescore/internal/repositories"
)

type FakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[int]*models.User
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{users: make(map[int]*models.User)}
}

func (r *FakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	r.seq++
	user.ID = r.seq
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *FakeUserRepo) GetByID(id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *FakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *FakeUserRepo) List() ([]*models.AdminUserRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*models.AdminUserRow, 0, len(ids))
	for _, id := range ids {
		u := r.users[id]
		out = append(out, &models.AdminUserRow{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			Role:         u.Role,
			IsVerified:   u.IsVerified,
			CreatedAt:    u.CreatedAt,
			PasswordHash: u.PasswordHash,
		})
	}
	return out, nil
}

func (r *FakeUserRepo) UpdatePassword(userID int, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *FakeUserRepo) MarkVerified(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.IsVerified = true
	return nil
}

type FakeTokenRepo struct {
	mu   sync.Mutex
	seq  int
	rows map[string]*models.OneTimeToken
}

func NewFakeTokenRepo() *FakeTokenRepo {
	return &FakeTokenRepo{rows: make(map[string]*models.OneTimeToken)}
}

func (r *FakeTokenRepo) Create(userID int, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.rows[token] = &models.OneTimeToken{
		ID:        r.seq,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *FakeTokenRepo) GetByToken(token string) (*models.OneTimeToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[token]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

// Consume — проверка и отметка used под одним замком, как условный
// UPDATE в SQL-реализации.
func (r *FakeTokenRepo) Consume(token string, now time.Time) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[token]
	if !ok || t.Used || !t.ExpiresAt.After(now) {
		return 0, false, nil
	}
	t.Used = true
	return t.UserID, true, nil
}

// Expire — форсируем истечение срока для тестов.
func (r *FakeTokenRepo) Expire(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.rows[token]; ok {
		t.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

// LastToken — последний созданный токен (для сценариев регистрации,
// где значение токена знает только письмо).
func (r *FakeTokenRepo) LastToken() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var last *models.OneTimeToken
	for _, t := range r.rows {
		if last == nil || t.ID > last.ID {
			last = t
		}
	}
	if last == nil {
		return ""
	}
	return last.Token
}

type SentMail struct {
	To  string
	URL string
}

// FakeEmailSender — запоминает отправленные письма; может имитировать
// настроенный SMTP и сбои доставки.
type FakeEmailSender struct {
	mu            sync.Mutex
	Configured    bool
	FailAll       bool
	Verifications []SentMail
	Resets        []SentMail
}

func (s *FakeEmailSender) Enabled() bool { return s.Configured }

func (s *FakeEmailSender) SendVerificationEmail(to, name, verifyURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAll {
		return errFailAll
	}
	s.Verifications = append(s.Verifications, SentMail{To: to, URL: verifyURL})
	return nil
}

func (s *FakeEmailSender) SendPasswordResetEmail(to, resetURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAll {
		return errFailAll
	}
	s.Resets = append(s.Resets, SentMail{To: to, URL: resetURL})
	return nil
}

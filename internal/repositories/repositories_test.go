package repositories

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"livescore/internal/models"
)

// Тестовая схема — sqlite-вариант migrations/001_init.sql. Запросы
// репозиториев не используют серверные функции времени, поэтому один и
// тот же SQL работает и под postgres, и под sqlite.
const testSchema = `
	CREATE TABLE users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'USER',
		is_verified   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMP NOT NULL
	);
	CREATE TABLE email_verifications (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    INTEGER NOT NULL,
		token      TEXT NOT NULL UNIQUE,
		expires_at TIMESTAMP NOT NULL,
		used       BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL
	);
	CREATE TABLE password_resets (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    INTEGER NOT NULL,
		token      TEXT NOT NULL UNIQUE,
		expires_at TIMESTAMP NOT NULL,
		used       BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL
	);
`

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// ":memory:" живёт в пределах одного соединения
	db.SetMaxOpenConns(1)
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func mustCreateUser(t *testing.T, repo UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Ana",
		Email:        email,
		PasswordHash: "$2a$12$examplehash",
		Role:         "USER",
	}
	require.NoError(t, repo.Create(user))
	return user
}

func TestUserCreateAndGet(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))

	user := mustCreateUser(t, repo, "ana@x.com")
	require.NotZero(t, user.ID)

	byID, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "ana@x.com", byID.Email)
	require.False(t, byID.IsVerified)

	byEmail, err := repo.GetByEmail("ana@x.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	missing, err := repo.GetByEmail("ghost@x.com")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))

	mustCreateUser(t, repo, "ana@x.com")
	err := repo.Create(&models.User{Name: "B", Email: "ana@x.com", PasswordHash: "h", Role: "USER"})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserListReturnsAdminRows(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	mustCreateUser(t, repo, "ana@x.com")
	mustCreateUser(t, repo, "bob@x.com")

	rows, err := repo.List()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "ana@x.com", rows[0].Email)
	require.Equal(t, "$2a$12$examplehash", rows[0].PasswordHash)
}

func TestUserUpdatePasswordAndMarkVerified(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	user := mustCreateUser(t, repo, "ana@x.com")

	require.NoError(t, repo.UpdatePassword(user.ID, "$2a$12$newhash"))
	require.NoError(t, repo.MarkVerified(user.ID))

	updated, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "$2a$12$newhash", updated.PasswordHash)
	require.True(t, updated.IsVerified)

	require.ErrorIs(t, repo.UpdatePassword(9999, "h"), sql.ErrNoRows)
	require.ErrorIs(t, repo.MarkVerified(9999), sql.ErrNoRows)
}

func TestTokenConsumeIsSingleUse(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tokens := NewPasswordResetRepository(db)
	user := mustCreateUser(t, users, "ana@x.com")

	require.NoError(t, tokens.Create(user.ID, "tok-1", time.Now().Add(15*time.Minute)))

	row, err := tokens.GetByToken("tok-1")
	require.NoError(t, err)
	require.False(t, row.Used)

	userID, ok, err := tokens.Consume("tok-1", time.Now())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, user.ID, userID)

	// вторая попытка видит used = TRUE
	_, ok, err = tokens.Consume("tok-1", time.Now())
	require.NoError(t, err)
	require.False(t, ok)

	row, err = tokens.GetByToken("tok-1")
	require.NoError(t, err)
	require.True(t, row.Used)
}

func TestTokenConsumeRejectsExpiredAndUnknown(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tokens := NewEmailVerificationRepository(db)
	user := mustCreateUser(t, users, "ana@x.com")

	require.NoError(t, tokens.Create(user.ID, "expired", time.Now().Add(-time.Minute)))

	_, ok, err := tokens.Consume("expired", time.Now())
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = tokens.Consume("never-existed", time.Now())
	require.NoError(t, err)
	require.False(t, ok)
}

// Конкурентное погашение: условный UPDATE должен отдать строку ровно
// одному из соперников.
func TestTokenConsumeConcurrent(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tokens := NewPasswordResetRepository(db)
	user := mustCreateUser(t, users, "ana@x.com")

	require.NoError(t, tokens.Create(user.ID, "raced", time.Now().Add(15*time.Minute)))

	const attempts = 8
	results := make([]bool, attempts)
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i], errs[i] = tokens.Consume("raced", time.Now())
		}(i)
	}
	wg.Wait()

	var successes int
	for i := 0; i < attempts; i++ {
		require.NoError(t, errs[i])
		if results[i] {
			successes++
		}
	}
	require.Equal(t, 1, successes)
}

func TestVerificationAndResetTablesAreIndependent(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	verifications := NewEmailVerificationRepository(db)
	resets := NewPasswordResetRepository(db)
	user := mustCreateUser(t, users, "ana@x.com")

	require.NoError(t, verifications.Create(user.ID, "same-value", time.Now().Add(time.Hour)))
	require.NoError(t, resets.Create(user.ID, "same-value", time.Now().Add(time.Hour)))

	_, ok, err := verifications.Consume("same-value", time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	// погашение в одной таблице не трогает другую
	row, err := resets.GetByToken("same-value")
	require.NoError(t, err)
	require.False(t, row.Used)
}

package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"livescore/internal/models"
	"livescore/internal/testutil"
)

type resetEnv struct {
	users  *testutil.FakeUserRepo
	tokens *testutil.FakeTokenRepo
	mail   *testutil.FakeEmailSender
	auth   AuthService
	svc    PasswordResetService
}

func newResetEnv(t *testing.T) (*resetEnv, *models.User) {
	t.Helper()
	users := testutil.NewFakeUserRepo()
	tokens := testutil.NewFakeTokenRepo()
	mail := &testutil.FakeEmailSender{}
	auth := NewAuthService("test-secret")
	env := &resetEnv{
		users:  users,
		tokens: tokens,
		mail:   mail,
		auth:   auth,
		svc:    NewPasswordResetService(users, tokens, mail, auth, "http://localhost:8080"),
	}

	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	user := &models.User{Name: "Ana", Email: "ana@x.com", PasswordHash: hash, Role: "USER", IsVerified: true}
	require.NoError(t, users.Create(user))
	return env, user
}

func TestRequestResetUnknownEmailIsSilent(t *testing.T) {
	env, _ := newResetEnv(t)

	token, err := env.svc.Request("unknown@x.com")
	require.NoError(t, err)
	require.Empty(t, token)
	require.Empty(t, env.mail.Resets)
}

func TestRequestResetCreatesTokenAndSendsLink(t *testing.T) {
	env, _ := newResetEnv(t)

	token, err := env.svc.Request("ana@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.Len(t, env.mail.Resets, 1)
	require.Equal(t, "ana@x.com", env.mail.Resets[0].To)
	require.Contains(t, env.mail.Resets[0].URL, "/reset?token="+token)
}

func TestResetReplacesPasswordAndConsumesToken(t *testing.T) {
	env, user := newResetEnv(t)

	token, err := env.svc.Request("ana@x.com")
	require.NoError(t, err)

	reset, err := env.svc.Reset(token, "newpassword")
	require.NoError(t, err)
	require.Equal(t, user.ID, reset.ID)

	stored, err := env.users.GetByID(user.ID)
	require.NoError(t, err)
	require.True(t, env.auth.CheckPassword(stored.PasswordHash, "newpassword"))
	require.False(t, env.auth.CheckPassword(stored.PasswordHash, "secret1"))

	// повторное погашение того же токена — отказ, даже задолго до expiry
	_, err = env.svc.Reset(token, "another")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetRejectsExpiredToken(t *testing.T) {
	env, _ := newResetEnv(t)

	token, err := env.svc.Request("ana@x.com")
	require.NoError(t, err)
	env.tokens.Expire(token)

	_, err = env.svc.Reset(token, "newpassword")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetValidatesInput(t *testing.T) {
	env, _ := newResetEnv(t)
	_, err := env.svc.Reset("", "newpassword")
	require.ErrorIs(t, err, ErrValidation)
	_, err = env.svc.Reset("sometoken", "")
	require.ErrorIs(t, err, ErrValidation)
	_, err = env.svc.Reset("unknown-token", "newpassword")
	require.ErrorIs(t, err, ErrInvalidToken)
}

// Два одновременных запроса с одним токеном: ровно один успех.
func TestConcurrentResetConsumesTokenOnce(t *testing.T) {
	env, _ := newResetEnv(t)

	token, err := env.svc.Request("ana@x.com")
	require.NoError(t, err)

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.Reset(token, "newpassword")
		}(i)
	}
	wg.Wait()

	var successes, failures int
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, ErrInvalidToken)
			failures++
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, 1, failures)
}

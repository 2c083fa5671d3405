package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"livescore/internal/authz"
	"livescore/internal/testutil"
)

type userServiceEnv struct {
	users  *testutil.FakeUserRepo
	tokens *testutil.FakeTokenRepo
	mail   *testutil.FakeEmailSender
	auth   AuthService
	svc    UserService
}

func newUserServiceEnv() *userServiceEnv {
	users := testutil.NewFakeUserRepo()
	tokens := testutil.NewFakeTokenRepo()
	mail := &testutil.FakeEmailSender{}
	auth := NewAuthService("test-secret")
	verifications := NewVerificationService(users, tokens, mail, "http://localhost:8080")
	return &userServiceEnv{
		users:  users,
		tokens: tokens,
		mail:   mail,
		auth:   auth,
		svc:    NewUserService(users, auth, verifications),
	}
}

func TestRegisterCreatesUnverifiedUser(t *testing.T) {
	env := newUserServiceEnv()

	user, err := env.svc.Register("Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "ana@x.com", user.Email)
	require.Equal(t, authz.RoleUser, user.Role)
	require.False(t, user.IsVerified)
	require.NotEqual(t, "secret1", user.PasswordHash)
	require.True(t, env.auth.CheckPassword(user.PasswordHash, "secret1"))

	// письмо верификации ушло и содержит токен-ссылку
	require.Len(t, env.mail.Verifications, 1)
	require.Equal(t, "ana@x.com", env.mail.Verifications[0].To)
	require.Contains(t, env.mail.Verifications[0].URL, "/verify?token=")
	require.NotEmpty(t, env.tokens.LastToken())
}

func TestRegisterDuplicateEmailLeavesFirstIntact(t *testing.T) {
	env := newUserServiceEnv()

	first, err := env.svc.Register("Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	_, err = env.svc.Register("Impostor", "ana@x.com", "other")
	require.ErrorIs(t, err, ErrEmailTaken)

	stored, err := env.users.GetByID(first.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana", stored.Name)
	require.True(t, env.auth.CheckPassword(stored.PasswordHash, "secret1"))
}

func TestRegisterValidatesFields(t *testing.T) {
	env := newUserServiceEnv()
	for _, tc := range []struct{ name, email, password string }{
		{"", "a@x.com", "p"},
		{"A", "", "p"},
		{"A", "a@x.com", ""},
		{"  ", "a@x.com", "p"},
	} {
		_, err := env.svc.Register(tc.name, tc.email, tc.password)
		require.ErrorIs(t, err, ErrValidation)
	}
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	env := newUserServiceEnv()
	env.mail.FailAll = true

	user, err := env.svc.Register("Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
}

func TestLoginErrorsAreIndistinguishable(t *testing.T) {
	env := newUserServiceEnv()
	_, err := env.svc.Register("Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	// несуществующий email и неверный пароль — одна и та же ошибка
	_, errUnknown := env.svc.Login("ghost@x.com", "secret1")
	_, errWrongPw := env.svc.Login("ana@x.com", "wrong")
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	require.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLoginRequiresVerifiedAccount(t *testing.T) {
	env := newUserServiceEnv()
	user, err := env.svc.Register("Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	_, err = env.svc.Login("ana@x.com", "secret1")
	require.ErrorIs(t, err, ErrNotVerified)

	require.NoError(t, env.users.MarkVerified(user.ID))

	logged, err := env.svc.Login("ana@x.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "ana@x.com", logged.Email)
}

func TestAdminResetPassword(t *testing.T) {
	env := newUserServiceEnv()
	user, err := env.svc.Register("Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, env.users.MarkVerified(user.ID))

	require.ErrorIs(t, env.svc.AdminResetPassword(user.ID, "short"), ErrValidation)
	require.ErrorIs(t, env.svc.AdminResetPassword(9999, "newpassword"), ErrUserNotFound)

	require.NoError(t, env.svc.AdminResetPassword(user.ID, "newpassword"))
	_, err = env.svc.Login("ana@x.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.svc.Login("ana@x.com", "newpassword")
	require.NoError(t, err)
}

func TestListUsersExposesStoredRows(t *testing.T) {
	env := newUserServiceEnv()
	_, err := env.svc.Register("Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	_, err = env.svc.Register("Bob", "bob@x.com", "secret2")
	require.NoError(t, err)

	rows, err := env.svc.ListUsers()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "ana@x.com", rows[0].Email)
	// админский список намеренно содержит хеш (см. DESIGN.md)
	require.True(t, strings.HasPrefix(rows[0].PasswordHash, "$2"))
}

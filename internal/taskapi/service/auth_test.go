package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
	"github.com/taskdeck/taskdeck/pkg/jwtx"
)

func requireDomainCode(t *testing.T, err error, code domain.ErrorCode) *domain.Error {
	t.Helper()
	de := domain.AsError(err)
	require.NotNil(t, de, "expected a domain error, got %v", err)
	require.Equal(t, code, de.Code)
	return de
}

func TestSignup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("creates account and issues tokens", func(t *testing.T) {
		res, err := env.Auth.Signup(ctx, "Ada@Example.com", "correct horse", "Ada", "Lovelace")
		require.NoError(t, err)

		require.Equal(t, "ada@example.com", res.User.Email)
		require.Equal(t, domain.RoleUser, res.User.Role)
		require.True(t, res.User.IsActive)
		require.NotNil(t, res.User.LastLoginAt)
		require.NotEqual(t, "correct horse", res.User.PasswordHash)

		claims, err := env.Codec.Verify(res.Tokens.AccessToken, jwtx.KindAccess)
		require.NoError(t, err)
		require.Equal(t, res.User.ID, claims.Subject)

		_, err = env.Codec.Verify(res.Tokens.RefreshToken, jwtx.KindRefresh)
		require.NoError(t, err)
	})

	t.Run("duplicate email conflicts regardless of case", func(t *testing.T) {
		_, err := env.Auth.Signup(ctx, "ADA@example.COM", "another pass", "Other", "Person")
		requireDomainCode(t, err, domain.CodeDuplicate)
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	signup, err := env.Auth.Signup(ctx, "grace@example.com", "swordfish", "Grace", "Hopper")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		res, err := env.Auth.Login(ctx, "grace@example.com", "swordfish")
		require.NoError(t, err)
		require.Equal(t, signup.User.ID, res.User.ID)
		require.NotEmpty(t, res.Tokens.AccessToken)
		require.NotEmpty(t, res.Tokens.RefreshToken)
	})

	t.Run("email lookup ignores case", func(t *testing.T) {
		_, err := env.Auth.Login(ctx, "GRACE@Example.com", "swordfish")
		require.NoError(t, err)
	})

	t.Run("stamps last login", func(t *testing.T) {
		before, err := env.Users.GetUserByID(ctx, signup.User.ID)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)
		res, err := env.Auth.Login(ctx, "grace@example.com", "swordfish")
		require.NoError(t, err)
		require.True(t, res.User.LastLoginAt.After(*before.LastLoginAt))
	})

	// Unknown email, wrong password and a deactivated account must be
	// indistinguishable in code and message.
	t.Run("failure modes share one error", func(t *testing.T) {
		_, wrongPass := env.Auth.Login(ctx, "grace@example.com", "not swordfish")
		_, unknown := env.Auth.Login(ctx, "nobody@example.com", "swordfish")

		require.NoError(t, env.Users.Deactivate(ctx, signup.User.ID))
		_, inactive := env.Auth.Login(ctx, "grace@example.com", "swordfish")

		for _, err := range []error{wrongPass, unknown, inactive} {
			de := requireDomainCode(t, err, domain.CodeAuthentication)
			require.Equal(t, "Invalid email or password", de.Message)
		}
	})
}

func TestRefresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	signup, err := env.Auth.Signup(ctx, "alan@example.com", "enigma123", "Alan", "Turing")
	require.NoError(t, err)

	t.Run("reissues both tokens", func(t *testing.T) {
		pair, err := env.Auth.Refresh(ctx, signup.Tokens.RefreshToken)
		require.NoError(t, err)

		claims, err := env.Codec.Verify(pair.AccessToken, jwtx.KindAccess)
		require.NoError(t, err)
		require.Equal(t, signup.User.ID, claims.Subject)

		_, err = env.Codec.Verify(pair.RefreshToken, jwtx.KindRefresh)
		require.NoError(t, err)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := env.Auth.Refresh(ctx, signup.Tokens.AccessToken)
		requireDomainCode(t, err, domain.CodeAuthentication)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := env.Auth.Refresh(ctx, "not.a.jwt")
		requireDomainCode(t, err, domain.CodeAuthentication)
	})

	t.Run("deactivated account cannot refresh", func(t *testing.T) {
		require.NoError(t, env.Users.Deactivate(ctx, signup.User.ID))
		_, err := env.Auth.Refresh(ctx, signup.Tokens.RefreshToken)
		requireDomainCode(t, err, domain.CodeAuthentication)
	})
}

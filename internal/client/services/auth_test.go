package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskmanager/internal/client/client"
	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) (*authService, *fakeClient) {
	t.Helper()
	fc := newFakeClient()
	a := NewAuthService(fc, setupDB(t)).(*authService)
	a.now = func() time.Time { return time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC) }
	return a, fc
}

func TestSignup_SignsInAndPersistsSession(t *testing.T) {
	a, fc := newAuth(t)
	ctx := context.Background()

	s, err := a.Signup(ctx, "ann@example.com", "Ann", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, "token-for-u-ann@example.com", s.AccessToken)
	assert.Equal(t, "Ann", s.User.FullName)
	assert.Equal(t, s.AccessToken, fc.token)

	cur, err := a.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, cur)
}

func TestSignup_Conflict_DoesNotSignIn(t *testing.T) {
	a, fc := newAuth(t)
	ctx := context.Background()

	_, err := a.Signup(ctx, "ann@example.com", "Ann", "Secret123")
	require.NoError(t, err)
	require.NoError(t, a.Logout(ctx))

	_, err = a.Signup(ctx, "ann@example.com", "Ann", "Secret123")
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Empty(t, fc.token)

	_, err = a.Current(ctx)
	require.ErrorIs(t, err, common.ErrSessionMissing)
}

func TestSignin_InvalidCredentials_NoSession(t *testing.T) {
	a, _ := newAuth(t)
	ctx := context.Background()

	_, err := a.Signup(ctx, "ann@example.com", "Ann", "Secret123")
	require.NoError(t, err)
	require.NoError(t, a.Logout(ctx))

	_, err = a.Signin(ctx, "ann@example.com", "wrong")
	require.ErrorIs(t, err, common.ErrorInvalidCredentials)

	_, err = a.Current(ctx)
	require.ErrorIs(t, err, common.ErrSessionMissing)
}

func TestSignin_ReplacesPreviousSession(t *testing.T) {
	a, fc := newAuth(t)
	ctx := context.Background()

	_, err := a.Signup(ctx, "ann@example.com", "Ann", "Secret123")
	require.NoError(t, err)
	_, err = a.Signup(ctx, "bob@example.com", "Bob", "Secret123")
	require.NoError(t, err)

	cur, err := a.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", cur.User.Email)
	assert.Equal(t, "token-for-u-bob@example.com", fc.token)
}

func TestCurrent_RestoresTokenIntoClient(t *testing.T) {
	fc := newFakeClient()
	db := setupDB(t)
	ctx := context.Background()

	_, err := NewAuthService(fc, db).Signup(ctx, "ann@example.com", "Ann", "Secret123")
	require.NoError(t, err)

	// A fresh client, as on the next CLI start.
	next := newFakeClient()
	s, err := NewAuthService(next, db).Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.AccessToken, next.token)
}

func TestLogout_ClearsTokenAndSession(t *testing.T) {
	a, fc := newAuth(t)
	ctx := context.Background()

	_, err := a.Signup(ctx, "ann@example.com", "Ann", "Secret123")
	require.NoError(t, err)

	require.NoError(t, a.Logout(ctx))
	assert.Empty(t, fc.token)

	_, err = a.Current(ctx)
	require.ErrorIs(t, err, common.ErrSessionMissing)
}

func TestPing(t *testing.T) {
	a, fc := newAuth(t)
	require.NoError(t, a.Ping(context.Background()))

	fc.err = client.ErrUnavailable
	require.True(t, errors.Is(a.Ping(context.Background()), client.ErrUnavailable))
}

package redis

import (
	"context"
	"testing"

	"Connect_Hub/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	require.NoError(t, Init(mr.Addr(), "", 0))
	t.Cleanup(func() { _ = Close() })
	return mr
}

func TestSessionRoundTrip(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()
	repo := &UserRepository{}

	user := &model.User{ID: "user_x", Email: "riya@igdtuw.ac.in", Name: "Riya"}
	require.NoError(t, repo.SaveSession(ctx, user))

	got, err := repo.GetSession(ctx, "user_x")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	require.NoError(t, repo.DeleteSession(ctx, "user_x"))
	_, err = repo.GetSession(ctx, "user_x")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetSessionPurgesMalformedRecord(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()
	repo := &UserRepository{}

	// 损坏的会话记录按不存在处理，并顺手清除
	require.NoError(t, mr.Set("session:user_x", "{not valid json"))

	_, err := repo.GetSession(ctx, "user_x")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.False(t, mr.Exists("session:user_x"), "corrupt record must be purged")
}

func TestCreateCredentialRejectsDuplicate(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()
	repo := &UserRepository{}

	cred := &model.Credential{Name: "Riya", Password: "hash"}
	require.NoError(t, repo.CreateCredential(ctx, "riya@igdtuw.ac.in", cred))

	err := repo.CreateCredential(ctx, "riya@igdtuw.ac.in", &model.Credential{Name: "Impostor"})
	assert.ErrorIs(t, err, ErrCredentialExists)

	got, err := repo.GetCredential(ctx, "riya@igdtuw.ac.in")
	require.NoError(t, err)
	assert.Equal(t, "Riya", got.Name, "original credential untouched")
}

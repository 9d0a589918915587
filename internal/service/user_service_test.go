package service

import (
	"context"
	"testing"

	"Connect_Hub/internal/model"
	"Connect_Hub/internal/pkg"
	"Connect_Hub/internal/repository/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore 内存版 UserStore，writes 统计持久化写入次数
type fakeUserStore struct {
	creds    map[string]*model.Credential
	sessions map[string]*model.User
	tokens   map[string]string
	writes   int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		creds:    make(map[string]*model.Credential),
		sessions: make(map[string]*model.User),
		tokens:   make(map[string]string),
	}
}

func (f *fakeUserStore) CreateCredential(ctx context.Context, email string, cred *model.Credential) error {
	if _, ok := f.creds[email]; ok {
		return redis.ErrCredentialExists
	}
	cp := *cred
	f.creds[email] = &cp
	f.writes++
	return nil
}

func (f *fakeUserStore) GetCredential(ctx context.Context, email string) (*model.Credential, error) {
	cred, ok := f.creds[email]
	if !ok {
		return nil, redis.ErrCredentialNotFound
	}
	cp := *cred
	return &cp, nil
}

func (f *fakeUserStore) UpdateCredential(ctx context.Context, email string, cred *model.Credential) error {
	cp := *cred
	f.creds[email] = &cp
	f.writes++
	return nil
}

func (f *fakeUserStore) SaveSession(ctx context.Context, user *model.User) error {
	cp := *user
	f.sessions[user.ID] = &cp
	f.writes++
	return nil
}

func (f *fakeUserStore) GetSession(ctx context.Context, userID string) (*model.User, error) {
	user, ok := f.sessions[userID]
	if !ok {
		return nil, redis.ErrSessionNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserStore) DeleteSession(ctx context.Context, userID string) error {
	delete(f.sessions, userID)
	return nil
}

func (f *fakeUserStore) AddUserToken(ctx context.Context, userID, token string) error {
	f.tokens[userID] = token
	f.writes++
	return nil
}

func (f *fakeUserStore) DeleteUserToken(ctx context.Context, userID string) error {
	delete(f.tokens, userID)
	return nil
}

func newTestUserService(store *fakeUserStore) *UserService {
	cfg := &pkg.Config{
		CampusDomain: "igdtuw.ac.in",
		AdminEmails:  []string{"admin@igdtuw.ac.in"},
	}
	// 未配置 SMTP，注册不要求验证码
	return NewUserService(store, nil, cfg)
}

func TestSignupThenLoginRoundTrip(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)
	ctx := context.Background()

	created, pair, err := svc.Signup(ctx, "riya@igdtuw.ac.in", "Riya", "secret123", "")
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, "riya@igdtuw.ac.in", created.Email)
	assert.Equal(t, "Riya", created.Name)
	assert.False(t, created.IsAdmin)

	logged, pair, err := svc.Login(ctx, "riya@igdtuw.ac.in", "secret123")
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, created.Email, logged.Email)
	assert.Equal(t, created.Name, logged.Name)

	// 会话已持久化，token 与会话对应
	sess, err := svc.GetUser(ctx, logged.ID)
	require.NoError(t, err)
	assert.Equal(t, logged.Email, sess.Email)
	assert.NotEmpty(t, store.tokens[logged.ID])
}

func TestNonCampusEmailRejectedWithoutWrites(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)
	ctx := context.Background()

	for _, email := range []string{"riya@gmail.com", "riya@igdtuw.ac.in.evil.com", "not-an-email"} {
		_, _, err := svc.Signup(ctx, email, "Riya", "secret123", "")
		assert.ErrorIs(t, err, ErrInvalidEmailDomain, email)

		_, _, err = svc.Login(ctx, email, "secret123")
		assert.ErrorIs(t, err, ErrInvalidEmailDomain, email)
	}
	assert.Zero(t, store.writes, "rejected emails must not touch storage")
}

func TestDuplicateSignupKeepsOriginalCredential(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "riya@igdtuw.ac.in", "Riya", "first-pass", "")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "riya@igdtuw.ac.in", "Impostor", "other-pass", "")
	assert.ErrorIs(t, err, ErrAccountExists)

	cred := store.creds["riya@igdtuw.ac.in"]
	require.NotNil(t, cred)
	assert.Equal(t, "Riya", cred.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte("first-pass")))
}

func TestSignupNameDefaultsToEmailLocalPart(t *testing.T) {
	svc := newTestUserService(newFakeUserStore())

	user, _, err := svc.Signup(context.Background(), "riya.sharma@igdtuw.ac.in", "", "secret123", "")
	require.NoError(t, err)
	assert.Equal(t, "riya.sharma", user.Name)
}

func TestAdminRecomputedFromAllowList(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)
	ctx := context.Background()

	admin, _, err := svc.Signup(ctx, "admin@igdtuw.ac.in", "Admin", "password123", "")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	// 每次登录由白名单重新计算，不是持久授权
	again, _, err := svc.Login(ctx, "admin@igdtuw.ac.in", "password123")
	require.NoError(t, err)
	assert.True(t, again.IsAdmin)
}

func TestLoginFailures(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "ghost@igdtuw.ac.in", "whatever")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, _, err = svc.Signup(ctx, "riya@igdtuw.ac.in", "Riya", "secret123", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "riya@igdtuw.ac.in", "wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLogoutIsIdempotent(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, "riya@igdtuw.ac.in", "Riya", "secret123", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))
	require.NoError(t, svc.Logout(ctx, user.ID))

	_, err = svc.GetUser(ctx, user.ID)
	assert.Error(t, err, "session destroyed on logout")
	assert.Empty(t, store.tokens[user.ID])
}

func TestChangePasswordRotatesHashAndLogsOut(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, "riya@igdtuw.ac.in", "Riya", "old-pass", "")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "bad-old", "new-pass")
	assert.Error(t, err)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "old-pass", "new-pass"))

	_, err = svc.GetUser(ctx, user.ID)
	assert.Error(t, err, "forced logout after password change")

	_, _, err = svc.Login(ctx, "riya@igdtuw.ac.in", "new-pass")
	assert.NoError(t, err)
}

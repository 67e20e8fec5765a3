package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/YuvrajShekhar/docmanager-client/internal/adapter"
	"github.com/YuvrajShekhar/docmanager-client/internal/crypto"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/mock"
	"github.com/YuvrajShekhar/docmanager-client/internal/store"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

type sessionFixture struct {
	svc     *clientSessionService
	adapter *mock.MockServerAdapter
	kv      *store.MemoryKeyValueRepository
	cipher  crypto.Cipher
}

func testCipher(t *testing.T) crypto.Cipher {
	t.Helper()
	c, err := crypto.NewSessionCipherWithParams("test-secret", bytes.Repeat([]byte{3}, crypto.SaltSize),
		crypto.KDFParams{Time: 1, Memory: 8 * 1024, Threads: 1})
	require.NoError(t, err)
	return c
}

func newSessionFixture(t *testing.T) sessionFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	a := mock.NewMockServerAdapter(ctrl)
	a.EXPECT().SetToken(gomock.Any()).AnyTimes()

	kv := store.NewMemoryKeyValueRepository()
	c := testCipher(t)
	svc := NewClientSessionService(kv, a, c, logger.Nop()).(*clientSessionService)
	return sessionFixture{svc: svc, adapter: a, kv: kv, cipher: c}
}

func (f sessionFixture) seed(t *testing.T, access, refresh string, user *models.User) {
	t.Helper()
	session := models.Session{AccessToken: access, RefreshToken: refresh, User: user}
	require.NoError(t, f.svc.save(context.Background(), session))
}

func (f sessionFixture) cached(t *testing.T, key string) (string, bool) {
	t.Helper()
	sealed, err := f.kv.Get(context.Background(), key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return "", false
	}
	require.NoError(t, err)
	plain, err := f.cipher.Open(sealed)
	require.NoError(t, err)
	return string(plain), true
}

var alice = models.User{ID: 7, Username: "alice", FirstName: "Alice"}

// ── Login ────────────────────────────────────────────────────────────────────

func TestSessionLogin_CachesEncryptedSession(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	creds := models.Credentials{Username: "alice", Password: "pw"}

	f.adapter.EXPECT().Login(gomock.Any(), creds).
		Return(models.LoginResponse{Access: "acc-1", Refresh: "ref-1", User: alice}, nil)

	user, err := f.svc.Login(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, alice, user)
	assert.True(t, f.svc.IsAuthenticated())
	assert.Equal(t, "acc-1", f.svc.Current().AccessToken)

	raw, err := f.kv.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.NotContains(t, raw, "acc-1", "token must be stored encrypted")

	got, ok := f.cached(t, KeyRefreshToken)
	require.True(t, ok)
	assert.Equal(t, "ref-1", got)

	userJSON, ok := f.cached(t, KeyUser)
	require.True(t, ok)
	assert.Contains(t, userJSON, `"username":"alice"`)
}

func TestSessionLogin_InvalidCredentials(t *testing.T) {
	f := newSessionFixture(t)

	f.adapter.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.LoginResponse{}, &adapter.StatusError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"})

	_, err := f.svc.Login(context.Background(), models.Credentials{Username: "a", Password: "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.False(t, f.svc.IsAuthenticated())
}

// ── Init ─────────────────────────────────────────────────────────────────────

func TestSessionInit_NoCache(t *testing.T) {
	f := newSessionFixture(t)

	ok, err := f.svc.Init(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, f.svc.IsAuthenticated())
}

func TestSessionInit_ValidToken(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t, "acc", "ref", &alice)

	updated := alice
	updated.Email = "alice@example.com"
	f.adapter.EXPECT().Me(gomock.Any()).Return(updated, nil)

	ok, err := f.svc.Init(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice@example.com", f.svc.Current().User.Email)
}

func TestSessionInit_RefreshesRejectedToken(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t, "old", "ref", &alice)

	gomock.InOrder(
		f.adapter.EXPECT().Me(gomock.Any()).Return(models.User{}, &adapter.StatusError{StatusCode: http.StatusUnauthorized}),
		f.adapter.EXPECT().Refresh(gomock.Any(), "ref").Return("new", nil),
	)

	ok, err := f.svc.Init(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", f.svc.Current().AccessToken)

	got, _ := f.cached(t, KeyAccessToken)
	assert.Equal(t, "new", got)
}

func TestSessionInit_PurgesWhenRefreshFails(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t, "old", "ref", &alice)

	f.adapter.EXPECT().Me(gomock.Any()).Return(models.User{}, &adapter.StatusError{StatusCode: http.StatusUnauthorized})
	f.adapter.EXPECT().Refresh(gomock.Any(), "ref").Return("", adapter.ErrNetwork)

	ok, err := f.svc.Init(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, f.svc.IsAuthenticated())

	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUser} {
		_, cached := f.cached(t, key)
		assert.False(t, cached, "key %s must be purged", key)
	}
}

func TestSessionInit_UndecryptableCacheIsIgnored(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	require.NoError(t, f.kv.Set(ctx, KeyAccessToken, "garbage"))
	require.NoError(t, f.kv.Set(ctx, KeyUser, "garbage"))

	ok, err := f.svc.Init(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionInit_CanceledContext(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t, "acc", "ref", &alice)

	f.adapter.EXPECT().Me(gomock.Any()).Return(models.User{}, context.Canceled)

	ok, err := f.svc.Init(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

// ── Logout / Refresh ─────────────────────────────────────────────────────────

func TestSessionLogout_ClearsEvenWhenRemoteFails(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t, "acc", "ref", &alice)
	f.svc.set(models.Session{AccessToken: "acc", RefreshToken: "ref", User: &alice})

	f.adapter.EXPECT().Logout(gomock.Any(), "ref").Return(adapter.ErrNetwork)

	require.NoError(t, f.svc.Logout(context.Background()))
	assert.False(t, f.svc.IsAuthenticated())
	_, cached := f.cached(t, KeyRefreshToken)
	assert.False(t, cached)
}

func TestSessionLogout_WithoutSessionSkipsRemote(t *testing.T) {
	f := newSessionFixture(t)

	assert.NoError(t, f.svc.Logout(context.Background()))
}

func TestSessionRefresh_KeepsRefreshTokenAndUser(t *testing.T) {
	f := newSessionFixture(t)
	f.svc.set(models.Session{AccessToken: "a1", RefreshToken: "r1", User: &alice})

	f.adapter.EXPECT().Refresh(gomock.Any(), "r1").Return("a2", nil)

	require.NoError(t, f.svc.Refresh(context.Background()))
	cur := f.svc.Current()
	assert.Equal(t, "a2", cur.AccessToken)
	assert.Equal(t, "r1", cur.RefreshToken)
	assert.Equal(t, "alice", cur.User.Username)
}

func TestSessionRefresh_Rejected(t *testing.T) {
	f := newSessionFixture(t)
	f.svc.set(models.Session{AccessToken: "a1", RefreshToken: "r1", User: &alice})

	f.adapter.EXPECT().Refresh(gomock.Any(), "r1").
		Return("", &adapter.StatusError{StatusCode: http.StatusUnauthorized, Message: "Invalid or expired refresh token"})

	err := f.svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, f.svc.IsAuthenticated())
}

func TestSessionRefresh_WithoutSession(t *testing.T) {
	f := newSessionFixture(t)

	assert.ErrorIs(t, f.svc.Refresh(context.Background()), ErrNotAuthenticated)
}

// ── HandleError ──────────────────────────────────────────────────────────────

func TestSessionHandleError(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	f.svc.set(models.Session{AccessToken: "a", RefreshToken: "r", User: &alice})

	other := &adapter.StatusError{StatusCode: http.StatusInternalServerError}
	assert.Same(t, error(other), f.svc.HandleError(ctx, other))
	assert.True(t, f.svc.IsAuthenticated())

	err := f.svc.HandleError(ctx, &adapter.StatusError{StatusCode: http.StatusUnauthorized})
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, f.svc.IsAuthenticated())

	assert.NoError(t, f.svc.HandleError(ctx, nil))
}

func TestSessionCurrent_ReturnsCopy(t *testing.T) {
	f := newSessionFixture(t)
	f.svc.set(models.Session{AccessToken: "a", User: &alice})

	cur := f.svc.Current()
	cur.User.Username = "mallory"

	assert.Equal(t, "alice", f.svc.Current().User.Username)
}

// ── LoadSessionCipher ────────────────────────────────────────────────────────

func TestLoadSessionCipher_PersistsSalt(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKeyValueRepository()

	first, err := LoadSessionCipher(ctx, kv, "machine")
	require.NoError(t, err)
	salt, err := kv.Get(ctx, keyCipherSalt)
	require.NoError(t, err)

	blob, err := first.Seal([]byte("token"))
	require.NoError(t, err)

	second, err := LoadSessionCipher(ctx, kv, "machine")
	require.NoError(t, err)
	again, _ := kv.Get(ctx, keyCipherSalt)
	assert.Equal(t, salt, again)

	plain, err := second.Open(blob)
	require.NoError(t, err)
	assert.Equal(t, "token", string(plain))
}

func TestLoadSessionCipher_ReplacesBrokenSalt(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKeyValueRepository()
	require.NoError(t, kv.Set(ctx, keyCipherSalt, "not base64!"))

	_, err := LoadSessionCipher(ctx, kv, "machine")
	require.NoError(t, err)

	salt, _ := kv.Get(ctx, keyCipherSalt)
	assert.NotEqual(t, "not base64!", salt)
}

func TestLoadSessionCipher_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKeyValueRepository(ctrl)
	kv.EXPECT().Get(gomock.Any(), keyCipherSalt).Return("", errors.New("disk gone"))

	_, err := LoadSessionCipher(context.Background(), kv, "machine")
	assert.Error(t, err)
}

package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/YuvrajShekhar/docmanager-client/internal/adapter"
	"github.com/YuvrajShekhar/docmanager-client/internal/crypto"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/store"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

// Local store keys of the cached session.
const (
	KeyAccessToken  = "docmanager_access_token"
	KeyRefreshToken = "docmanager_refresh_token"
	KeyUser         = "docmanager_user"

	keyCipherSalt = "docmanager_cipher_salt"
)

type clientSessionService struct {
	kv      store.KeyValueRepository
	adapter adapter.ServerAdapter
	cipher  crypto.Cipher
	logger  *logger.Logger

	mu      sync.RWMutex
	session models.Session
}

// NewClientSessionService constructs a [SessionService]. The session starts
// empty; call Init to restore a cached one.
func NewClientSessionService(kv store.KeyValueRepository, serverAdapter adapter.ServerAdapter, cipher crypto.Cipher, logger *logger.Logger) SessionService {
	return &clientSessionService{
		kv:      kv,
		adapter: serverAdapter,
		cipher:  cipher,
		logger:  logger,
	}
}

// LoadSessionCipher returns the cipher protecting the cached session. The
// key-derivation salt is kept in kv and created on first use. A missing or
// unreadable salt is replaced, which makes any previously cached session
// unreadable.
func LoadSessionCipher(ctx context.Context, kv store.KeyValueRepository, secret string) (crypto.Cipher, error) {
	var salt []byte

	raw, err := kv.Get(ctx, keyCipherSalt)
	switch {
	case err == nil:
		if decoded, decErr := base64.StdEncoding.DecodeString(raw); decErr == nil && len(decoded) == crypto.SaltSize {
			salt = decoded
		}
	case !errors.Is(err, store.ErrKeyNotFound):
		return nil, fmt.Errorf("read cipher salt: %w", err)
	}

	if salt == nil {
		if salt, err = crypto.GenerateSalt(); err != nil {
			return nil, err
		}
		if err = kv.Set(ctx, keyCipherSalt, base64.StdEncoding.EncodeToString(salt)); err != nil {
			return nil, fmt.Errorf("store cipher salt: %w", err)
		}
	}

	return crypto.NewSessionCipher(secret, salt)
}

func (s *clientSessionService) Init(ctx context.Context) (bool, error) {
	cached := s.load(ctx)
	if cached.AccessToken == "" || cached.User == nil {
		return false, nil
	}
	s.set(cached)

	user, err := s.adapter.Me(ctx)
	if err == nil {
		cached.User = &user
		s.set(cached)
		s.saveUser(ctx, user)
		return true, nil
	}
	if errors.Is(err, context.Canceled) {
		return false, err
	}

	s.logger.Debug().Err(err).Str("func", "clientSessionService.Init").Msg("cached access token rejected, refreshing")
	if err = s.Refresh(ctx); err != nil {
		s.logger.Debug().Err(err).Str("func", "clientSessionService.Init").Msg("refresh failed, clearing session")
		s.purge(ctx)
		return false, nil
	}

	return true, nil
}

func (s *clientSessionService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	resp, err := s.adapter.Login(ctx, creds)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}

	user := resp.User
	session := models.Session{
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
		User:         &user,
	}
	s.set(session)

	if err = s.save(ctx, session); err != nil {
		s.logger.Warn().Err(err).Str("func", "clientSessionService.Login").Msg("session is not cached")
	}

	s.logger.Info().Str("username", user.Username).Msg("logged in")
	return user, nil
}

func (s *clientSessionService) Logout(ctx context.Context) error {
	current := s.Current()

	if current.AccessToken != "" && current.RefreshToken != "" {
		if err := s.adapter.Logout(ctx, current.RefreshToken); err != nil {
			s.logger.Debug().Err(err).Str("func", "clientSessionService.Logout").Msg("remote logout failed")
		}
	}

	s.purge(ctx)
	return nil
}

func (s *clientSessionService) Refresh(ctx context.Context) error {
	current := s.Current()
	if current.RefreshToken == "" || current.User == nil {
		return ErrNotAuthenticated
	}

	access, err := s.adapter.Refresh(ctx, current.RefreshToken)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) || errors.Is(err, adapter.ErrBadRequest) {
			s.purge(ctx)
			return fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}
		return mapAdapterError(err)
	}

	current.AccessToken = access
	s.set(current)

	if err = s.saveToken(ctx, KeyAccessToken, access); err != nil {
		s.logger.Warn().Err(err).Str("func", "clientSessionService.Refresh").Msg("refreshed token is not cached")
	}

	return nil
}

func (s *clientSessionService) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.session
	if s.session.User != nil {
		u := *s.session.User
		out.User = &u
	}
	return out
}

func (s *clientSessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session.AccessToken != "" && s.session.User != nil
}

func (s *clientSessionService) HandleError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, adapter.ErrUnauthorized) {
		s.purge(ctx)
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	return err
}

func (s *clientSessionService) set(session models.Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.adapter.SetToken(session.AccessToken)
}

func (s *clientSessionService) purge(ctx context.Context) {
	s.set(models.Session{})

	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUser} {
		if err := s.kv.Delete(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("func", "clientSessionService.purge").Str("key", key).Msg("failed to delete cached value")
		}
	}
}

func (s *clientSessionService) save(ctx context.Context, session models.Session) error {
	if err := s.saveToken(ctx, KeyAccessToken, session.AccessToken); err != nil {
		return err
	}
	if err := s.saveToken(ctx, KeyRefreshToken, session.RefreshToken); err != nil {
		return err
	}
	if session.User != nil {
		s.saveUser(ctx, *session.User)
	}
	return nil
}

func (s *clientSessionService) saveToken(ctx context.Context, key, token string) error {
	sealed, err := s.cipher.Seal([]byte(token))
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, sealed)
}

func (s *clientSessionService) saveUser(ctx context.Context, user models.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	sealed, err := s.cipher.Seal(raw)
	if err == nil {
		err = s.kv.Set(ctx, KeyUser, sealed)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "clientSessionService.saveUser").Msg("user is not cached")
	}
}

// load reads the cached session. Missing, undecryptable or corrupt entries
// yield empty fields.
func (s *clientSessionService) load(ctx context.Context) models.Session {
	var session models.Session

	session.AccessToken = string(s.open(ctx, KeyAccessToken))
	session.RefreshToken = string(s.open(ctx, KeyRefreshToken))

	if raw := s.open(ctx, KeyUser); raw != nil {
		var user models.User
		if err := json.Unmarshal(raw, &user); err != nil {
			s.logger.Debug().Err(err).Str("func", "clientSessionService.load").Msg("cached user is corrupt")
		} else {
			session.User = &user
		}
	}

	return session
}

func (s *clientSessionService) open(ctx context.Context, key string) []byte {
	sealed, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			s.logger.Debug().Err(err).Str("func", "clientSessionService.open").Str("key", key).Msg("failed to read cached value")
		}
		return nil
	}

	plain, err := s.cipher.Open(sealed)
	if err != nil {
		s.logger.Debug().Err(err).Str("func", "clientSessionService.open").Str("key", key).Msg("cached value cannot be decrypted")
		return nil
	}
	return plain
}

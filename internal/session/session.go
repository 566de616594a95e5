package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhishek622/interviewdesk/internal/cache"
	"github.com/abhishek622/interviewdesk/internal/config"
	"github.com/abhishek622/interviewdesk/pkg"
	"github.com/abhishek622/interviewdesk/pkg/model"
	"go.uber.org/zap"
)

const (
	KeyAuthToken = "auth_token"
	KeyCSRFToken = "csrf_token"
	KeyUserInfo  = "user_info"
)

// State is what a console restores on start-up.
type State struct {
	Token     string
	CSRFToken string
	Profile   *model.Profile
}

func (s State) Authenticated() bool {
	return s.Token != ""
}

// Manager owns the persisted session: the session cookie value, the
// anti-forgery token and the profile blob.
type Manager struct {
	store  Store
	logger *zap.Logger
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger}
}

// NewStore builds the configured storage backend.
func NewStore(cfg *config.Config) (Store, error) {
	var store Store
	switch cfg.Session.Backend {
	case "redis":
		rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		store = NewRedisStore(rdb, cfg.Redis.Prefix)
	case "file", "":
		store = NewFileStore(cfg.Session.Path)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
	if cfg.Session.Secret == "" {
		return store, nil
	}
	c, err := pkg.NewCrypto(cfg.Session.Secret)
	if err != nil {
		return nil, fmt.Errorf("session secret: %w", err)
	}
	return NewSealedStore(store, c), nil
}

func (m *Manager) get(ctx context.Context, key string) (string, error) {
	v, err := m.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}

// Load restores the persisted session. A corrupt profile blob is dropped
// rather than failing start-up.
func (m *Manager) Load(ctx context.Context) (State, error) {
	var st State
	var err error

	if st.Token, err = m.get(ctx, KeyAuthToken); err != nil {
		return State{}, fmt.Errorf("load session token: %w", err)
	}
	if st.CSRFToken, err = m.get(ctx, KeyCSRFToken); err != nil {
		return State{}, fmt.Errorf("load csrf token: %w", err)
	}
	raw, err := m.get(ctx, KeyUserInfo)
	if err != nil {
		return State{}, fmt.Errorf("load profile: %w", err)
	}
	if raw != "" {
		var p model.Profile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			m.logger.Sugar().Warnw("discarding unreadable profile", "err", err)
		} else {
			st.Profile = &p
		}
	}
	return st, nil
}

// SaveCookies persists the session cookie and anti-forgery token. Empty
// values remove the key.
func (m *Manager) SaveCookies(ctx context.Context, sessionID, csrfToken string) error {
	if err := m.put(ctx, KeyAuthToken, sessionID); err != nil {
		return err
	}
	return m.put(ctx, KeyCSRFToken, csrfToken)
}

func (m *Manager) put(ctx context.Context, key, value string) error {
	if value == "" {
		return m.store.Delete(ctx, key)
	}
	return m.store.Set(ctx, key, value)
}

func (m *Manager) SaveProfile(ctx context.Context, p *model.Profile) error {
	if p == nil {
		return m.store.Delete(ctx, KeyUserInfo)
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, KeyUserInfo, string(b))
}

// Clear removes the session token and profile. Called on logout and on any
// 401 from the backend.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, KeyAuthToken, KeyUserInfo); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.logger.Sugar().Infow("local session cleared")
	return nil
}

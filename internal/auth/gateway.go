package auth

import (
	"sync"

	"go.uber.org/zap"

	"github.com/balkashynov/vaga/internal/store"
)

// Gateway holds the process-wide credential slot: set on login,
// cleared on logout or on an auth rejection from any call. It is the
// one explicit owner of that state; nothing else reads the store
// directly.
type Gateway struct {
	store *store.Store
	log   *zap.Logger

	mu  sync.Mutex
	cur *Credential
}

// NewGateway loads any persisted credential from the store. A stored
// token that no longer parses is discarded quietly.
func NewGateway(st *store.Store, log *zap.Logger) (*Gateway, error) {
	g := &Gateway{store: st, log: log}

	token, err := st.Token()
	if err != nil {
		return nil, err
	}
	if token != "" {
		cred, err := ParseCredential(token)
		if err != nil {
			log.Warn("discarding unparseable stored token", zap.Error(err))
			_ = st.ClearToken()
		} else {
			g.cur = &cred
		}
	}
	return g, nil
}

// Current returns the held credential, or nil when unauthenticated.
func (g *Gateway) Current() *Credential {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cur == nil {
		return nil
	}
	cred := *g.cur
	return &cred
}

// Token returns the raw bearer token for request headers, "" when
// logged out. Shaped to plug straight into api.New.
func (g *Gateway) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cur == nil {
		return ""
	}
	return g.cur.Token
}

// SetToken stores a freshly issued token and decodes its identity.
func (g *Gateway) SetToken(token string) error {
	cred, err := ParseCredential(token)
	if err != nil {
		return err
	}
	if err := g.store.SaveToken(token); err != nil {
		return err
	}
	g.mu.Lock()
	g.cur = &cred
	g.mu.Unlock()
	g.log.Info("credential set", zap.Int64("user_id", cred.UserID))
	return nil
}

// Invalidate clears the credential, in memory and on disk. Called on
// logout and whenever an authenticated call comes back ErrAuth.
func (g *Gateway) Invalidate() error {
	g.mu.Lock()
	was := g.cur != nil
	g.cur = nil
	g.mu.Unlock()
	if was {
		g.log.Info("credential invalidated")
	}
	return g.store.ClearToken()
}

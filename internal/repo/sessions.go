package repo

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/balkashynov/vaga/internal/api"
	"github.com/balkashynov/vaga/internal/auth"
	"github.com/balkashynov/vaga/internal/lot"
	"github.com/balkashynov/vaga/internal/models"
	"github.com/balkashynov/vaga/internal/store"
)

// Remote is the slice of the API the repository needs. *api.Client
// satisfies it.
type Remote interface {
	TodaySessions(ctx context.Context) ([]models.Session, error)
	CreateSession(ctx context.Context, plate string, entry time.Time, hourlyRate float64, userID int64) (models.Session, error)
	CloseSession(ctx context.Context, id int64, exit time.Time, chargedTotal float64) error
	DeleteSession(ctx context.Context, id int64) error
}

// Sessions caches the authoritative today snapshot and mediates every
// mutation. There is no incremental merge: after any successful
// mutation the whole list is re-fetched before the caller gets control
// back, so derived occupancy is never computed from a stale list.
type Sessions struct {
	remote  Remote
	cfg     models.LotConfig
	gateway *auth.Gateway
	local   *store.Store
	log     *zap.Logger

	mu        sync.Mutex
	sessions  []models.Session
	fetchedAt time.Time
	stale     bool
}

// New builds the repository, seeding the cache from the local store's
// last snapshot (marked stale) so the board is never empty offline.
func New(remote Remote, cfg models.LotConfig, gateway *auth.Gateway, local *store.Store, log *zap.Logger) *Sessions {
	r := &Sessions{
		remote:  remote,
		cfg:     cfg,
		gateway: gateway,
		local:   local,
		log:     log,
		stale:   true,
	}
	if local != nil {
		if cached, at, ok, err := local.LastSnapshot(); err == nil && ok {
			r.sessions = cached
			r.fetchedAt = at
		}
	}
	return r
}

// Config returns the lot configuration the repository was built with.
func (r *Sessions) Config() models.LotConfig {
	return r.cfg
}

// Refresh replaces the cached snapshot with a fresh today feed. The
// surrounding UI calls it after every mutation and on a timer; nothing
// infers staleness implicitly.
func (r *Sessions) Refresh(ctx context.Context) error {
	sessions, err := r.remote.TodaySessions(ctx)
	if err != nil {
		r.observeFailure(err)
		return err
	}

	now := time.Now()
	r.mu.Lock()
	r.sessions = sessions
	r.fetchedAt = now
	r.stale = false
	r.mu.Unlock()

	if r.local != nil {
		if err := r.local.SaveSnapshot(now, sessions); err != nil {
			r.log.Warn("failed to cache snapshot", zap.Error(err))
		}
	}
	return nil
}

// Today returns a copy of the cached session list, when it was fetched
// and whether it is stale (seeded from disk, or last refresh failed).
func (r *Sessions) Today() (sessions []models.Session, fetchedAt time.Time, stale bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sessions = make([]models.Session, len(r.sessions))
	copy(sessions, r.sessions)
	return sessions, r.fetchedAt, r.stale
}

// Get finds a session in the cached snapshot.
func (r *Sessions) Get(id int64) (models.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ID == id {
			return s, true
		}
	}
	return models.Session{}, false
}

// Occupancy derives slot usage from the cached snapshot under the
// given policy.
func (r *Sessions) Occupancy(policy lot.Policy) lot.Occupancy {
	sessions, _, _ := r.Today()
	return lot.Count(sessions, policy)
}

// RegisterEntry creates a session for a plate at the given instant and
// rate, stamped with the logged-in operator's id, then re-fetches.
func (r *Sessions) RegisterEntry(ctx context.Context, plate string, entry time.Time, hourlyRate float64) (models.Session, error) {
	var userID int64
	if cred := r.gateway.Current(); cred != nil {
		userID = cred.UserID
	}

	created, err := r.remote.CreateSession(ctx, plate, entry, hourlyRate, userID)
	if err != nil {
		r.observeFailure(err)
		return models.Session{}, err
	}
	r.log.Info("entry registered", zap.String("plate", plate), zap.Int64("session_id", created.ID))
	return created, r.Refresh(ctx)
}

// RegisterExit closes a session with the charged total the operator
// settled on (client-computed; the server stores it as given), then
// re-fetches.
func (r *Sessions) RegisterExit(ctx context.Context, id int64, exit time.Time, chargedTotal float64) error {
	if err := r.remote.CloseSession(ctx, id, exit, chargedTotal); err != nil {
		r.observeFailure(err)
		return err
	}
	r.log.Info("exit registered", zap.Int64("session_id", id), zap.Float64("charged", chargedTotal))
	return r.Refresh(ctx)
}

// Delete hard-deletes a session, then re-fetches. Confirmation is the
// caller's responsibility.
func (r *Sessions) Delete(ctx context.Context, id int64) error {
	if err := r.remote.DeleteSession(ctx, id); err != nil {
		r.observeFailure(err)
		return err
	}
	r.log.Info("session deleted", zap.Int64("session_id", id))
	return r.Refresh(ctx)
}

// observeFailure marks the cache stale and drops the credential when
// the server rejected it.
func (r *Sessions) observeFailure(err error) {
	r.mu.Lock()
	r.stale = true
	r.mu.Unlock()

	if errors.Is(err, api.ErrAuth) {
		if invErr := r.gateway.Invalidate(); invErr != nil {
			r.log.Warn("failed to clear credential", zap.Error(invErr))
		}
	}
}

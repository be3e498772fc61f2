package browse

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/scholarstack/paper-catalog-service/internal/catalog"
	"github.com/scholarstack/paper-catalog-service/internal/domain"
	"github.com/scholarstack/paper-catalog-service/internal/observability"
)

// StoreConfig configures the session store.
type StoreConfig struct {
	// PageSize is the initial page size for new sessions.
	PageSize int

	// TTL is how long an idle session survives before the sweeper drops it.
	TTL time.Duration

	// SweepInterval is how often the sweeper scans for idle sessions.
	SweepInterval time.Duration
}

// Store holds the live browse sessions keyed by uuid. Sessions are purely
// in-memory and session-scoped; there is no persistence across restarts.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	cat     *catalog.Catalog
	cfg     StoreConfig
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewStore creates a session store over the catalog.
// metrics may be nil, in which case session counters are not recorded.
func NewStore(cat *catalog.Catalog, cfg StoreConfig, logger zerolog.Logger, metrics *observability.Metrics) *Store {
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}

	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		cat:      cat,
		cfg:      cfg,
		logger:   logger.With().Str("component", "session-store").Logger(),
		metrics:  metrics,
	}
}

// Create mints a new session and returns its id.
func (st *Store) Create() (uuid.UUID, *Session) {
	id := uuid.New()
	sess := NewSession(st.cat, st.cfg.PageSize)

	st.mu.Lock()
	st.sessions[id] = sess
	st.mu.Unlock()

	if st.metrics != nil {
		st.metrics.RecordSessionCreated()
	}
	createLog := observability.WithSessionContext(st.logger, id.String())
	createLog.Debug().Msg("session created")
	return id, sess
}

// Get returns the session with the given id.
// Returns domain.ErrNotFound (wrapped) if the session does not exist.
func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, domain.NewNotFoundError("session", id.String())
	}
	return sess, nil
}

// Delete removes the session with the given id, if present.
func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
	deleteLog := observability.WithSessionContext(st.logger, id.String())
	deleteLog.Debug().Msg("session deleted")
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep runs the idle-session janitor until ctx is canceled.
func (st *Store) Sweep(ctx context.Context) {
	ticker := time.NewTicker(st.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if expired := st.sweepOnce(time.Now()); expired > 0 {
				if st.metrics != nil {
					st.metrics.RecordSessionsExpired(expired)
				}
				st.logger.Info().Int("expired", expired).Msg("idle sessions swept")
			}
		}
	}
}

// sweepOnce drops every session idle past the TTL and returns how many went.
func (st *Store) sweepOnce(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	expired := 0
	for id, sess := range st.sessions {
		if now.Sub(sess.LastAccess()) > st.cfg.TTL {
			delete(st.sessions, id)
			expired++
		}
	}
	return expired
}

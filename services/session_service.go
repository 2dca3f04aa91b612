package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/models"
)

// CatalogSource supplies the fallback catalog a new session starts with.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) ([]models.Product, error)
}

// Session is the state of one page load: its own catalog and cart.
type Session struct {
	ID      string
	Catalog *CatalogService
	Cart    *CartService

	refreshed chan struct{}
	cmd       sync.Mutex

	mu       sync.Mutex
	lastSeen time.Time
}

// Exec runs fn under the session's command lock. Commands on one session
// apply one at a time in arrival order, and a checkout keeps the lock while
// its order is in flight, so nothing reaches the cart between the payload
// being built and the cart being cleared.
func (s *Session) Exec(fn func() error) error {
	s.cmd.Lock()
	defer s.cmd.Unlock()
	return fn()
}

// WaitRefresh blocks until the background catalog refresh has finished,
// whether or not it succeeded.
func (s *Session) WaitRefresh(ctx context.Context) error {
	select {
	case <-s.refreshed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type SessionConfig struct {
	TTL          time.Duration
	FetchTimeout time.Duration
}

type SessionService struct {
	fetcher   ProductFetcher
	source    CatalogSource
	snapshot  CatalogSnapshotter
	submitter OrderSubmitter
	cfg       SessionConfig
	logger    *zap.Logger
	now       func() time.Time

	mu        sync.RWMutex
	sessions  map[string]*Session
	lastSweep time.Time
}

func NewSessionService(
	fetcher ProductFetcher,
	source CatalogSource,
	snapshot CatalogSnapshotter,
	submitter OrderSubmitter,
	cfg SessionConfig,
	logger *zap.Logger,
) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 2 * time.Hour
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	return &SessionService{
		fetcher:   fetcher,
		source:    source,
		snapshot:  snapshot,
		submitter: submitter,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// Open creates a session seeded with the fallback catalog and starts the
// network refresh in the background, so the caller can render right away.
func (s *SessionService) Open(ctx context.Context) (*Session, error) {
	s.sweepIfDue(s.now())

	id := uuid.NewString()
	logger := s.logger.With(zap.String("session_id", id))

	catalog := NewCatalogService(s.fetcher, s.snapshot, logger)
	if s.source != nil {
		products, err := s.source.LoadCatalog(ctx)
		if err != nil {
			logger.Warn("fallback catalog unavailable", zap.Error(err))
		} else if err := catalog.Seed(products); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}

	session := &Session{
		ID:        id,
		Catalog:   catalog,
		Cart:      NewCartService(catalog, s.submitter, logger),
		refreshed: make(chan struct{}),
		lastSeen:  s.now(),
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	go s.refresh(session, logger)

	logger.Info("session opened", zap.Int("fallback_products", catalog.Len()))
	return session, nil
}

func (s *SessionService) refresh(session *Session, logger *zap.Logger) {
	defer close(session.refreshed)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.FetchTimeout)
	defer cancel()

	if err := session.Catalog.Load(ctx); err != nil {
		logger.Warn("using fallback catalog", zap.Error(err))
	}
}

func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	session.touch(s.now())
	return session, nil
}

func (s *SessionService) Close(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many it
// removed.
func (s *SessionService) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(now)
}

// sweepIfDue sweeps when a full TTL has passed since the last sweep. Entry
// points that never start Run, like the serverless handler, still evict
// idle sessions this way.
func (s *SessionService) sweepIfDue(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) < s.cfg.TTL {
		return
	}
	s.sweepLocked(now)
}

func (s *SessionService) sweepLocked(now time.Time) int {
	s.lastSweep = now

	removed := 0
	for id, session := range s.sessions {
		if now.Sub(session.idleSince()) > s.cfg.TTL {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("expired sessions swept", zap.Int("removed", removed))
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *SessionService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

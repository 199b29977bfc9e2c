// FILE: internal/service/service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"chess/internal/storage"

	"github.com/lixenwraith/auth"
)

const (
	MaxGames           = 1000
	DefaultTokenTTL    = 24 * time.Hour
	IdleGameTTL        = 6 * time.Hour
	CleanupJobInterval = 10 * time.Minute
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameLimit    = errors.New("game limit reached")
	ErrSeatMismatch = errors.New("seat does not belong to this game")
)

// seatRef locates the game and side a seat token was issued for
type seatRef struct {
	gameID string
	side   string
}

// Service coordinates game sessions, seat tokens, notifications and storage
type Service struct {
	games     map[string]*Session
	seats     map[string]seatRef // seat ID → game and side
	mu        sync.RWMutex
	store     *storage.Store // nil if persistence disabled
	jwtSecret []byte
	tokenTTL  time.Duration
	idleTTL   time.Duration
	waiter    *WaitRegistry
	hub       *Hub
	now       func() time.Time
}

// New creates a service with optional storage. A zero tokenTTL uses DefaultTokenTTL
func New(store *storage.Store, jwtSecret []byte, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &Service{
		games:     make(map[string]*Session),
		seats:     make(map[string]seatRef),
		store:     store,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		idleTTL:   IdleGameTTL,
		waiter:    NewWaitRegistry(),
		hub:       NewHub(),
		now:       time.Now,
	}
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// GameCount returns the number of games held in memory
func (s *Service) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// ValidateToken verifies a seat token and returns the seat ID with its claims
func (s *Service) ValidateToken(token string) (string, map[string]any, error) {
	return auth.ValidateHS256Token(s.jwtSecret, token)
}

// RegisterWait registers a client to wait for game state changes
func (s *Service) RegisterWait(gameID string, moveCount int, ctx context.Context) <-chan struct{} {
	return s.waiter.RegisterWait(gameID, moveCount, ctx)
}

// Subscribe attaches a websocket (or any frame writer) to a game's move feed. The
// first frame is a "state" frame; moves hold the write lock, so none falls between
// it and the feed
func (s *Service) Subscribe(gameID string, sub Subscriber) (func(), error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return s.hub.Subscribe(gameID, sub, sess.snapshot().Frame("state")), nil
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(timeout time.Duration) error {
	var errs []error

	if err := s.waiter.Shutdown(timeout); err != nil {
		errs = append(errs, fmt.Errorf("wait registry: %w", err))
	}
	s.hub.Shutdown()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*Session)
	s.seats = make(map[string]seatRef)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	return errors.Join(errs...)
}

// SetIdleTTL changes how long a game may go without moves before eviction
func (s *Service) SetIdleTTL(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	s.idleTTL = ttl
	s.mu.Unlock()
}

// RunCleanupJob periodically evicts games nobody has touched within the idle TTL
func (s *Service) RunCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.RLock()
			ttl := s.idleTTL
			s.mu.RUnlock()
			if evicted := s.evictIdle(ttl); evicted > 0 {
				log.Printf("cleanup: evicted %d idle games", evicted)
			}
		}
	}
}

// evictIdle drops games idle for longer than ttl from memory. Stored history is kept
func (s *Service) evictIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	var evicted []string
	for id, sess := range s.games {
		if sess.lastActive.Before(cutoff) {
			s.forget(id, sess)
			evicted = append(evicted, id)
		}
	}
	s.mu.Unlock()

	for _, id := range evicted {
		s.waiter.RemoveGame(id)
		s.hub.CloseGame(id)
	}
	return len(evicted)
}

// forget removes a session and its seats. Caller holds s.mu
func (s *Service) forget(id string, sess *Session) {
	for _, seat := range sess.seats {
		delete(s.seats, seat.ID)
	}
	delete(s.games, id)
}

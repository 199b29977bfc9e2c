// FILE: internal/service/waiter.go
package service

import (
	"context"
	"errors"
	"sync"
	"time"
)

// WaitTimeout bounds a long poll so it returns before typical proxy timeouts
const WaitTimeout = 25 * time.Second

// WaitRegistry parks long-polling clients until a game's move count changes
type WaitRegistry struct {
	mu       sync.RWMutex
	waiters  map[string][]*waitRequest // gameID → parked clients
	shutdown chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

type waitRequest struct {
	moveCount int
	notify    chan struct{} // closed once
	once      sync.Once
	timer     *time.Timer
}

func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		waiters:  make(map[string][]*waitRequest),
		shutdown: make(chan struct{}),
	}
}

// RegisterWait parks a client that has seen moveCount moves. The returned channel
// fires on a newer move, deletion of the game, timeout or shutdown
func (w *WaitRegistry) RegisterWait(gameID string, moveCount int, ctx context.Context) <-chan struct{} {
	req := &waitRequest{
		moveCount: moveCount,
		notify:    make(chan struct{}),
	}
	req.timer = time.AfterFunc(WaitTimeout, func() { signal(req) })

	w.mu.Lock()
	w.waiters[gameID] = append(w.waiters[gameID], req)
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		select {
		case <-ctx.Done():
		case <-req.notify:
		case <-w.shutdown:
			signal(req)
		}
		req.timer.Stop()
		w.removeWaiter(gameID, req)
	}()

	return req.notify
}

// NotifyGame wakes every client of gameID that has not yet seen currentMoveCount
func (w *WaitRegistry) NotifyGame(gameID string, currentMoveCount int) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, req := range w.waiters[gameID] {
		if req.moveCount != currentMoveCount {
			signal(req)
		}
	}
}

// RemoveGame wakes and forgets every client of a deleted game
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	waitList := w.waiters[gameID]
	delete(w.waiters, gameID)
	w.mu.Unlock()

	for _, req := range waitList {
		signal(req)
	}
}

// Waiting returns the number of clients parked on gameID
func (w *WaitRegistry) Waiting(gameID string) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.waiters[gameID])
}

// Shutdown releases all parked clients and waits for their goroutines
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.once.Do(func() { close(w.shutdown) })

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return errors.New("wait registry shutdown timed out")
	}
}

// signal wakes the client at most once and never blocks
func signal(req *waitRequest) {
	req.once.Do(func() { close(req.notify) })
}

func (w *WaitRegistry) removeWaiter(gameID string, req *waitRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	waitList := w.waiters[gameID]
	for i, waiter := range waitList {
		if waiter == req {
			w.waiters[gameID] = append(waitList[:i], waitList[i+1:]...)
			break
		}
	}
	if len(w.waiters[gameID]) == 0 {
		delete(w.waiters, gameID)
	}
}

package service

import (
	"log"
	"sync"

	"chess/internal/board"
	"chess/internal/game"
)

const subscriberBuffer = 16

// Subscriber receives JSON frames. *websocket.Conn satisfies it
type Subscriber interface {
	WriteJSON(v any) error
	Close() error
}

// Frame is pushed to subscribers after every accepted move
type Frame struct {
	Type      string         `json:"type"` // "state", "move" or "closed"
	GameID    string         `json:"gameId"`
	FEN       string         `json:"fen,omitempty"`
	Turn      string         `json:"turn,omitempty"`
	State     string         `json:"state,omitempty"`
	MoveCount int            `json:"moveCount"`
	Pieces    []board.View   `json:"pieces,omitempty"`
	LastMove  *game.LastMove `json:"lastMove,omitempty"`
}

type subscription struct {
	sub    Subscriber
	send   chan Frame
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
	final  *Frame
}

// stop ends the write loop, optionally after one last frame
func (s *subscription) stop(final *Frame) {
	s.once.Do(func() {
		s.final = final
		close(s.done)
	})
}

// writeLoop is the only writer of the subscriber. It delivers frames in order and
// closes the subscriber on exit
func (s *subscription) writeLoop(gameID string) {
	defer close(s.exited)
	defer s.sub.Close()

	for {
		select {
		case f := <-s.send:
			if err := s.sub.WriteJSON(f); err != nil {
				log.Printf("hub: dropping subscriber of game %s: %v", gameID, err)
				s.stop(nil)
				return
			}
		case <-s.done:
			if s.final == nil {
				return
			}
			s.drain(gameID)
			if err := s.sub.WriteJSON(*s.final); err != nil {
				log.Printf("hub: final frame for game %s not delivered: %v", gameID, err)
			}
			return
		}
	}
}

// drain writes frames queued before the subscription was stopped
func (s *subscription) drain(gameID string) {
	for {
		select {
		case f := <-s.send:
			if err := s.sub.WriteJSON(f); err != nil {
				log.Printf("hub: dropping subscriber of game %s: %v", gameID, err)
				return
			}
		default:
			return
		}
	}
}

// Hub fans move frames out to the subscribers of each game without blocking the mover
type Hub struct {
	mu     sync.Mutex
	games  map[string]map[*subscription]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{games: make(map[string]map[*subscription]struct{})}
}

// Subscribe registers sub for gameID and returns its unsubscribe function, which
// returns once nothing will write to sub again. Initial frames are written before
// any broadcast that follows the call
func (h *Hub) Subscribe(gameID string, sub Subscriber, initial ...Frame) func() {
	s := &subscription{
		sub:    sub,
		send:   make(chan Frame, subscriberBuffer+len(initial)),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	for _, f := range initial {
		s.send <- f
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.Close()
		return func() {}
	}
	if h.games[gameID] == nil {
		h.games[gameID] = make(map[*subscription]struct{})
	}
	h.games[gameID][s] = struct{}{}
	h.mu.Unlock()

	go s.writeLoop(gameID)

	return func() {
		h.mu.Lock()
		if subs := h.games[gameID]; subs != nil {
			delete(subs, s)
			if len(subs) == 0 {
				delete(h.games, gameID)
			}
		}
		h.mu.Unlock()
		s.stop(nil)
		<-s.exited
	}
}

// Broadcast queues f for every subscriber of gameID. Slow subscribers miss frames
func (h *Hub) Broadcast(gameID string, f Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.games[gameID] {
		select {
		case s.send <- f:
		default:
		}
	}
}

// CloseGame tells subscribers the game is gone and closes their connections
func (h *Hub) CloseGame(gameID string) {
	h.mu.Lock()
	subs := h.games[gameID]
	delete(h.games, gameID)
	h.mu.Unlock()

	for s := range subs {
		s.stop(&Frame{Type: "closed", GameID: gameID})
	}
}

// Shutdown closes every subscription
func (h *Hub) Shutdown() {
	h.mu.Lock()
	games := h.games
	h.games = make(map[string]map[*subscription]struct{})
	h.closed = true
	h.mu.Unlock()

	for _, subs := range games {
		for s := range subs {
			s.stop(nil)
		}
	}
}

// hubRenderer publishes a session's moves as frames. It runs inside Game.Move with the
// service lock held, so it reads the game directly
type hubRenderer struct {
	hub     *Hub
	session *Session
}

func (r *hubRenderer) Render(pieces []board.View, last *game.LastMove) {
	g := r.session.game
	r.hub.Broadcast(r.session.ID, Frame{
		Type:      "move",
		GameID:    r.session.ID,
		FEN:       g.FEN(),
		Turn:      g.Turn().String(),
		State:     g.State().String(),
		MoveCount: g.MoveCount(),
		Pieces:    pieces,
		LastMove:  last,
	})
}

// Frame converts a snapshot into a frame of the given type
func (snap Snapshot) Frame(kind string) Frame {
	return Frame{
		Type:      kind,
		GameID:    snap.GameID,
		FEN:       snap.FEN,
		Turn:      snap.Turn.String(),
		State:     snap.State.String(),
		MoveCount: snap.MoveCount,
		Pieces:    snap.Pieces,
		LastMove:  snap.LastMove,
	}
}

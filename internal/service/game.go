// FILE: internal/service/game.go
package service

import (
	"fmt"
	"time"

	"chess/internal/board"
	"chess/internal/core"
	"chess/internal/game"
	"chess/internal/movement"
	"chess/internal/storage"

	"github.com/google/uuid"
)

// Session is one hosted game with the seats handed out for it
type Session struct {
	ID          string
	InitialFEN  string
	InitialTurn core.Side
	CreatedAt   time.Time
	seats       map[core.Side]*core.Seat
	game        *game.Game
	lastActive  time.Time
}

// Snapshot is a copy of a session's state taken under the service lock
type Snapshot struct {
	GameID    string
	FEN       string
	Board     string // ASCII
	Turn      core.Side
	State     core.State
	MoveCount int
	InCheck   bool // side to move is attacked
	Pieces    []board.View
	LastMove  *game.LastMove
	Mated     *board.View
}

func (sess *Session) snapshot() Snapshot {
	g := sess.game
	return Snapshot{
		GameID:    sess.ID,
		FEN:       g.FEN(),
		Board:     g.ASCII(),
		Turn:      g.Turn(),
		State:     g.State(),
		MoveCount: g.MoveCount(),
		InCheck:   g.InCheck(g.Turn()),
		Pieces:    g.Pieces(),
		LastMove:  g.LastMove(),
		Mated:     g.Mated(),
	}
}

// CreateGame hosts a new game on the given position and issues one seat token per side
func (s *Service) CreateGame(b *board.Board, turn core.Side) (Snapshot, core.SeatsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.games) >= MaxGames {
		return Snapshot{}, core.SeatsResponse{}, fmt.Errorf("%w: %d games", ErrGameLimit, MaxGames)
	}

	now := s.now().UTC()
	sess := &Session{
		ID:          s.generateGameID(),
		InitialFEN:  b.Placement(),
		InitialTurn: turn,
		CreatedAt:   now,
		seats:       make(map[core.Side]*core.Seat),
		game:        game.New(b, turn),
		lastActive:  now,
	}
	sess.InitialTurn = sess.game.Turn()

	seats, err := s.issueSeats(sess)
	if err != nil {
		return Snapshot{}, core.SeatsResponse{}, err
	}

	sess.game.SetRenderer(&hubRenderer{hub: s.hub, session: sess})
	s.games[sess.ID] = sess
	for side, seat := range sess.seats {
		s.seats[seat.ID] = seatRef{gameID: sess.ID, side: side.String()}
	}

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:       sess.ID,
			InitialFEN:   sess.InitialFEN,
			InitialTurn:  sess.InitialTurn.String(),
			StartTimeUTC: now,
		})
	}

	return sess.snapshot(), seats, nil
}

// GetGame returns the current state of a game
func (s *Service) GetGame(gameID string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.games[gameID]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return sess.snapshot(), nil
}

// Candidates lists the moves of the piece on sq
func (s *Service) Candidates(gameID string, sq core.Square) (board.View, []movement.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.games[gameID]
	if !ok {
		return board.View{}, nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return sess.game.Candidates(sq.Row, sq.Column)
}

// ApplyMove plays a move on behalf of the seat holder
func (s *Service) ApplyMove(gameID, seatID string, from, to core.Square, opts game.MoveOptions) (Snapshot, error) {
	s.mu.Lock()

	sess, ok := s.games[gameID]
	if !ok {
		s.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	ref, ok := s.seats[seatID]
	if !ok || ref.gameID != gameID {
		s.mu.Unlock()
		return Snapshot{}, ErrSeatMismatch
	}

	g := sess.game
	if !g.State().Over() && ref.side != g.Turn().String() {
		s.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: %s to move", game.ErrWrongTurn, g.Turn().Name())
	}

	last, err := g.Move(from.Row, from.Column, to.Row, to.Column, opts)
	if err != nil {
		s.mu.Unlock()
		return Snapshot{}, err
	}

	sess.lastActive = s.now().UTC()
	snap := sess.snapshot()

	if s.store != nil {
		s.store.RecordMove(moveRecord(gameID, snap, last, sess.lastActive))
	}
	s.mu.Unlock()

	s.waiter.NotifyGame(gameID, snap.MoveCount)
	return snap, nil
}

// DeleteGame removes a game from memory and storage
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	sess, ok := s.games[gameID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	s.forget(gameID, sess)
	if s.store != nil {
		s.store.DeleteGame(gameID)
	}
	s.mu.Unlock()

	s.waiter.RemoveGame(gameID)
	s.hub.CloseGame(gameID)
	return nil
}

// generateGameID creates a new unique game ID. Caller holds s.mu
func (s *Service) generateGameID() string {
	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

func moveRecord(gameID string, snap Snapshot, last *game.LastMove, at time.Time) storage.MoveRecord {
	record := storage.MoveRecord{
		GameID:       gameID,
		MoveNumber:   snap.MoveCount,
		FromSquare:   last.From().String(),
		ToSquare:     last.To().String(),
		Side:         last.Side.String(),
		FENAfterMove: snap.FEN,
		MoveTimeUTC:  at,
	}
	if last.CapturedPiece != nil {
		record.Captured = last.CapturedPiece.Kind.String()
	}
	if last.Promoted != core.KindNone {
		record.Promotion = last.Promoted.String()
	}
	if last.Hook != nil {
		record.Hook = last.Hook.RookFrom.String() + last.Hook.RookTo.String()
	}
	return record
}

package service

import (
	"fmt"

	"chess/internal/core"

	"github.com/lixenwraith/auth"
)

// issueSeats creates both seats of a session and signs a bearer token for each.
// The token subject is the seat ID; game and side ride along as claims for clients
func (s *Service) issueSeats(sess *Session) (core.SeatsResponse, error) {
	var resp core.SeatsResponse
	for _, side := range []core.Side{core.SideWhite, core.SideBlack} {
		seat := core.NewSeat(side)
		claims := map[string]any{
			"game": sess.ID,
			"side": side.String(),
		}
		token, err := auth.GenerateHS256Token(s.jwtSecret, seat.ID, claims, s.tokenTTL)
		if err != nil {
			return core.SeatsResponse{}, fmt.Errorf("failed to sign %s seat token: %w", side.Name(), err)
		}

		sess.seats[side] = seat
		st := core.SeatToken{SeatID: seat.ID, Token: token}
		if side == core.SideWhite {
			resp.White = st
		} else {
			resp.Black = st
		}
	}
	return resp, nil
}

// SeatSide reports which side of which game a seat plays
func (s *Service) SeatSide(seatID string) (gameID string, side core.Side, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, ok := s.seats[seatID]
	if !ok {
		return "", 0, false
	}
	side, err := core.ParseSide(ref.side)
	if err != nil {
		return "", 0, false
	}
	return ref.gameID, side, true
}

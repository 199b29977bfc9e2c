package commands

import (
	"io"

	"chess/internal/client/api"
	"chess/internal/core"
)

// Session is the client-side state shared by all commands
type Session struct {
	Client        *api.Client
	Out           io.Writer
	Verbose       bool
	CurrentGame   string
	Seats         *core.SeatsResponse // seat tokens, set when this client created the game
	PlayerColor   string              // "w", "b" or "" when only watching
	LastMoveCount int
	GameState     *core.GameResponse
}

// UseSeat switches the bearer token to the given side's seat
func (s *Session) UseSeat(side string) bool {
	if s.Seats == nil {
		return false
	}
	switch side {
	case "w":
		s.Client.SetToken(s.Seats.White.Token)
	case "b":
		s.Client.SetToken(s.Seats.Black.Token)
	default:
		return false
	}
	s.PlayerColor = side
	return true
}

func (s *Session) setGame(resp *core.GameResponse) {
	s.CurrentGame = resp.GameID
	s.LastMoveCount = resp.MoveCount
	s.GameState = resp
}

func (s *Session) clearGame() {
	s.CurrentGame = ""
	s.Seats = nil
	s.PlayerColor = ""
	s.LastMoveCount = 0
	s.GameState = nil
	s.Client.SetToken("")
}

// FILE: internal/processor/command.go
package processor

import (
	"chess/internal/core"
)

// CommandType defines the type of command being executed
type CommandType int

const (
	CmdCreateGame CommandType = iota
	CmdGetGame
	CmdGetBoard
	CmdGetCandidates
	CmdMakeMove
	CmdDeleteGame
)

// Command is a unified structure for all processor operations
type Command struct {
	Type   CommandType
	SeatID string // subject of the bearer token, required for moves
	GameID string
	Args   any // Command-specific arguments
}

// ProcessorResponse wraps the response with metadata
type ProcessorResponse struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   *core.ErrorResponse `json:"error,omitempty"`
}

func NewCreateGameCommand(req core.CreateGameRequest) Command {
	return Command{
		Type: CmdCreateGame,
		Args: req,
	}
}

func NewGetGameCommand(gameID string) Command {
	return Command{
		Type:   CmdGetGame,
		GameID: gameID,
	}
}

func NewGetBoardCommand(gameID string) Command {
	return Command{
		Type:   CmdGetBoard,
		GameID: gameID,
	}
}

// NewGetCandidatesCommand lists the moves of the piece on an algebraic square such as "e2"
func NewGetCandidatesCommand(gameID, square string) Command {
	return Command{
		Type:   CmdGetCandidates,
		GameID: gameID,
		Args:   square,
	}
}

func NewMakeMoveCommand(gameID, seatID string, req core.MoveRequest) Command {
	return Command{
		Type:   CmdMakeMove,
		SeatID: seatID,
		GameID: gameID,
		Args:   req,
	}
}

func NewDeleteGameCommand(gameID string) Command {
	return Command{
		Type:   CmdDeleteGame,
		GameID: gameID,
	}
}

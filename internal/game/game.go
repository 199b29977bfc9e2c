// FILE: internal/game/game.go
package game

import (
	"fmt"

	"chess/internal/board"
	"chess/internal/check"
	"chess/internal/core"
	"chess/internal/movement"
)

// MoveOptions are per-call settings of Game.Move
type MoveOptions struct {
	PromotionKind core.PieceKind // kind a pawn becomes on the far row, queen when unset
	DisableHook   bool           // king still makes its hook move, the rook stays put
}

func (o MoveOptions) promotion() (core.PieceKind, error) {
	kind := o.PromotionKind
	if kind == core.KindNone {
		return core.KindQueen, nil
	}
	if !kind.Valid() || kind == core.KindPawn {
		return core.KindNone, fmt.Errorf("%w: %s", ErrInvalidPromotionKind, kind)
	}
	return kind, nil
}

// LastMove describes the most recent accepted move for renderers
type LastMove struct {
	Piece         board.View     `json:"piece"` // moved piece after the move
	Side          core.Side      `json:"side"`
	StartRow      int            `json:"startRow"`
	StartColumn   int            `json:"startColumn"`
	EndRow        int            `json:"endRow"`
	EndColumn     int            `json:"endColumn"`
	Captured      bool           `json:"captured"`
	CapturedPiece *board.View    `json:"capturedPiece,omitempty"`
	Promoted      core.PieceKind `json:"promoted,omitempty"`
	Hook          *movement.Hook `json:"hook,omitempty"`
}

func (m *LastMove) From() core.Square {
	return core.Square{Row: m.StartRow, Column: m.StartColumn}
}

func (m *LastMove) To() core.Square {
	return core.Square{Row: m.EndRow, Column: m.EndColumn}
}

// Renderer draws the pieces and highlights the last move. It must not call back into the game
type Renderer interface {
	Render(pieces []board.View, last *LastMove)
}

// Game owns a board and the side to move. It is not safe for concurrent use
type Game struct {
	board     *board.Board
	turn      core.Side
	state     core.State
	lastMove  *LastMove
	moveCount int
	mated     *board.View
	renderer  Renderer
}

func New(b *board.Board, turn core.Side) *Game {
	if !turn.Valid() {
		turn = core.SideWhite
	}
	g := &Game{
		board: b,
		turn:  turn,
		state: core.StateOngoing,
	}
	// A position may be decided before anyone moves
	if mated := check.Evaluate(b); mated != nil {
		g.mated = mated
		g.state = core.WinFor(mated.Side.Opponent())
	}
	return g
}

// NewStandard starts a game from the starting position with white to move
func NewStandard() *Game {
	return New(board.NewStandard(), core.SideWhite)
}

// FromFEN starts a game from a FEN placement and optional side to move
func FromFEN(fen string) (*Game, error) {
	b, turn, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return New(b, turn), nil
}

func (g *Game) SetRenderer(r Renderer) {
	g.renderer = r
}

// Render redraws the current position through the renderer, if any
func (g *Game) Render() {
	if g.renderer != nil {
		g.renderer.Render(g.board.Pieces(), g.lastMove)
	}
}

func (g *Game) Turn() core.Side {
	return g.turn
}

func (g *Game) State() core.State {
	return g.state
}

func (g *Game) LastMove() *LastMove {
	return g.lastMove
}

func (g *Game) MoveCount() int {
	return g.moveCount
}

// Mated returns the checkmated king once the game has been decided by checkmate
func (g *Game) Mated() *board.View {
	return g.mated
}

func (g *Game) Pieces() []board.View {
	return g.board.Pieces()
}

func (g *Game) FEN() string {
	return g.board.FEN(g.turn)
}

func (g *Game) ASCII() string {
	return g.board.ToASCII()
}

// InCheck reports whether side's king is attacked
func (g *Game) InCheck(side core.Side) bool {
	return check.InCheck(g.board, side)
}

// Candidates returns the moves of the piece on the square regardless of whose turn it is
func (g *Game) Candidates(row, column int) (board.View, []movement.Candidate, error) {
	if !core.InRange(row, column) {
		return board.View{}, nil, fmt.Errorf("%w: (%d,%d)", ErrInvalidSquare, row, column)
	}
	piece := g.board.Find(row, column)
	if piece == nil {
		return board.View{}, nil, &EmptySquareError{Row: row, Column: column}
	}
	return piece.View(), movement.For(g.board, piece), nil
}

// Move validates and applies a move of the piece on the start square. A rejected
// move leaves the game unchanged
func (g *Game) Move(startRow, startColumn, endRow, endColumn int, opts MoveOptions) (*LastMove, error) {
	promotion, err := opts.promotion()
	if err != nil {
		return nil, err
	}

	if !core.InRange(startRow, startColumn) || !core.InRange(endRow, endColumn) {
		return nil, fmt.Errorf("%w: (%d,%d) to (%d,%d)", ErrInvalidSquare, startRow, startColumn, endRow, endColumn)
	}

	if g.state.Over() {
		return nil, fmt.Errorf("%w: %s", ErrGameOver, g.state)
	}

	piece := g.board.Find(startRow, startColumn)
	if piece == nil {
		return nil, &EmptySquareError{Row: startRow, Column: startColumn}
	}

	if piece.Side != g.turn {
		return nil, fmt.Errorf("%w: %s to move", ErrWrongTurn, g.turn.Name())
	}

	movementData, ok := movement.Match(movement.For(g.board, piece), endRow, endColumn)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot reach %s", ErrIllegalMove, piece.View(),
			core.Square{Row: endRow, Column: endColumn})
	}

	result, _ := g.board.Move(startRow, startColumn, endRow, endColumn)

	hook := movementData.Hook
	if opts.DisableHook {
		hook = nil
	}
	if hook != nil {
		g.board.Move(hook.RookFrom.Row, hook.RookFrom.Column, hook.RookTo.Row, hook.RookTo.Column)
	}

	last := &LastMove{
		Side:          piece.Side,
		StartRow:      startRow,
		StartColumn:   startColumn,
		EndRow:        endRow,
		EndColumn:     endColumn,
		Captured:      result.Captured,
		CapturedPiece: result.CapturedPiece,
		Hook:          hook,
	}

	if piece.Kind == core.KindPawn && piece.Row == piece.Side.FarRow() {
		piece.Kind = promotion
		last.Promoted = promotion
	}
	last.Piece = piece.View()

	g.lastMove = last
	g.moveCount++
	g.turn = g.turn.Opponent()

	if result.CapturedPiece != nil && result.CapturedPiece.Kind == core.KindKing {
		g.state = core.WinFor(piece.Side)
	} else if mated := check.Evaluate(g.board); mated != nil {
		g.mated = mated
		g.state = core.WinFor(mated.Side.Opponent())
	}

	g.Render()
	return last, nil
}

// Package movement enumerates the destination squares a piece may reach.
// All functions are pure: neither the position nor the piece is modified
package movement

import (
	"chess/internal/board"
	"chess/internal/core"
)

// maxRay is the longest slide on an 8x8 board, used as the step count for sliders
const maxRay = 8

// Position is the read-only square lookup the engine works against. *board.Board satisfies it
type Position interface {
	Find(row, column int) *board.Piece
}

// Hook describes the rook relocation that accompanies a hook (castling) move
type Hook struct {
	RookFrom core.Square `json:"rookFrom"`
	RookTo   core.Square `json:"rookTo"`
}

// Candidate is one reachable destination. Piece is a copy of the occupant being
// captured and is nil for a move to an empty square
type Candidate struct {
	Row     int         `json:"row"`
	Column  int         `json:"column"`
	Side    core.Side   `json:"side"`
	Capture bool        `json:"capture"`
	Piece   *board.View `json:"piece,omitempty"`
	Hook    *Hook       `json:"hook,omitempty"`
}

func (c Candidate) Square() core.Square {
	return core.Square{Row: c.Row, Column: c.Column}
}

type direction struct {
	dRow, dColumn int
}

var (
	orthogonal = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = []direction{{1, -1}, {1, 1}, {-1, -1}, {-1, 1}}
	allAround  = append(append([]direction{}, orthogonal...), diagonal...)

	knightOffsets = []direction{
		{2, -1}, {2, 1}, {1, -2}, {1, 2},
		{-1, -2}, {-1, 2}, {-2, -1}, {-2, 1},
	}
)

// For returns the candidates of p on pos in a stable order
func For(pos Position, p *board.Piece) []Candidate {
	from := p.Square()

	switch p.Kind {
	case core.KindPawn:
		return pawn(pos, p)
	case core.KindKnight:
		return jumps(pos, p.Side, from, knightOffsets)
	case core.KindBishop:
		return rays(pos, p.Side, from, diagonal, maxRay)
	case core.KindRook:
		return rays(pos, p.Side, from, orthogonal, maxRay)
	case core.KindQueen:
		return rays(pos, p.Side, from, allAround, maxRay)
	case core.KindKing:
		return king(pos, p)
	default:
		return nil
	}
}

// Match returns the candidate landing on the given square
func Match(candidates []Candidate, row, column int) (Candidate, bool) {
	for _, c := range candidates {
		if c.Row == row && c.Column == column {
			return c, true
		}
	}
	return Candidate{}, false
}

// find resolves a single square for a mover of side. stop is true when a ray
// cannot continue past the square
func find(pos Position, side core.Side, row, column int) (c *Candidate, stop bool) {
	if !core.InRange(row, column) {
		return nil, true
	}

	occupant := pos.Find(row, column)
	if occupant == nil {
		return &Candidate{Row: row, Column: column, Side: side}, false
	}
	if !occupant.IsAdversary(side) {
		return nil, true
	}

	v := occupant.View()
	return &Candidate{Row: row, Column: column, Side: side, Capture: true, Piece: &v}, true
}

// walk steps from the square in one direction at most count times
func walk(pos Position, side core.Side, from core.Square, d direction, count int) []Candidate {
	var result []Candidate
	for i := 1; i <= count; i++ {
		c, stop := find(pos, side, from.Row+d.dRow*i, from.Column+d.dColumn*i)
		if c != nil {
			result = append(result, *c)
		}
		if stop {
			break
		}
	}
	return result
}

func rays(pos Position, side core.Side, from core.Square, dirs []direction, count int) []Candidate {
	var result []Candidate
	for _, d := range dirs {
		result = append(result, walk(pos, side, from, d, count)...)
	}
	return result
}

func jumps(pos Position, side core.Side, from core.Square, offsets []direction) []Candidate {
	var result []Candidate
	for _, d := range offsets {
		if c, _ := find(pos, side, from.Row+d.dRow, from.Column+d.dColumn); c != nil {
			result = append(result, *c)
		}
	}
	return result
}

// pawn advances without capturing and captures only diagonally
func pawn(pos Position, p *board.Piece) []Candidate {
	from := p.Square()
	forward := p.Side.Forward()

	count := 1
	if p.Unmoved {
		count = 2
	}

	var result []Candidate
	for i := 1; i <= count; i++ {
		sq := from.Offset(forward*i, 0)
		if !sq.Valid() || pos.Find(sq.Row, sq.Column) != nil {
			break
		}
		result = append(result, Candidate{Row: sq.Row, Column: sq.Column, Side: p.Side})
	}

	for _, dColumn := range []int{-1, 1} {
		c, _ := find(pos, p.Side, from.Row+forward, from.Column+dColumn)
		if c != nil && c.Capture {
			result = append(result, *c)
		}
	}

	return result
}

// king takes one step in any direction onto a square that is not attacked,
// followed by any hook moves
func king(pos Position, p *board.Piece) []Candidate {
	from := p.Square()
	without := vacate(pos, from)

	var result []Candidate
	for _, c := range rays(pos, p.Side, from, allAround, 1) {
		if IsSquareAttacked(without, c.Square(), p.Side) != nil {
			continue
		}
		result = append(result, c)
	}

	return append(result, hooks(pos, p)...)
}

// vacated hides one square of a position, used to look at a square as if the
// piece on it had already left
type vacated struct {
	Position
	square core.Square
}

func vacate(pos Position, sq core.Square) Position {
	return vacated{Position: pos, square: sq}
}

func (v vacated) Find(row, column int) *board.Piece {
	if row == v.square.Row && column == v.square.Column {
		return nil
	}
	return v.Position.Find(row, column)
}

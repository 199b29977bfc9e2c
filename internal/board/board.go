// FILE: internal/board/board.go
package board

import (
	"errors"
	"fmt"
	"strings"

	"chess/internal/core"
)

var (
	ErrOffBoard = errors.New("square is off the board")
	ErrOccupied = errors.New("square is occupied")
)

// Board is the ordered collection of live pieces. Lookups return the first match,
// and Add keeps at most one piece on any square
type Board struct {
	pieces []*Piece
	nextID int
}

// MoveResult reports the side effects of Board.Move
type MoveResult struct {
	Captured      bool
	CapturedPiece *View
}

func New() *Board {
	return &Board{}
}

// NewStandard returns a board in the starting position
func NewStandard() *Board {
	b := New()
	b.Build()
	return b
}

// Build populates the 32 pieces of the starting position
func (b *Board) Build() {
	b.addInitialPieces(core.SideWhite, 2, 1)
	b.addInitialPieces(core.SideBlack, 7, 8)
}

func (b *Board) addInitialPieces(side core.Side, frontline, backline int) {
	for column := core.MinIndex; column <= core.MaxIndex; column++ {
		b.push(core.KindPawn, side, frontline, column)
	}
	b.push(core.KindRook, side, backline, 1)
	b.push(core.KindRook, side, backline, 8)
	b.push(core.KindBishop, side, backline, 3)
	b.push(core.KindBishop, side, backline, 6)
	b.push(core.KindKnight, side, backline, 2)
	b.push(core.KindKnight, side, backline, 7)
	b.push(core.KindKing, side, backline, 4)
	b.push(core.KindQueen, side, backline, 5)
}

func (b *Board) push(kind core.PieceKind, side core.Side, row, column int) *Piece {
	b.nextID++
	p := &Piece{
		ID:      b.nextID,
		Kind:    kind,
		Side:    side,
		Row:     row,
		Column:  column,
		Unmoved: true,
	}
	b.pieces = append(b.pieces, p)
	return p
}

// Add places a new, never-moved piece on an empty square
func (b *Board) Add(kind core.PieceKind, side core.Side, row, column int) (*Piece, error) {
	if !core.InRange(row, column) {
		return nil, fmt.Errorf("add %s at (%d,%d): %w", kind, row, column, ErrOffBoard)
	}
	if !kind.Valid() || !side.Valid() {
		return nil, fmt.Errorf("add piece: invalid kind %d or side %d", kind, side)
	}
	if b.Has(row, column) {
		return nil, fmt.Errorf("add %s at %s: %w", kind, core.Square{Row: row, Column: column}, ErrOccupied)
	}
	return b.push(kind, side, row, column), nil
}

// Find returns the piece on the square, or nil
func (b *Board) Find(row, column int) *Piece {
	if i := b.index(row, column); i >= 0 {
		return b.pieces[i]
	}
	return nil
}

func (b *Board) Has(row, column int) bool {
	return b.index(row, column) >= 0
}

// HasAdversary returns the occupant only when it is not on side
func (b *Board) HasAdversary(row, column int, side core.Side) *Piece {
	p := b.Find(row, column)
	if p == nil || !p.IsAdversary(side) {
		return nil
	}
	return p
}

// Capture removes the occupant of the square and reports whether there was one
func (b *Board) Capture(row, column int) bool {
	i := b.index(row, column)
	if i < 0 {
		return false
	}
	b.pieces = append(b.pieces[:i], b.pieces[i+1:]...)
	return true
}

// Move relocates the piece on the start square, removing any occupant of the end square.
// The caller is responsible for legality. ok is false when the start square is empty
func (b *Board) Move(startRow, startColumn, endRow, endColumn int) (result MoveResult, ok bool) {
	piece := b.Find(startRow, startColumn)
	if piece == nil {
		return MoveResult{}, false
	}

	if target := b.Find(endRow, endColumn); target != nil && target != piece {
		v := target.View()
		result.CapturedPiece = &v
		result.Captured = b.Capture(endRow, endColumn)
	}

	piece.Row = endRow
	piece.Column = endColumn
	piece.Unmoved = false

	return result, true
}

// Pieces returns copies of all live pieces in insertion order
func (b *Board) Pieces() []View {
	views := make([]View, 0, len(b.pieces))
	for _, p := range b.pieces {
		views = append(views, p.View())
	}
	return views
}

// Each calls fn for every live piece in insertion order. fn must not add or remove pieces
func (b *Board) Each(fn func(p *Piece)) {
	for _, p := range b.pieces {
		fn(p)
	}
}

// Kings returns the kings on the board in insertion order
func (b *Board) Kings() []*Piece {
	var kings []*Piece
	for _, p := range b.pieces {
		if p.Kind == core.KindKing {
			kings = append(kings, p)
		}
	}
	return kings
}

func (b *Board) index(row, column int) int {
	for i, p := range b.pieces {
		if p.Row == row && p.Column == column {
			return i
		}
	}
	return -1
}

// ToASCII creates an ASCII representation of the board, rank 8 on top
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for row := core.MaxIndex; row >= core.MinIndex; row-- {
		sb.WriteString(fmt.Sprintf("%d ", row))
		for column := core.MinIndex; column <= core.MaxIndex; column++ {
			if p := b.Find(row, column); p == nil {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", p.Kind.Letter(p.Side)))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", row))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}

package board

import (
	"fmt"

	"chess/internal/core"
)

// Piece is a live entity owned by a Board. It is mutated in place when moved or promoted
type Piece struct {
	ID      int
	Kind    core.PieceKind
	Side    core.Side
	Row     int
	Column  int
	Unmoved bool // true until the piece makes its first move
}

// View is a read-only copy of a piece at the time it was taken
type View struct {
	ID      int            `json:"id"`
	Kind    core.PieceKind `json:"kind"`
	Side    core.Side      `json:"side"`
	Row     int            `json:"row"`
	Column  int            `json:"column"`
	Unmoved bool           `json:"unmoved"`
}

func (p *Piece) Square() core.Square {
	return core.Square{Row: p.Row, Column: p.Column}
}

// IsAdversary reports whether the piece belongs to the side opposing side
func (p *Piece) IsAdversary(side core.Side) bool {
	return p.Side != side
}

func (p *Piece) View() View {
	return View{
		ID:      p.ID,
		Kind:    p.Kind,
		Side:    p.Side,
		Row:     p.Row,
		Column:  p.Column,
		Unmoved: p.Unmoved,
	}
}

// Name mirrors the asset naming of renderers, e.g. "whiteKnight"
func (p *Piece) Name() string {
	return p.View().Name()
}

func (v View) Square() core.Square {
	return core.Square{Row: v.Row, Column: v.Column}
}

func (v View) Name() string {
	side := "white"
	if v.Side == core.SideBlack {
		side = "black"
	}
	kind := v.Kind.String()
	return fmt.Sprintf("%s%c%s", side, kind[0]-('a'-'A'), kind[1:])
}

func (v View) String() string {
	return fmt.Sprintf("%c@%s", v.Kind.Letter(v.Side), v.Square())
}

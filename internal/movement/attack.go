package movement

import (
	"chess/internal/core"
)

// IsSquareAttacked returns the first adversary of side able to capture on sq,
// or nil when the square is safe for a piece of side.
// The square itself is never inspected, only the pieces that could reach it
func IsSquareAttacked(pos Position, sq core.Square, side core.Side) *Candidate {
	found := attackers(pos, sq, side, true)
	if len(found) == 0 {
		return nil
	}
	return &found[0]
}

// Attackers returns every adversary of side able to capture on sq, searched in order:
// rook or queen along ranks and files, bishop or queen along diagonals, knight, pawn, king
func Attackers(pos Position, sq core.Square, side core.Side) []Candidate {
	return attackers(pos, sq, side, false)
}

func attackers(pos Position, sq core.Square, side core.Side, first bool) []Candidate {
	if !sq.Valid() {
		return nil
	}

	var found []Candidate
	collect := func(candidates []Candidate, kinds ...core.PieceKind) bool {
		for _, c := range candidates {
			if c.Piece == nil {
				continue
			}
			for _, k := range kinds {
				if c.Piece.Kind == k {
					found = append(found, c)
					if first {
						return true
					}
				}
			}
		}
		return false
	}

	if collect(rays(pos, side, sq, orthogonal, maxRay), core.KindRook, core.KindQueen) {
		return found
	}
	if collect(rays(pos, side, sq, diagonal, maxRay), core.KindBishop, core.KindQueen) {
		return found
	}
	if collect(jumps(pos, side, sq, knightOffsets), core.KindKnight) {
		return found
	}

	// Enemy pawns capture toward us, so they sit one row ahead in our forward direction
	forward := side.Forward()
	pawnSquares := []direction{{forward, -1}, {forward, 1}}
	if collect(jumps(pos, side, sq, pawnSquares), core.KindPawn) {
		return found
	}

	collect(rays(pos, side, sq, allAround, 1), core.KindKing)
	return found
}

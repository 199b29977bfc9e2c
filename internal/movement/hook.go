package movement

import (
	"chess/internal/board"
	"chess/internal/core"
)

// hooks returns the castling-style moves of an unmoved king. The king travels two
// columns toward an unmoved allied rook on its row and the rook lands on the square
// the king crossed. The king may not start, cross or land on an attacked square,
// and every square between king and rook must be empty
func hooks(pos Position, k *board.Piece) []Candidate {
	if !k.Unmoved {
		return nil
	}

	from := k.Square()
	if IsSquareAttacked(pos, from, k.Side) != nil {
		return nil
	}
	without := vacate(pos, from)

	var result []Candidate
	for _, dColumn := range []int{-1, 1} {
		column := from.Column + dColumn
		for core.InRange(from.Row, column) && pos.Find(from.Row, column) == nil {
			column += dColumn
		}
		if !core.InRange(from.Row, column) {
			continue
		}

		rook := pos.Find(from.Row, column)
		if rook.Kind != core.KindRook || rook.Side != k.Side || !rook.Unmoved {
			continue
		}
		// The king needs two free squares before the rook
		if abs(column-from.Column) < 3 {
			continue
		}

		transit := from.Offset(0, dColumn)
		dest := from.Offset(0, 2*dColumn)
		if IsSquareAttacked(without, transit, k.Side) != nil ||
			IsSquareAttacked(without, dest, k.Side) != nil {
			continue
		}

		result = append(result, Candidate{
			Row:    dest.Row,
			Column: dest.Column,
			Side:   k.Side,
			Hook: &Hook{
				RookFrom: rook.Square(),
				RookTo:   transit,
			},
		})
	}

	return result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Package check answers whether a king is attacked and whether the attack can be escaped
package check

import (
	"chess/internal/board"
	"chess/internal/core"
	"chess/internal/movement"
)

// InCheck reports whether any king of side is attacked
func InCheck(b *board.Board, side core.Side) bool {
	for _, k := range b.Kings() {
		if k.Side == side && movement.IsSquareAttacked(b, k.Square(), side) != nil {
			return true
		}
	}
	return false
}

// Evaluate returns a copy of the first checkmated king in board order, or nil.
//
// A king is not mated when it has a legal move of its own, when an allied piece
// stands next to it, or when every piece attacking it can be captured by one of
// its allies. Pieces are never mutated
func Evaluate(b *board.Board) *board.View {
	for _, k := range b.Kings() {
		if mated(b, k) {
			v := k.View()
			return &v
		}
	}
	return nil
}

func mated(b *board.Board, k *board.Piece) bool {
	if len(movement.For(b, k)) > 0 {
		return false
	}

	if hasAdjacentAlly(b, k) {
		return false
	}

	for _, attacker := range movement.Attackers(b, k.Square(), k.Side) {
		if !capturable(b, attacker, k) {
			return true
		}
	}
	return false
}

func hasAdjacentAlly(b *board.Board, k *board.Piece) bool {
	for dRow := -1; dRow <= 1; dRow++ {
		for dColumn := -1; dColumn <= 1; dColumn++ {
			if dRow == 0 && dColumn == 0 {
				continue
			}
			if p := b.Find(k.Row+dRow, k.Column+dColumn); p != nil && p.Side == k.Side {
				return true
			}
		}
	}
	return false
}

// capturable reports whether an ally of k other than k itself can take the attacker.
// Captures by the king are already covered by its own move list
func capturable(b *board.Board, attacker movement.Candidate, k *board.Piece) bool {
	for _, defender := range movement.Attackers(b, attacker.Piece.Square(), attacker.Piece.Side) {
		if defender.Piece.ID != k.ID {
			return true
		}
	}
	return false
}

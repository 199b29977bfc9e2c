package board

import (
	"fmt"
	"strings"

	"chess/internal/core"
)

// StartingFEN is the placement produced by Build: kings on the d-file, queens on e
const StartingFEN = "rnbkqbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBKQBNR w"

// ParseFEN reads a FEN piece placement, optionally followed by the side to move.
// Any further FEN fields are ignored. White moves first when the side is omitted.
// Pawns on their home row, and kings and rooks on their starting squares, are
// treated as never moved
func ParseFEN(fen string) (*Board, core.Side, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, 0, fmt.Errorf("invalid FEN: empty")
	}

	b := New()
	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, 0, fmt.Errorf("invalid FEN: expected 8 ranks, got %d", len(ranks))
	}

	for i, rank := range ranks {
		row := core.MaxIndex - i
		column := core.MinIndex
		for j := 0; j < len(rank); j++ {
			ch := rank[j]
			if ch >= '1' && ch <= '8' {
				column += int(ch - '0')
				continue
			}
			if column > core.MaxIndex {
				return nil, 0, fmt.Errorf("invalid FEN: too many pieces in rank %d", row)
			}
			kind, side, ok := core.KindFromLetter(ch)
			if !ok {
				return nil, 0, fmt.Errorf("invalid FEN: unknown piece %q in rank %d", ch, row)
			}
			p := b.push(kind, side, row, column)
			p.Unmoved = onHomeSquare(p)
			column++
		}
		if column != core.MaxIndex+1 {
			return nil, 0, fmt.Errorf("invalid FEN: rank %d has %d files", row, column-1)
		}
	}

	turn := core.SideWhite
	if len(parts) > 1 {
		if len(parts[1]) != 1 {
			return nil, 0, fmt.Errorf("invalid FEN: turn must be 'w' or 'b'")
		}
		side, err := core.ParseSide(parts[1])
		if err != nil {
			return nil, 0, fmt.Errorf("invalid FEN: turn must be 'w' or 'b'")
		}
		turn = side
	}

	return b, turn, nil
}

func onHomeSquare(p *Piece) bool {
	backline := 1
	frontline := 2
	if p.Side == core.SideBlack {
		backline, frontline = 8, 7
	}
	switch p.Kind {
	case core.KindPawn:
		return p.Row == frontline
	case core.KindKing:
		return p.Row == backline && p.Column == 4
	case core.KindRook:
		return p.Row == backline && (p.Column == 1 || p.Column == 8)
	default:
		return false
	}
}

// Placement encodes the board as the piece-placement field of a FEN string
func (b *Board) Placement() string {
	var sb strings.Builder
	for row := core.MaxIndex; row >= core.MinIndex; row-- {
		empty := 0
		for column := core.MinIndex; column <= core.MaxIndex; column++ {
			p := b.Find(row, column)
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Kind.Letter(p.Side))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row > core.MinIndex {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// FEN returns the placement followed by the side to move
func (b *Board) FEN(turn core.Side) string {
	return b.Placement() + " " + turn.String()
}

// FILE: internal/core/core.go
package core

import "fmt"

type State int

const (
	StateOngoing State = iota
	StateWhiteWins
	StateBlackWins
)

func (s State) String() string {
	switch s {
	case StateWhiteWins:
		return "white wins"
	case StateBlackWins:
		return "black wins"
	case StateOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// Over reports whether the game has a winner
func (s State) Over() bool {
	return s == StateWhiteWins || s == StateBlackWins
}

// WinFor returns the terminal state in which side has won
func WinFor(side Side) State {
	if side == SideWhite {
		return StateWhiteWins
	}
	return StateBlackWins
}

type Side byte

const (
	SideWhite Side = iota + 1
	SideBlack
)

func (s Side) String() string {
	if s == SideWhite {
		return "w"
	} else if s == SideBlack {
		return "b"
	} else {
		return "-"
	}
}

// Name returns the long form used in prompts and messages
func (s Side) Name() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return "None"
	}
}

func (s Side) Valid() bool {
	return s == SideWhite || s == SideBlack
}

func (s Side) Opponent() Side {
	if s == SideWhite {
		return SideBlack
	}
	return SideWhite
}

// Forward is the row delta a pawn of this side advances by
func (s Side) Forward() int {
	if s == SideBlack {
		return -1
	}
	return 1
}

// FarRow is the promotion row for this side
func (s Side) FarRow() int {
	if s == SideBlack {
		return 1
	}
	return 8
}

// MarshalText encodes the side as "w" or "b" in JSON payloads
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSide accepts "w"/"b" and the long names
func ParseSide(str string) (Side, error) {
	switch str {
	case "w", "white", "White":
		return SideWhite, nil
	case "b", "black", "Black":
		return SideBlack, nil
	default:
		return 0, fmt.Errorf("invalid side: %q", str)
	}
}

type PieceKind byte

const (
	KindNone PieceKind = iota // unset, not a member of the enumeration
	KindPawn
	KindKnight
	KindBishop
	KindRook
	KindQueen
	KindKing
)

func (k PieceKind) Valid() bool {
	return k >= KindPawn && k <= KindKing
}

func (k PieceKind) String() string {
	switch k {
	case KindPawn:
		return "pawn"
	case KindKnight:
		return "knight"
	case KindBishop:
		return "bishop"
	case KindRook:
		return "rook"
	case KindQueen:
		return "queen"
	case KindKing:
		return "king"
	default:
		return "none"
	}
}

// Letter returns the FEN letter, uppercase for white
func (k PieceKind) Letter(side Side) byte {
	var ch byte
	switch k {
	case KindPawn:
		ch = 'p'
	case KindKnight:
		ch = 'n'
	case KindBishop:
		ch = 'b'
	case KindRook:
		ch = 'r'
	case KindQueen:
		ch = 'q'
	case KindKing:
		ch = 'k'
	default:
		return '?'
	}
	if side == SideWhite {
		ch -= 'a' - 'A'
	}
	return ch
}

// KindFromLetter decodes a FEN letter into kind and side
func KindFromLetter(ch byte) (PieceKind, Side, bool) {
	side := SideBlack
	if ch >= 'A' && ch <= 'Z' {
		side = SideWhite
		ch += 'a' - 'A'
	}
	switch ch {
	case 'p':
		return KindPawn, side, true
	case 'n':
		return KindKnight, side, true
	case 'b':
		return KindBishop, side, true
	case 'r':
		return KindRook, side, true
	case 'q':
		return KindQueen, side, true
	case 'k':
		return KindKing, side, true
	default:
		return KindNone, 0, false
	}
}

// MarshalText encodes the kind by name in JSON payloads
func (k PieceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind accepts the full name or the single lowercase letter
func ParseKind(str string) (PieceKind, error) {
	switch str {
	case "pawn", "p":
		return KindPawn, nil
	case "knight", "n":
		return KindKnight, nil
	case "bishop", "b":
		return KindBishop, nil
	case "rook", "r":
		return KindRook, nil
	case "queen", "q":
		return KindQueen, nil
	case "king", "k":
		return KindKing, nil
	default:
		return KindNone, fmt.Errorf("invalid piece kind: %q", str)
	}
}

package core

import "fmt"

const (
	MinIndex = 1
	MaxIndex = 8
)

// Square addresses one board cell. Row and Column run 1..8
type Square struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func InRange(row, column int) bool {
	return row >= MinIndex && row <= MaxIndex &&
		column >= MinIndex && column <= MaxIndex
}

func (s Square) Valid() bool {
	return InRange(s.Row, s.Column)
}

// Offset returns the square dRow rows and dColumn columns away, which may be off-board
func (s Square) Offset(dRow, dColumn int) Square {
	return Square{Row: s.Row + dRow, Column: s.Column + dColumn}
}

// String renders algebraic notation, column 1 is file 'a' and row 1 is rank '1'
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Column)
	}
	return fmt.Sprintf("%c%c", 'a'+s.Column-1, '0'+s.Row)
}

func ParseSquare(str string) (Square, error) {
	if len(str) != 2 {
		return Square{}, fmt.Errorf("invalid square %q: expected 2 characters", str)
	}
	if str[0] < 'a' || str[0] > 'h' || str[1] < '1' || str[1] > '8' {
		return Square{}, fmt.Errorf("invalid square %q", str)
	}
	return Square{Row: int(str[1]-'1') + 1, Column: int(str[0]-'a') + 1}, nil
}

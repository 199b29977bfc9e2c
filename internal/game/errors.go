package game

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove          = errors.New("illegal move")
	ErrEmptySquare          = errors.New("square is empty")
	ErrInvalidPromotionKind = errors.New("invalid promotion kind")
	ErrInvalidSquare        = errors.New("square is off the board")
	ErrWrongTurn            = errors.New("not this side's turn")
	ErrGameOver             = errors.New("game is over")
)

// EmptySquareError is returned when a move starts from an unoccupied square.
// It matches both ErrEmptySquare and ErrIllegalMove
type EmptySquareError struct {
	Row    int
	Column int
}

func (e *EmptySquareError) Error() string {
	return fmt.Sprintf("%v: there are no pieces in row %d column %d", ErrEmptySquare, e.Row, e.Column)
}

func (e *EmptySquareError) Is(target error) bool {
	return target == ErrEmptySquare || target == ErrIllegalMove
}

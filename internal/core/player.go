package core

import (
	"github.com/google/uuid"
)

// Seat is one side of a game as held by a client
type Seat struct {
	ID   string `json:"id"`
	Side Side   `json:"side"`
}

// SeatsResponse carries the bearer tokens handed out when a game is created
type SeatsResponse struct {
	White SeatToken `json:"white"`
	Black SeatToken `json:"black"`
}

type SeatToken struct {
	SeatID string `json:"seatId"`
	Token  string `json:"token"`
}

// NewSeat creates a seat with a fresh identifier
func NewSeat(side Side) *Seat {
	return &Seat{
		ID:   uuid.New().String(),
		Side: side,
	}
}

// FILE: internal/core/api.go
package core

// Request types

type CreateGameRequest struct {
	FEN  string `json:"fen,omitempty" validate:"omitempty,max=100"`    // piece placement, optionally followed by the side to move
	Turn string `json:"turn,omitempty" validate:"omitempty,oneof=w b"` // overrides the side in FEN
}

type MoveRequest struct {
	From        string `json:"from" validate:"required,len=2"`
	To          string `json:"to" validate:"required,len=2"`
	Promotion   string `json:"promotion,omitempty" validate:"omitempty,max=6"` // defaults to queen
	DisableHook bool   `json:"disableHook,omitempty"`
}

// Response types

type GameResponse struct {
	GameID    string         `json:"gameId"`
	FEN       string         `json:"fen"`
	Turn      string         `json:"turn"`  // "w" or "b"
	State     string         `json:"state"` // "ongoing", "white wins", "black wins"
	MoveCount int            `json:"moveCount"`
	InCheck   bool           `json:"inCheck"` // side to move is attacked
	Pieces    []PieceInfo    `json:"pieces"`
	LastMove  *MoveInfo      `json:"lastMove,omitempty"`
	Seats     *SeatsResponse `json:"seats,omitempty"` // only returned on creation
}

type PieceInfo struct {
	ID      int    `json:"id"`
	Kind    string `json:"kind"`
	Side    string `json:"side"`
	Square  string `json:"square"`
	Row     int    `json:"row"`
	Column  int    `json:"column"`
	Unmoved bool   `json:"unmoved"`
}

type HookInfo struct {
	RookFrom string `json:"rookFrom"`
	RookTo   string `json:"rookTo"`
}

type MoveInfo struct {
	Piece     PieceInfo `json:"piece"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Captured  bool      `json:"captured"`
	Promotion string    `json:"promotion,omitempty"`
	Hook      *HookInfo `json:"hook,omitempty"`
}

type CandidateInfo struct {
	Square  string     `json:"square"`
	Row     int        `json:"row"`
	Column  int        `json:"column"`
	Capture bool       `json:"capture"`
	Piece   *PieceInfo `json:"piece,omitempty"`
	Hook    *HookInfo  `json:"hook,omitempty"`
}

type CandidatesResponse struct {
	Square     string          `json:"square"`
	Piece      PieceInfo       `json:"piece"`
	Candidates []CandidateInfo `json:"candidates"`
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

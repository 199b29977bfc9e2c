// FILE: internal/processor/processor.go
package processor

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"chess/internal/board"
	"chess/internal/core"
	"chess/internal/game"
	"chess/internal/movement"
	"chess/internal/service"
)

// Processor executes transport-independent commands against the service
type Processor struct {
	svc *service.Service
}

func New(svc *service.Service) *Processor {
	return &Processor{svc: svc}
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	case CmdGetCandidates:
		return p.handleGetCandidates(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

// isFENSafe rejects control characters before the placement is parsed
func isFENSafe(fen string) bool {
	for _, r := range fen {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	b := board.NewStandard()
	turn := core.SideWhite
	if args.FEN != "" {
		if !isFENSafe(args.FEN) {
			return p.errorResponse("invalid FEN characters", core.ErrInvalidFEN)
		}
		var err error
		b, turn, err = board.ParseFEN(args.FEN)
		if err != nil {
			return p.errorResponse(err.Error(), core.ErrInvalidFEN)
		}
	}

	if args.Turn != "" {
		side, err := core.ParseSide(args.Turn)
		if err != nil {
			return p.errorResponse(err.Error(), core.ErrInvalidRequest)
		}
		turn = side
	}

	snap, seats, err := p.svc.CreateGame(b, turn)
	if err != nil {
		return p.fromError("failed to create game", err)
	}

	resp := buildGameResponse(snap)
	resp.Seats = &seats

	return ProcessorResponse{
		Success: true,
		Data:    resp,
	}
}

func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	snap, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.fromError("game not found", err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(snap),
	}
}

func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	snap, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.fromError("game not found", err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.BoardResponse{
			FEN:   snap.FEN,
			Board: snap.Board,
		},
	}
}

func (p *Processor) handleGetCandidates(cmd Command) ProcessorResponse {
	square, _ := cmd.Args.(string)
	sq, err := core.ParseSquare(strings.ToLower(strings.TrimSpace(square)))
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidSquare)
	}

	piece, candidates, err := p.svc.Candidates(cmd.GameID, sq)
	if err != nil {
		return p.fromError("no candidates", err)
	}

	resp := core.CandidatesResponse{
		Square:     sq.String(),
		Piece:      pieceInfo(piece),
		Candidates: make([]core.CandidateInfo, 0, len(candidates)),
	}
	for _, c := range candidates {
		resp.Candidates = append(resp.Candidates, candidateInfo(c))
	}

	return ProcessorResponse{
		Success: true,
		Data:    resp,
	}
}

func (p *Processor) handleMakeMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	if cmd.SeatID == "" {
		return p.errorResponse("seat token required", core.ErrUnauthorized)
	}

	from, err := core.ParseSquare(strings.ToLower(strings.TrimSpace(args.From)))
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidSquare)
	}
	to, err := core.ParseSquare(strings.ToLower(strings.TrimSpace(args.To)))
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidSquare)
	}

	opts := game.MoveOptions{DisableHook: args.DisableHook}
	if promotion := strings.ToLower(strings.TrimSpace(args.Promotion)); promotion != "" {
		kind, err := core.ParseKind(promotion)
		if err != nil {
			return p.errorResponse(err.Error(), core.ErrInvalidPromotion)
		}
		opts.PromotionKind = kind
	}

	snap, err := p.svc.ApplyMove(cmd.GameID, cmd.SeatID, from, to, opts)
	if err != nil {
		return p.fromError("move rejected", err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(snap),
	}
}

func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		return p.fromError("game not found", err)
	}

	return ProcessorResponse{
		Success: true,
	}
}

// errorCode maps domain errors onto wire codes. EmptySquareError also matches
// ErrIllegalMove, so the more specific code is checked first
func errorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return core.ErrGameNotFound
	case errors.Is(err, service.ErrSeatMismatch):
		return core.ErrUnauthorized
	case errors.Is(err, service.ErrGameLimit):
		return core.ErrResourceLimit
	case errors.Is(err, game.ErrInvalidPromotionKind):
		return core.ErrInvalidPromotion
	case errors.Is(err, game.ErrInvalidSquare):
		return core.ErrInvalidSquare
	case errors.Is(err, game.ErrGameOver):
		return core.ErrGameOver
	case errors.Is(err, game.ErrWrongTurn):
		return core.ErrNotYourTurn
	case errors.Is(err, game.ErrEmptySquare):
		return core.ErrEmptySquare
	case errors.Is(err, game.ErrIllegalMove):
		return core.ErrInvalidMove
	default:
		return core.ErrInternalError
	}
}

func (p *Processor) fromError(message string, err error) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error:   message,
			Code:    errorCode(err),
			Details: err.Error(),
		},
	}
}

func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}

func buildGameResponse(snap service.Snapshot) core.GameResponse {
	resp := core.GameResponse{
		GameID:    snap.GameID,
		FEN:       snap.FEN,
		Turn:      snap.Turn.String(),
		State:     snap.State.String(),
		MoveCount: snap.MoveCount,
		InCheck:   snap.InCheck,
		Pieces:    make([]core.PieceInfo, 0, len(snap.Pieces)),
	}
	for _, v := range snap.Pieces {
		resp.Pieces = append(resp.Pieces, pieceInfo(v))
	}

	if last := snap.LastMove; last != nil {
		resp.LastMove = &core.MoveInfo{
			Piece:    pieceInfo(last.Piece),
			From:     last.From().String(),
			To:       last.To().String(),
			Captured: last.Captured,
			Hook:     hookInfo(last.Hook),
		}
		if last.Promoted != core.KindNone {
			resp.LastMove.Promotion = last.Promoted.String()
		}
	}

	return resp
}

func pieceInfo(v board.View) core.PieceInfo {
	return core.PieceInfo{
		ID:      v.ID,
		Kind:    v.Kind.String(),
		Side:    v.Side.String(),
		Square:  v.Square().String(),
		Row:     v.Row,
		Column:  v.Column,
		Unmoved: v.Unmoved,
	}
}

func hookInfo(h *movement.Hook) *core.HookInfo {
	if h == nil {
		return nil
	}
	return &core.HookInfo{
		RookFrom: h.RookFrom.String(),
		RookTo:   h.RookTo.String(),
	}
}

func candidateInfo(c movement.Candidate) core.CandidateInfo {
	info := core.CandidateInfo{
		Square:  c.Square().String(),
		Row:     c.Row,
		Column:  c.Column,
		Capture: c.Capture,
		Hook:    hookInfo(c.Hook),
	}
	if c.Piece != nil {
		pi := pieceInfo(*c.Piece)
		info.Piece = &pi
	}
	return info
}

// String renders a response error for logs and terminals
func (r ProcessorResponse) String() string {
	if r.Success {
		return "ok"
	}
	if r.Error == nil {
		return "failed"
	}
	if r.Error.Details != "" {
		return fmt.Sprintf("%s (%s): %s", r.Error.Error, r.Error.Code, r.Error.Details)
	}
	return fmt.Sprintf("%s (%s)", r.Error.Error, r.Error.Code)
}

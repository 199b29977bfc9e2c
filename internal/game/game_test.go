package game

import (
	"errors"
	"testing"

	"chess/internal/board"
	"chess/internal/core"
	"chess/internal/movement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRenderer struct {
	calls []*LastMove
	count int
}

func (r *recordingRenderer) Render(pieces []board.View, last *LastMove) {
	r.calls = append(r.calls, last)
	r.count = len(pieces)
}

func fromFEN(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := FromFEN(fen)
	require.NoError(t, err)
	return g
}

func TestPawnDoubleMoveThenIllegalRepeat(t *testing.T) {
	g := NewStandard()

	last, err := g.Move(2, 1, 4, 1, MoveOptions{})
	require.NoError(t, err)
	assert.Equal(t, core.Square{Row: 4, Column: 1}, last.To())
	assert.False(t, last.Captured)
	assert.Equal(t, core.SideBlack, g.Turn())

	_, err = g.Move(2, 1, 4, 1, MoveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.ErrorIs(t, err, ErrEmptySquare)

	var empty *EmptySquareError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, 2, empty.Row)
	assert.Equal(t, 1, empty.Column)
}

func TestMoveRejections(t *testing.T) {
	tests := []struct {
		name     string
		from, to core.Square
		opts     MoveOptions
		err      error
	}{
		{"off board", core.Square{Row: 2, Column: 1}, core.Square{Row: 9, Column: 1}, MoveOptions{}, ErrInvalidSquare},
		{"empty origin", core.Square{Row: 4, Column: 4}, core.Square{Row: 5, Column: 4}, MoveOptions{}, ErrEmptySquare},
		{"wrong turn", core.Square{Row: 7, Column: 1}, core.Square{Row: 6, Column: 1}, MoveOptions{}, ErrWrongTurn},
		{"unreachable", core.Square{Row: 2, Column: 1}, core.Square{Row: 5, Column: 1}, MoveOptions{}, ErrIllegalMove},
		{"blocked rook", core.Square{Row: 1, Column: 1}, core.Square{Row: 3, Column: 1}, MoveOptions{}, ErrIllegalMove},
		{"pawn promotion kind", core.Square{Row: 2, Column: 1}, core.Square{Row: 3, Column: 1}, MoveOptions{PromotionKind: core.KindPawn}, ErrInvalidPromotionKind},
		{"unknown promotion kind", core.Square{Row: 2, Column: 1}, core.Square{Row: 3, Column: 1}, MoveOptions{PromotionKind: core.PieceKind(42)}, ErrInvalidPromotionKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewStandard()
			before := g.FEN()

			_, err := g.Move(tt.from.Row, tt.from.Column, tt.to.Row, tt.to.Column, tt.opts)
			assert.ErrorIs(t, err, tt.err)

			assert.Equal(t, before, g.FEN())
			assert.Equal(t, core.SideWhite, g.Turn())
			assert.Zero(t, g.MoveCount())
			assert.Nil(t, g.LastMove())
		})
	}
}

func TestMoveAlternatesTurns(t *testing.T) {
	g := NewStandard()

	_, err := g.Move(2, 5, 4, 5, MoveOptions{})
	require.NoError(t, err)
	_, err = g.Move(2, 4, 3, 4, MoveOptions{})
	assert.ErrorIs(t, err, ErrWrongTurn)

	_, err = g.Move(7, 5, 5, 5, MoveOptions{})
	require.NoError(t, err)
	assert.Equal(t, core.SideWhite, g.Turn())
	assert.Equal(t, 2, g.MoveCount())
	assert.Equal(t, core.StateOngoing, g.State())
}

func TestCaptureRecordsPiece(t *testing.T) {
	g := fromFEN(t, "4k3/8/8/8/r6R/8/8/4K3 w")

	last, err := g.Move(4, 8, 4, 1, MoveOptions{})
	require.NoError(t, err)
	assert.True(t, last.Captured)
	require.NotNil(t, last.CapturedPiece)
	assert.Equal(t, core.KindRook, last.CapturedPiece.Kind)
	assert.Equal(t, core.SideBlack, last.CapturedPiece.Side)
	assert.Len(t, g.Pieces(), 3)
	assert.Equal(t, core.StateOngoing, g.State())
}

func TestPromotion(t *testing.T) {
	tests := []struct {
		name     string
		kind     core.PieceKind
		expected core.PieceKind
	}{
		{"defaults to queen", core.KindNone, core.KindQueen},
		{"knight", core.KindKnight, core.KindKnight},
		{"rook", core.KindRook, core.KindRook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// White pawn one step from the far row, kings out of the way
			g := fromFEN(t, "4k3/P7/8/8/8/8/8/4K3 w")

			last, err := g.Move(7, 1, 8, 1, MoveOptions{PromotionKind: tt.kind})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, last.Promoted)
			assert.Equal(t, tt.expected, last.Piece.Kind)

			piece, _, err := g.Candidates(8, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, piece.Kind)
		})
	}
}

func TestBlackPromotion(t *testing.T) {
	g := fromFEN(t, "4k3/8/8/8/8/8/7p/4K3 b")

	last, err := g.Move(2, 8, 1, 8, MoveOptions{})
	require.NoError(t, err)
	assert.Equal(t, core.KindQueen, last.Promoted)
	assert.Equal(t, core.SideBlack, last.Piece.Side)
}

func TestNoPromotionBeforeFarRow(t *testing.T) {
	g := fromFEN(t, "4k3/8/P7/8/8/8/8/4K3 w")

	last, err := g.Move(6, 1, 7, 1, MoveOptions{PromotionKind: core.KindKnight})
	require.NoError(t, err)
	assert.Equal(t, core.KindNone, last.Promoted)
	assert.Equal(t, core.KindPawn, last.Piece.Kind)
}

func TestHookMovesRook(t *testing.T) {
	g := fromFEN(t, "3k4/8/8/8/8/8/8/R2K3R w")

	last, err := g.Move(1, 4, 1, 2, MoveOptions{})
	require.NoError(t, err)
	require.NotNil(t, last.Hook)
	assert.Equal(t, movement.Hook{
		RookFrom: core.Square{Row: 1, Column: 1},
		RookTo:   core.Square{Row: 1, Column: 3},
	}, *last.Hook)
	assert.Equal(t, "3k4/8/8/8/8/8/8/1KR4R b", g.FEN())
}

func TestDisableHookKeepsRook(t *testing.T) {
	g := fromFEN(t, "3k4/8/8/8/8/8/8/R2K3R w")

	last, err := g.Move(1, 4, 1, 2, MoveOptions{DisableHook: true})
	require.NoError(t, err)
	assert.Nil(t, last.Hook)
	assert.Equal(t, core.Square{Row: 1, Column: 2}, last.To())

	king, _, err := g.Candidates(1, 2)
	require.NoError(t, err)
	assert.Equal(t, core.KindKing, king.Kind)

	rook, _, err := g.Candidates(1, 1)
	require.NoError(t, err)
	assert.Equal(t, core.KindRook, rook.Kind)

	_, _, err = g.Candidates(1, 3)
	assert.ErrorIs(t, err, ErrEmptySquare)
	assert.Equal(t, "3k4/8/8/8/8/8/8/RK5R b", g.FEN())
}

func TestCheckmateEndsGame(t *testing.T) {
	// Rook to the back row completes the ladder with the rook on row 7
	g := fromFEN(t, "7k/R7/1R6/8/8/8/8/3K4 w")
	require.Equal(t, core.StateOngoing, g.State())

	_, err := g.Move(6, 2, 8, 2, MoveOptions{})
	require.NoError(t, err)

	assert.Equal(t, core.StateWhiteWins, g.State())
	require.NotNil(t, g.Mated())
	assert.Equal(t, core.SideBlack, g.Mated().Side)
	assert.True(t, g.InCheck(core.SideBlack))

	_, err = g.Move(8, 8, 7, 8, MoveOptions{})
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestCapturingKingEndsGame(t *testing.T) {
	g := fromFEN(t, "3k4/8/8/8/8/8/8/3RK3 w")

	_, err := g.Move(1, 4, 8, 4, MoveOptions{})
	require.NoError(t, err)
	assert.Equal(t, core.StateWhiteWins, g.State())
}

func TestRendererReceivesEveryMove(t *testing.T) {
	g := NewStandard()
	r := &recordingRenderer{}
	g.SetRenderer(r)

	_, err := g.Move(1, 2, 3, 3, MoveOptions{})
	require.NoError(t, err)
	_, err = g.Move(7, 2, 6, 2, MoveOptions{})
	require.NoError(t, err)
	_, err = g.Move(7, 2, 6, 2, MoveOptions{})
	require.Error(t, err)

	require.Len(t, r.calls, 2)
	assert.Equal(t, core.KindKnight, r.calls[0].Piece.Kind)
	assert.Equal(t, core.Square{Row: 6, Column: 2}, r.calls[1].To())
	assert.Equal(t, 32, r.count)
}

func TestCandidates(t *testing.T) {
	g := NewStandard()

	piece, candidates, err := g.Candidates(2, 5)
	require.NoError(t, err)
	assert.Equal(t, core.KindPawn, piece.Kind)
	assert.Len(t, candidates, 2)

	_, _, err = g.Candidates(4, 4)
	assert.ErrorIs(t, err, ErrEmptySquare)

	_, _, err = g.Candidates(0, 4)
	assert.ErrorIs(t, err, ErrInvalidSquare)
}

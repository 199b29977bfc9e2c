package movement

import (
	"testing"

	"chess/internal/board"
	"chess/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func place(t *testing.T, b *board.Board, kind core.PieceKind, side core.Side, row, column int) *board.Piece {
	t.Helper()
	p, err := b.Add(kind, side, row, column)
	require.NoError(t, err)
	return p
}

func squares(candidates []Candidate) []core.Square {
	result := make([]core.Square, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, c.Square())
	}
	return result
}

func sq(row, column int) core.Square {
	return core.Square{Row: row, Column: column}
}

func TestWhitePawnMovedSingleStep(t *testing.T) {
	b := board.New()
	p := place(t, b, core.KindPawn, core.SideWhite, 2, 1)
	p.Unmoved = false

	got := For(b, p)
	assert.Equal(t, []Candidate{{Row: 3, Column: 1, Side: core.SideWhite}}, got)
}

func TestWhitePawnFreshDoubleStep(t *testing.T) {
	b := board.New()
	p := place(t, b, core.KindPawn, core.SideWhite, 2, 1)

	got := For(b, p)
	assert.Equal(t, []Candidate{
		{Row: 3, Column: 1, Side: core.SideWhite},
		{Row: 4, Column: 1, Side: core.SideWhite},
	}, got)
}

func TestBlackPawnCapturesDiagonally(t *testing.T) {
	b := board.New()
	black := place(t, b, core.KindPawn, core.SideBlack, 7, 2)
	whitePawn := place(t, b, core.KindPawn, core.SideWhite, 6, 3)
	whiteKnight := place(t, b, core.KindKnight, core.SideWhite, 6, 1)

	got := For(b, black)
	require.Len(t, got, 4)

	pawnView := whitePawn.View()
	knightView := whiteKnight.View()
	assert.ElementsMatch(t, []Candidate{
		{Row: 6, Column: 2, Side: core.SideBlack},
		{Row: 5, Column: 2, Side: core.SideBlack},
		{Row: 6, Column: 1, Side: core.SideBlack, Capture: true, Piece: &knightView},
		{Row: 6, Column: 3, Side: core.SideBlack, Capture: true, Piece: &pawnView},
	}, got)
}

func TestPawnForwardBlockedByAnyOccupant(t *testing.T) {
	tests := []struct {
		name     string
		side     core.Side
		blocker  int
		expected []core.Square
	}{
		{"ally two ahead", core.SideBlack, 5, []core.Square{sq(6, 1)}},
		{"ally one ahead", core.SideBlack, 6, []core.Square{}},
		{"adversary one ahead", core.SideWhite, 6, []core.Square{}},
		{"adversary two ahead", core.SideWhite, 5, []core.Square{sq(6, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := board.New()
			p := place(t, b, core.KindPawn, core.SideBlack, 7, 1)
			place(t, b, core.KindKnight, tt.side, tt.blocker, 1)

			got := For(b, p)
			assert.Equal(t, tt.expected, squares(got))
			for _, c := range got {
				assert.False(t, c.Capture)
			}
		})
	}
}

func TestPawnDiagonalOnlyWithAdversary(t *testing.T) {
	b := board.New()
	p := place(t, b, core.KindPawn, core.SideWhite, 4, 4)
	p.Unmoved = false
	place(t, b, core.KindBishop, core.SideWhite, 5, 3)
	place(t, b, core.KindBishop, core.SideBlack, 3, 5) // behind the pawn

	got := For(b, p)
	assert.Equal(t, []core.Square{sq(5, 4)}, squares(got))
}

func TestRookStopsAtCapture(t *testing.T) {
	b := board.New()
	rook := place(t, b, core.KindRook, core.SideWhite, 1, 1)
	knight := place(t, b, core.KindKnight, core.SideBlack, 4, 1)

	got := For(b, rook)

	var up []Candidate
	for _, c := range got {
		if c.Column == 1 {
			up = append(up, c)
		}
	}
	knightView := knight.View()
	assert.Equal(t, []Candidate{
		{Row: 2, Column: 1, Side: core.SideWhite},
		{Row: 3, Column: 1, Side: core.SideWhite},
		{Row: 4, Column: 1, Side: core.SideWhite, Capture: true, Piece: &knightView},
	}, up)
	assert.Len(t, got, 3+7)
}

func TestSlidersNeverPassOccupiedSquares(t *testing.T) {
	b := board.New()
	queen := place(t, b, core.KindQueen, core.SideWhite, 4, 4)
	place(t, b, core.KindPawn, core.SideWhite, 6, 4)  // ally two up
	place(t, b, core.KindPawn, core.SideBlack, 4, 6)  // adversary two right
	place(t, b, core.KindPawn, core.SideBlack, 6, 6)  // adversary on diagonal
	place(t, b, core.KindKnight, core.SideWhite, 3, 3) // ally adjacent diagonal

	got := squares(For(b, queen))

	assert.Contains(t, got, sq(5, 4))
	assert.NotContains(t, got, sq(6, 4))
	assert.NotContains(t, got, sq(7, 4))

	assert.Contains(t, got, sq(4, 6))
	assert.NotContains(t, got, sq(4, 7))

	assert.Contains(t, got, sq(6, 6))
	assert.NotContains(t, got, sq(7, 7))

	assert.NotContains(t, got, sq(3, 3))
	assert.NotContains(t, got, sq(2, 2))
}

func TestBishopFromCorner(t *testing.T) {
	b := board.New()
	bishop := place(t, b, core.KindBishop, core.SideBlack, 1, 1)

	got := For(b, bishop)
	assert.Equal(t, []core.Square{
		sq(2, 2), sq(3, 3), sq(4, 4), sq(5, 5), sq(6, 6), sq(7, 7), sq(8, 8),
	}, squares(got))
}

func TestKnightOffsets(t *testing.T) {
	b := board.New()
	knight := place(t, b, core.KindKnight, core.SideWhite, 1, 2)
	place(t, b, core.KindPawn, core.SideWhite, 2, 4)
	place(t, b, core.KindPawn, core.SideBlack, 3, 3)

	got := For(b, knight)
	require.Len(t, got, 2)
	assert.Equal(t, sq(3, 1), got[0].Square())
	assert.False(t, got[0].Capture)
	assert.Equal(t, sq(3, 3), got[1].Square())
	assert.True(t, got[1].Capture)

	b = board.New()
	center := place(t, b, core.KindKnight, core.SideBlack, 4, 4)
	assert.Len(t, For(b, center), 8)
}

func TestKingAvoidsAttackedSquares(t *testing.T) {
	b := board.New()
	king := place(t, b, core.KindKing, core.SideWhite, 1, 4)
	place(t, b, core.KindRook, core.SideBlack, 8, 3)

	got := For(b, king)
	for _, c := range got {
		assert.NotEqual(t, 3, c.Column, "king stepped onto the rook's file at %s", c.Square())
		assert.Nil(t, IsSquareAttacked(vacate(b, king.Square()), c.Square(), core.SideWhite))
	}
	assert.ElementsMatch(t, []core.Square{sq(2, 4), sq(2, 5), sq(1, 5)}, squares(got))
}

func TestKingCannotRetreatAlongCheckingRay(t *testing.T) {
	b := board.New()
	king := place(t, b, core.KindKing, core.SideWhite, 4, 4)
	place(t, b, core.KindRook, core.SideBlack, 4, 8)

	got := squares(For(b, king))
	assert.NotContains(t, got, sq(4, 3))
	assert.NotContains(t, got, sq(4, 5))
	assert.Contains(t, got, sq(5, 4))
}

func TestKingCapturesUnprotectedPiece(t *testing.T) {
	b := board.New()
	king := place(t, b, core.KindKing, core.SideBlack, 8, 4)
	place(t, b, core.KindQueen, core.SideWhite, 7, 4)

	got := For(b, king)
	c, ok := Match(got, 7, 4)
	require.True(t, ok)
	assert.True(t, c.Capture)

	place(t, b, core.KindRook, core.SideWhite, 1, 4)
	_, ok = Match(For(b, king), 7, 4)
	assert.False(t, ok, "protected queen must not be capturable by the king")
}

func TestMovementIsStable(t *testing.T) {
	b := board.NewStandard()
	b.Capture(2, 5)
	b.Capture(7, 4)

	b.Each(func(p *board.Piece) {
		assert.Equal(t, For(b, p), For(b, p))
	})
}

func TestForDoesNotMutate(t *testing.T) {
	b := board.NewStandard()
	before := b.Pieces()
	b.Each(func(p *board.Piece) {
		For(b, p)
	})
	assert.Equal(t, before, b.Pieces())
}

func TestStandardOpeningCounts(t *testing.T) {
	b := board.NewStandard()
	total := 0
	b.Each(func(p *board.Piece) {
		if p.Side == core.SideWhite {
			total += len(For(b, p))
		}
	})
	assert.Equal(t, 20, total)
}

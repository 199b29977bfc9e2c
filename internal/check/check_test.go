package check

import (
	"testing"

	"chess/internal/board"
	"chess/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type placement struct {
	kind        core.PieceKind
	side        core.Side
	row, column int
}

func setup(t *testing.T, pieces ...placement) *board.Board {
	t.Helper()
	b := board.New()
	for _, p := range pieces {
		_, err := b.Add(p.kind, p.side, p.row, p.column)
		require.NoError(t, err)
	}
	return b
}

// Black king cornered by two white rooks on the last two rows
func ladderMate() []placement {
	return []placement{
		{core.KindKing, core.SideWhite, 1, 4},
		{core.KindKing, core.SideBlack, 8, 8},
		{core.KindRook, core.SideWhite, 8, 1},
		{core.KindRook, core.SideWhite, 7, 1},
	}
}

func TestEvaluateCheckmate(t *testing.T) {
	b := setup(t, ladderMate()...)

	got := Evaluate(b)
	require.NotNil(t, got)
	assert.Equal(t, core.SideBlack, got.Side)
	assert.Equal(t, core.KindKing, got.Kind)
	assert.True(t, InCheck(b, core.SideBlack))
	assert.False(t, InCheck(b, core.SideWhite))
}

func TestEvaluateNotCheckmate(t *testing.T) {
	tests := []struct {
		name  string
		extra []placement
		drop  core.Square
	}{
		{
			name:  "attacker can be captured",
			extra: []placement{{core.KindBishop, core.SideBlack, 3, 6}},
		},
		{
			name:  "ally next to king",
			extra: []placement{{core.KindPawn, core.SideBlack, 7, 8}},
		},
		{
			name: "escape square",
			drop: core.Square{Row: 7, Column: 1},
		},
		{
			name: "no check",
			drop: core.Square{Row: 8, Column: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setup(t, append(ladderMate(), tt.extra...)...)
			if tt.drop.Valid() {
				require.True(t, b.Capture(tt.drop.Row, tt.drop.Column))
			}
			assert.Nil(t, Evaluate(b))
		})
	}
}

func TestEvaluateProtectedAttackerAdjacentToKing(t *testing.T) {
	// The king could take the queen but it is defended, and nothing else can take it
	b := setup(t,
		placement{core.KindKing, core.SideWhite, 1, 1},
		placement{core.KindKing, core.SideBlack, 8, 8},
		placement{core.KindQueen, core.SideWhite, 7, 7},
		placement{core.KindBishop, core.SideWhite, 5, 5},
	)

	got := Evaluate(b)
	require.NotNil(t, got)
	assert.Equal(t, core.SideBlack, got.Side)
}

func TestEvaluateStartingPosition(t *testing.T) {
	b := board.NewStandard()
	assert.Nil(t, Evaluate(b))
	assert.False(t, InCheck(b, core.SideWhite))
	assert.False(t, InCheck(b, core.SideBlack))
}

func TestEvaluateLeavesPiecesUntouched(t *testing.T) {
	for _, pieces := range [][]placement{
		ladderMate(),
		append(ladderMate(), placement{core.KindBishop, core.SideBlack, 3, 6}),
	} {
		b := setup(t, pieces...)
		before := b.Pieces()
		Evaluate(b)
		assert.Equal(t, before, b.Pieces())
	}
}

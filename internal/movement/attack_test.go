package movement

import (
	"testing"

	"chess/internal/board"
	"chess/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSquareAttacked(t *testing.T) {
	tests := []struct {
		name     string
		kind     core.PieceKind
		side     core.Side
		row      int
		column   int
		attacked bool
	}{
		{"rook on file", core.KindRook, core.SideBlack, 8, 4, true},
		{"queen on rank", core.KindQueen, core.SideBlack, 4, 1, true},
		{"bishop on diagonal", core.KindBishop, core.SideBlack, 7, 7, true},
		{"queen on diagonal", core.KindQueen, core.SideBlack, 1, 1, true},
		{"rook on diagonal", core.KindRook, core.SideBlack, 7, 7, false},
		{"bishop on file", core.KindBishop, core.SideBlack, 8, 4, false},
		{"knight jump", core.KindKnight, core.SideBlack, 6, 5, true},
		{"knight adjacent", core.KindKnight, core.SideBlack, 5, 5, false},
		{"black pawn ahead", core.KindPawn, core.SideBlack, 5, 3, true},
		{"black pawn behind", core.KindPawn, core.SideBlack, 3, 3, false},
		{"black pawn straight ahead", core.KindPawn, core.SideBlack, 5, 4, false},
		{"adjacent king", core.KindKing, core.SideBlack, 5, 4, true},
		{"distant king", core.KindKing, core.SideBlack, 6, 4, false},
		{"allied rook", core.KindRook, core.SideWhite, 8, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := board.New()
			_, err := b.Add(tt.kind, tt.side, tt.row, tt.column)
			require.NoError(t, err)

			got := IsSquareAttacked(b, core.Square{Row: 4, Column: 4}, core.SideWhite)
			if !tt.attacked {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Capture)
			assert.Equal(t, tt.kind, got.Piece.Kind)
			assert.Equal(t, core.Square{Row: tt.row, Column: tt.column}, got.Square())
		})
	}
}

func TestWhitePawnAttacksForBlackDefender(t *testing.T) {
	b := board.New()
	_, err := b.Add(core.KindPawn, core.SideWhite, 3, 3)
	require.NoError(t, err)

	assert.NotNil(t, IsSquareAttacked(b, core.Square{Row: 4, Column: 4}, core.SideBlack))
	assert.Nil(t, IsSquareAttacked(b, core.Square{Row: 2, Column: 2}, core.SideBlack))
}

func TestAttackBlockedByInterposedPiece(t *testing.T) {
	b := board.New()
	_, err := b.Add(core.KindRook, core.SideBlack, 8, 4)
	require.NoError(t, err)
	_, err = b.Add(core.KindPawn, core.SideBlack, 6, 4)
	require.NoError(t, err)

	assert.Nil(t, IsSquareAttacked(b, core.Square{Row: 4, Column: 4}, core.SideWhite))
}

func TestAttackersListsEveryAttackerInOrder(t *testing.T) {
	b := board.New()
	for _, p := range []struct {
		kind        core.PieceKind
		row, column int
	}{
		{core.KindKnight, 6, 5},
		{core.KindBishop, 7, 1},
		{core.KindRook, 4, 8},
		{core.KindPawn, 5, 5},
	} {
		_, err := b.Add(p.kind, core.SideBlack, p.row, p.column)
		require.NoError(t, err)
	}

	got := Attackers(b, core.Square{Row: 4, Column: 4}, core.SideWhite)
	require.Len(t, got, 4)
	kinds := []core.PieceKind{got[0].Piece.Kind, got[1].Piece.Kind, got[2].Piece.Kind, got[3].Piece.Kind}
	assert.Equal(t, []core.PieceKind{core.KindRook, core.KindBishop, core.KindKnight, core.KindPawn}, kinds)

	first := IsSquareAttacked(b, core.Square{Row: 4, Column: 4}, core.SideWhite)
	require.NotNil(t, first)
	assert.Equal(t, core.KindRook, first.Piece.Kind)
}

func TestAttackersOffBoard(t *testing.T) {
	b := board.NewStandard()
	assert.Nil(t, Attackers(b, core.Square{Row: 0, Column: 4}, core.SideWhite))
}

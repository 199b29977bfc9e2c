package cli

import (
	"bytes"
	"strings"
	"testing"

	"chess/internal/core"
	"chess/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		typ   CommandType
		args  []string
	}{
		{"", CmdNone, nil},
		{"   ", CmdNone, nil},
		{"new", CmdNew, []string{}},
		{"resume 4k3/8/8/8/8/8/8/4K3 w", CmdResume, []string{"4k3/8/8/8/8/8/8/4K3", "w"}},
		{"moves e2", CmdCandidates, []string{"e2"}},
		{"e2e4", CmdMove, []string{"e2e4"}},
		{"e1c1 nohook", CmdMove, []string{"e1c1", "nohook"}},
		{"?", CmdHelp, nil},
		{"exit", CmdQuit, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := ParseCommand(tt.input)
			assert.Equal(t, tt.typ, cmd.Type)
			if tt.args != nil {
				assert.Equal(t, tt.args, cmd.Args)
			}
		})
	}
}

func TestDefaultThemeForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ThemeOff, DefaultTheme(&buf))
	assert.Equal(t, ThemeOff, New(&buf).Theme())
}

func TestSetTheme(t *testing.T) {
	c := New(&bytes.Buffer{})
	require.NoError(t, c.SetTheme(ThemeGreen))
	assert.Equal(t, ThemeGreen, c.Theme())
	assert.Error(t, c.SetTheme("purple"))
	assert.Equal(t, ThemeGreen, c.Theme())
}

func TestDisplayBoardPlain(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)

	g := game.NewStandard()
	last, err := g.Move(2, 5, 4, 5, game.MoveOptions{})
	require.NoError(t, err)

	c.DisplayBoard(g.Pieces(), last)
	out := buf.String()

	assert.Contains(t, out, "8 r n b k q b n r  8")
	assert.Contains(t, out, "1 R N B K Q B N R  1")
	assert.Contains(t, out, "4 . . . . P . . .  4")
	// Vacated origin is marked
	assert.Contains(t, out, "2 P P P P * P P P  2")
	assert.NotContains(t, out, "\033[")
}

func TestDisplayBoardThemed(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)
	require.NoError(t, c.SetTheme(ThemeBrown))

	g := game.NewStandard()
	last, err := g.Move(1, 2, 3, 3, game.MoveOptions{})
	require.NoError(t, err)

	c.DisplayBoard(g.Pieces(), last)
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, themes[ThemeBrown].highlightBg))
}

func TestRenderVerboseDescribesMove(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)
	c.ToggleVerbose()

	g, err := game.FromFEN("3k4/8/8/8/8/8/8/R2K3R w")
	require.NoError(t, err)
	g.SetRenderer(c)

	_, err = g.Move(1, 4, 1, 2, game.MoveOptions{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "White d1b1 (rook a1c1)")
}

func TestDescribeMove(t *testing.T) {
	g, err := game.FromFEN("4k3/8/8/8/r6R/8/8/4K3 w")
	require.NoError(t, err)

	last, err := g.Move(4, 8, 4, 1, game.MoveOptions{})
	require.NoError(t, err)
	assert.Equal(t, "White h4a4 xrook", DescribeMove(last))

	g, err = game.FromFEN("4k3/P7/8/8/8/8/8/4K3 w")
	require.NoError(t, err)
	last, err = g.Move(7, 1, 8, 1, game.MoveOptions{PromotionKind: core.KindKnight})
	require.NoError(t, err)
	assert.Equal(t, "White a7a8 =knight", DescribeMove(last))
}

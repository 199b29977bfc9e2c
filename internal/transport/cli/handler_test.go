package cli

import (
	"bytes"
	"io"
	"testing"

	"chess/internal/cli"
	"chess/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedInput struct {
	lines   []string
	prompts []string
}

func (s *scriptedInput) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedInput) SetPrompt(prompt string) {
	s.prompts = append(s.prompts, prompt)
}

func run(t *testing.T, lines ...string) (*CLIHandler, *scriptedInput, string) {
	t.Helper()
	var out bytes.Buffer
	in := &scriptedInput{lines: lines}
	h := New(in, cli.New(&out))
	h.Run()
	return h, in, out.String()
}

func TestParseMove(t *testing.T) {
	from, to, opts, err := ParseMove([]string{"e2e4"})
	require.NoError(t, err)
	assert.Equal(t, core.Square{Row: 2, Column: 5}, from)
	assert.Equal(t, core.Square{Row: 4, Column: 5}, to)
	assert.Equal(t, core.KindNone, opts.PromotionKind)
	assert.False(t, opts.DisableHook)

	_, _, opts, err = ParseMove([]string{"A7A8N"})
	require.NoError(t, err)
	assert.Equal(t, core.KindKnight, opts.PromotionKind)

	_, _, opts, err = ParseMove([]string{"e1c1", "nohook"})
	require.NoError(t, err)
	assert.True(t, opts.DisableHook)

	for _, bad := range [][]string{{"e2"}, {"e2e9"}, {"e7e8x"}, {"e2e4", "fast"}} {
		_, _, _, err := ParseMove(bad)
		assert.Error(t, err, bad)
	}
}

func TestPlayMoves(t *testing.T) {
	h, in, out := run(t, "new", "e2e4", "e7e5", "history")

	require.NotNil(t, h.Game())
	assert.Equal(t, 2, h.Game().MoveCount())
	assert.Equal(t, core.SideWhite, h.Game().Turn())
	assert.Equal(t, []string{"White e2e4", "Black e7e5"}, h.history)

	assert.Contains(t, out, "Game started.")
	assert.Contains(t, out, "1. White e2e4")
	assert.Equal(t, []string{"> ", "[w]> ", "[b]> ", "[w]> ", "[w]> "}, in.prompts)
}

func TestIllegalMoveReported(t *testing.T) {
	h, _, out := run(t, "new", "e2e5", "e4e5")

	assert.Zero(t, h.Game().MoveCount())
	assert.Contains(t, out, "invalid move: illegal move")
	assert.Contains(t, out, "there are no pieces in row 4 column 5")
}

func TestMoveWithoutGame(t *testing.T) {
	h, _, out := run(t, "e2e4")
	assert.Nil(t, h.Game())
	assert.Contains(t, out, "No active game")
}

func TestResumeAndCheckmate(t *testing.T) {
	h, _, out := run(t, "resume 7k/R7/1R6/8/8/8/8/3K4 w", "b6b8", "h8g8")

	assert.Equal(t, core.StateWhiteWins, h.Game().State())
	assert.Contains(t, out, "Checkmate: blackKing on h8")
	assert.Contains(t, out, "Game Over: white wins")
	assert.Contains(t, out, "game is over")
}

func TestResumeRejectsBadFEN(t *testing.T) {
	h, _, out := run(t, "resume nonsense")
	assert.Nil(t, h.Game())
	assert.Contains(t, out, "could not start the game")
}

func TestCandidatesListed(t *testing.T) {
	_, _, out := run(t, "new", "moves g1")
	assert.Contains(t, out, "whiteKnight on g1: ")
	assert.Contains(t, out, "f3")
	assert.Contains(t, out, "h3")
}

func TestQuitStopsLoop(t *testing.T) {
	h, in, _ := run(t, "quit", "new")
	assert.Nil(t, h.Game())
	assert.Equal(t, []string{"new"}, in.lines)
}

// FILE: internal/transport/cli/handler.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"chess/internal/cli"
	"chess/internal/core"
	"chess/internal/game"

	"github.com/chzyer/readline"
)

// LineReader is the input side of the terminal. *readline.Instance satisfies it
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// CLIHandler runs a local two-player game in the terminal
type CLIHandler struct {
	input      LineReader
	view       *cli.CLI
	game       *game.Game
	initialFEN string
	history    []string
}

func New(input LineReader, view *cli.CLI) *CLIHandler {
	return &CLIHandler{
		input: input,
		view:  view,
	}
}

// NewReadline opens a readline instance with history in historyFile
func NewReadline(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
}

// Main game loop - simple command processing
func (h *CLIHandler) Run() {
	for {
		h.input.SetPrompt(h.getPrompt())

		line, err := h.input.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				h.view.ShowError(err)
			}
			break
		}

		if !h.ProcessCommand(cli.ParseCommand(line)) {
			break
		}
	}
}

// Game returns the active game or nil
func (h *CLIHandler) Game() *game.Game {
	return h.game
}

func (h *CLIHandler) getPrompt() string {
	if h.game != nil && h.game.State() == core.StateOngoing {
		if h.game.InCheck(h.game.Turn()) {
			return fmt.Sprintf("[%s+]> ", h.game.Turn())
		}
		return fmt.Sprintf("[%s]> ", h.game.Turn())
	}
	return "> "
}

// Handles user commands - returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:

	case cli.CmdNew:
		h.startGame(game.NewStandard())

	case cli.CmdResume:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: resume <FEN string>")
			return true
		}
		g, err := game.FromFEN(strings.Join(cmd.Args, " "))
		if err != nil {
			h.view.ShowError(fmt.Errorf("could not start the game: %w", err))
			return true
		}
		h.startGame(g)

	case cli.CmdMove:
		if h.game == nil {
			h.view.ShowMessage("No active game. Use 'new' or 'resume <FEN>'.")
			return true
		}
		h.handleMove(cmd.Args)

	case cli.CmdCandidates:
		if h.game == nil {
			h.view.ShowMessage("No active game.")
			return true
		}
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: moves <square>")
			return true
		}
		h.handleCandidates(cmd.Args[0])

	case cli.CmdBoard:
		if h.game == nil {
			h.view.ShowMessage("No active game.")
			return true
		}
		h.game.Render()

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}

		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
		} else {
			h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
			if h.game != nil {
				h.game.Render()
			}
		}

	case cli.CmdVerbose:
		verbose := h.view.ToggleVerbose()
		h.view.ShowMessage(fmt.Sprintf("Verbose mode: %t", verbose))

	case cli.CmdHistory:
		if h.game == nil {
			h.view.ShowMessage("No active game.")
			return true
		}
		h.view.ShowGameHistory(h.initialFEN, h.history, h.game.FEN(), h.game.State())

	case cli.CmdHelp:
		h.view.ShowHelp()
	}

	return true
}

func (h *CLIHandler) startGame(g *game.Game) {
	h.game = g
	h.initialFEN = g.FEN()
	h.history = nil
	g.SetRenderer(h.view)

	h.view.ShowMessage("Game started.")
	g.Render()
	if g.State().Over() {
		h.view.ShowGameOver(g.State(), g.Mated())
	}
}

// ParseMove reads "e2e4", "a7a8n" and an optional "nohook" flag
func ParseMove(args []string) (from, to core.Square, opts game.MoveOptions, err error) {
	if len(args) == 0 {
		return from, to, opts, fmt.Errorf("empty move")
	}

	move := strings.ToLower(args[0])
	if len(move) != 4 && len(move) != 5 {
		return from, to, opts, fmt.Errorf("invalid move %q: use e.g. e2e4 or a7a8q", args[0])
	}
	if from, err = core.ParseSquare(move[0:2]); err != nil {
		return from, to, opts, err
	}
	if to, err = core.ParseSquare(move[2:4]); err != nil {
		return from, to, opts, err
	}
	if len(move) == 5 {
		if opts.PromotionKind, err = core.ParseKind(move[4:]); err != nil {
			return from, to, opts, err
		}
	}

	for _, flag := range args[1:] {
		switch flag {
		case "nohook":
			opts.DisableHook = true
		default:
			return from, to, opts, fmt.Errorf("unknown move option %q", flag)
		}
	}
	return from, to, opts, nil
}

func (h *CLIHandler) handleMove(args []string) {
	from, to, opts, err := ParseMove(args)
	if err != nil {
		h.view.ShowError(err)
		return
	}

	// The renderer draws the board
	last, err := h.game.Move(from.Row, from.Column, to.Row, to.Column, opts)
	if err != nil {
		h.view.ShowError(fmt.Errorf("invalid move: %w", err))
		return
	}
	h.history = append(h.history, cli.DescribeMove(last))

	if h.game.State().Over() {
		h.view.ShowGameOver(h.game.State(), h.game.Mated())
	} else if h.game.InCheck(h.game.Turn()) {
		h.view.ShowMessage(fmt.Sprintf("%s is in check", h.game.Turn().Name()))
	}
}

func (h *CLIHandler) handleCandidates(square string) {
	sq, err := core.ParseSquare(strings.ToLower(square))
	if err != nil {
		h.view.ShowError(err)
		return
	}

	piece, candidates, err := h.game.Candidates(sq.Row, sq.Column)
	if err != nil {
		h.view.ShowError(err)
		return
	}

	squares := make([]string, 0, len(candidates))
	for _, c := range candidates {
		s := c.Square().String()
		if c.Capture {
			s = "x" + s
		}
		squares = append(squares, s)
	}
	h.view.ShowCandidates(piece, squares)
}

var _ game.Renderer = (*cli.CLI)(nil)

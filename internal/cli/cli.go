// FILE: internal/cli/cli.go
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"chess/internal/board"
	"chess/internal/core"
	"chess/internal/game"

	"golang.org/x/term"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdResume
	CmdMove
	CmdCandidates
	CmdBoard
	CmdColor
	CmdVerbose
	CmdHistory
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg     string
	darkBg      string
	highlightBg string // last move squares
	white       string
	black       string
	reset       string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg:     "\033[48;5;230m", // Beige
		darkBg:      "\033[48;5;94m",  // Brown
		highlightBg: "\033[48;5;179m",
		white:       "\033[97m",
		black:       "\033[30m",
		reset:       "\033[0m",
	},
	ThemeGreen: {
		lightBg:     "\033[48;5;157m", // Light green
		darkBg:      "\033[48;5;22m",  // Dark green
		highlightBg: "\033[48;5;186m",
		white:       "\033[97m",
		black:       "\033[30m",
		reset:       "\033[0m",
	},
	ThemeGray: {
		lightBg:     "\033[48;5;251m", // Light gray
		darkBg:      "\033[48;5;240m", // Dark gray
		highlightBg: "\033[48;5;67m",
		white:       "\033[97m",
		black:       "\033[30m",
		reset:       "\033[0m",
	},
}

// CLI is the terminal view. It implements game.Renderer
type CLI struct {
	output  io.Writer
	theme   ColorTheme
	verbose bool
}

func New(output io.Writer) *CLI {
	return &CLI{
		output: output,
		theme:  DefaultTheme(output),
	}
}

// DefaultTheme picks a colored theme for terminals and plain text otherwise
func DefaultTheme(output io.Writer) ColorTheme {
	if f, ok := output.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ThemeBrown
	}
	return ThemeOff
}

// ParseCommand turns one input line into a command
func ParseCommand(input string) *Command {
	input = strings.TrimSpace(input)
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew, Args: args}
	case "resume":
		return &Command{Type: CmdResume, Args: args, Raw: input}
	case "moves":
		return &Command{Type: CmdCandidates, Args: args}
	case "board":
		return &Command{Type: CmdBoard}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "verbose":
		return &Command{Type: CmdVerbose}
	case "history":
		return &Command{Type: CmdHistory}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		// Assume it's a move, e.g. "e2e4", "a7a8n", "e1c1 nohook"
		return &Command{Type: CmdMove, Args: parts, Raw: input}
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) Theme() ColorTheme {
	return c.theme
}

func (c *CLI) ToggleVerbose() bool {
	c.verbose = !c.verbose
	return c.verbose
}

func (c *CLI) IsVerbose() bool {
	return c.verbose
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

// Render draws the board after every move
func (c *CLI) Render(pieces []board.View, last *game.LastMove) {
	if last != nil && c.verbose {
		c.ShowMessage(DescribeMove(last))
	}
	c.DisplayBoard(pieces, last)
}

// DisplayBoard draws the pieces with rank 8 on top, highlighting the last move
func (c *CLI) DisplayBoard(pieces []board.View, last *game.LastMove) {
	theme := themes[c.theme]

	var grid [core.MaxIndex + 1][core.MaxIndex + 1]byte
	for _, p := range pieces {
		grid[p.Row][p.Column] = p.Kind.Letter(p.Side)
	}

	highlighted := func(row, column int) bool {
		if last == nil {
			return false
		}
		sq := core.Square{Row: row, Column: column}
		return sq == last.From() || sq == last.To()
	}

	var sb strings.Builder
	sb.WriteString("\n  a b c d e f g h\n")

	for row := core.MaxIndex; row >= core.MinIndex; row-- {
		sb.WriteString(fmt.Sprintf("%d ", row))
		for column := core.MinIndex; column <= core.MaxIndex; column++ {
			piece := grid[row][column]

			if c.theme == ThemeOff {
				switch {
				case piece != 0:
					sb.WriteString(fmt.Sprintf("%c ", piece))
				case highlighted(row, column):
					sb.WriteString("* ")
				default:
					sb.WriteString(". ")
				}
				continue
			}

			// a1 is dark
			bg := theme.lightBg
			if (row+column)%2 == 0 {
				bg = theme.darkBg
			}
			if highlighted(row, column) {
				bg = theme.highlightBg
			}

			if piece == 0 {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
			} else {
				color := theme.black
				if piece >= 'A' && piece <= 'Z' {
					color = theme.white
				}
				sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, color, piece, theme.reset))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", row))
	}
	sb.WriteString("  a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

// DescribeMove renders a move the way the history lists it
func DescribeMove(m *game.LastMove) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s%s", m.Piece.Side.Name(), m.From(), m.To()))
	if m.CapturedPiece != nil {
		sb.WriteString(fmt.Sprintf(" x%s", m.CapturedPiece.Kind))
	}
	if m.Promoted != core.KindNone {
		sb.WriteString(fmt.Sprintf(" =%s", m.Promoted))
	}
	if m.Hook != nil {
		sb.WriteString(fmt.Sprintf(" (rook %s%s)", m.Hook.RookFrom, m.Hook.RookTo))
	}
	return sb.String()
}

func (c *CLI) ShowCandidates(piece board.View, squares []string) {
	if len(squares) == 0 {
		c.ShowMessage(fmt.Sprintf("%s on %s has no moves", piece.Name(), piece.Square()))
		return
	}
	c.ShowMessage(fmt.Sprintf("%s on %s: %s", piece.Name(), piece.Square(), strings.Join(squares, " ")))
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new              - Start a new game from the standard position
  resume <FEN>     - Start from a placement, optionally followed by w or b
  <move>           - Make a move (e.g., e2e4, a7a8n to promote to a knight)
  <move> nohook    - Move the king without the rook hook
  moves <square>   - List the moves of the piece on a square
  board            - Redraw the board
  color <theme>    - Set board color theme (off|brown|green|gray)
  verbose          - Toggle detailed move information
  history          - Show game move history and positions
  quit/exit        - Exit the program
  help/?           - Show this help message`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Chess!")
	c.ShowMessage("Commands: new, resume <FEN>, <move>, moves <square>, history, help/?, quit/exit")
	c.ShowMessage("Example: 'resume 3k4/8/8/8/8/8/8/R2K3R w' to start from a puzzle.")
	c.ShowMessage("")
}

func (c *CLI) ShowGameHistory(initialFEN string, moves []string, currentFEN string, state core.State) {
	c.ShowMessage(fmt.Sprintf("Starting FEN: %s", initialFEN))
	for i, move := range moves {
		c.ShowMessage(fmt.Sprintf("%d. %s", i+1, move))
	}
	c.ShowMessage(fmt.Sprintf("Current FEN: %s", currentFEN))
	c.ShowMessage(fmt.Sprintf("Game state: %s", state))
}

func (c *CLI) ShowGameOver(state core.State, mated *board.View) {
	if mated != nil {
		c.ShowMessage(fmt.Sprintf("\nCheckmate: %s on %s", mated.Name(), mated.Square()))
	}
	c.ShowMessage(fmt.Sprintf("\nGame Over: %s", state))
	c.ShowMessage("Start a new game with 'new' or 'resume'.")
}

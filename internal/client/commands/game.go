// FILE: internal/client/commands/game.go
package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chess/internal/client/display"
	"chess/internal/core"
)

const requestTimeout = 10 * time.Second

func (r *Registry) registerGameCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Group:       "Game",
		Description: "Create a new game and take both seats",
		Usage:       "new [placement] [w|b]",
		Handler:     newGameHandler,
	})

	r.Register(&Command{
		Name:        "join",
		ShortName:   "j",
		Group:       "Game",
		Description: "Watch a game, or play it with a seat token",
		Usage:       "join <gameId> [token]",
		Handler:     joinGameHandler,
	})

	r.Register(&Command{
		Name:        "seat",
		ShortName:   "t",
		Group:       "Game",
		Description: "Switch to the white or black seat of a game you created",
		Usage:       "seat <w|b>",
		Handler:     seatHandler,
	})

	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Group:       "Game",
		Description: "Make a move",
		Usage:       "move <e2e4|a7a8n> [nohook]",
		Handler:     moveHandler,
	})

	r.Register(&Command{
		Name:        "moves",
		ShortName:   "c",
		Group:       "Game",
		Description: "List the moves of a piece",
		Usage:       "moves <square>",
		Handler:     candidatesHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Group:       "Game",
		Description: "Show board and game state",
		Usage:       "show",
		Handler:     showBoardHandler,
	})

	r.Register(&Command{
		Name:        "state",
		ShortName:   "s",
		Group:       "Game",
		Description: "Show raw game JSON",
		Usage:       "state",
		Handler:     gameStateHandler,
	})

	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Group:       "Game",
		Description: "Delete a game",
		Usage:       "delete [gameId]",
		Handler:     deleteGameHandler,
	})

	r.Register(&Command{
		Name:        "poll",
		ShortName:   "p",
		Group:       "Game",
		Description: "Long-poll for the next move",
		Usage:       "poll",
		Handler:     pollHandler,
	})
}

func requireGame(s *Session) (string, error) {
	if s.CurrentGame == "" {
		return "", fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}
	return s.CurrentGame, nil
}

func newGameHandler(s *Session, args []string) error {
	req := core.CreateGameRequest{}
	if len(args) > 0 {
		req.FEN = strings.Join(args, " ")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := s.Client.CreateGame(ctx, req)
	if err != nil {
		return err
	}
	if resp.Seats == nil {
		return fmt.Errorf("server returned no seat tokens")
	}

	s.clearGame()
	s.setGame(resp)
	s.Seats = resp.Seats
	s.UseSeat(resp.Turn)

	fmt.Fprintf(s.Out, "%sGame created: %s%s\n", display.Green, resp.GameID, display.Reset)
	fmt.Fprintf(s.Out, "White seat token: %s\n", resp.Seats.White.Token)
	fmt.Fprintf(s.Out, "Black seat token: %s\n", resp.Seats.Black.Token)
	fmt.Fprintf(s.Out, "Playing as %s, switch with 'seat w|b'\n", display.ColorForTurn(resp.Turn))
	return nil
}

func joinGameHandler(s *Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: join <gameId> [token]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := s.Client.GetGame(ctx, args[0])
	if err != nil {
		return err
	}

	s.clearGame()
	s.setGame(resp)
	if len(args) > 1 {
		s.Client.SetToken(args[1])
		fmt.Fprintf(s.Out, "%sJoined game with seat token: %s%s\n", display.Green, resp.GameID, display.Reset)
	} else {
		fmt.Fprintf(s.Out, "%sWatching game: %s%s\n", display.Green, resp.GameID, display.Reset)
	}
	fmt.Fprintf(s.Out, "Turn: %s | State: %s | Moves: %d\n", resp.Turn, resp.State, resp.MoveCount)
	return nil
}

func seatHandler(s *Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: seat <w|b>")
	}
	if !s.UseSeat(args[0]) {
		return fmt.Errorf("no %q seat held for this game", args[0])
	}
	fmt.Fprintf(s.Out, "Playing as %s\n", display.ColorForTurn(args[0]))
	return nil
}

// parseMove splits "a7a8n" into squares and promotion
func parseMove(args []string) (core.MoveRequest, error) {
	if len(args) < 1 {
		return core.MoveRequest{}, fmt.Errorf("usage: move <e2e4|a7a8n> [nohook]")
	}

	move := strings.ToLower(args[0])
	if len(move) != 4 && len(move) != 5 {
		return core.MoveRequest{}, fmt.Errorf("invalid move %q", args[0])
	}

	req := core.MoveRequest{From: move[0:2], To: move[2:4]}
	if len(move) == 5 {
		req.Promotion = move[4:]
	}
	for _, flag := range args[1:] {
		if flag != "nohook" {
			return core.MoveRequest{}, fmt.Errorf("unknown move option %q", flag)
		}
		req.DisableHook = true
	}
	return req, nil
}

func moveHandler(s *Session, args []string) error {
	gameID, err := requireGame(s)
	if err != nil {
		return err
	}

	req, err := parseMove(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := s.Client.MakeMove(ctx, gameID, req)
	if err != nil {
		return err
	}

	s.setGame(resp)
	fmt.Fprintf(s.Out, "%sMove accepted%s\n", display.Green, display.Reset)
	printLastMove(s, resp)

	// Hot seat: follow the side to move when both seats are held
	if s.Seats != nil && resp.State == core.StateOngoing.String() {
		s.UseSeat(resp.Turn)
	}
	return nil
}

func candidatesHandler(s *Session, args []string) error {
	gameID, err := requireGame(s)
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: moves <square>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := s.Client.Candidates(ctx, gameID, args[0])
	if err != nil {
		return err
	}

	squares := make([]string, 0, len(resp.Candidates))
	for _, c := range resp.Candidates {
		sq := c.Square
		if c.Capture {
			sq = "x" + sq
		}
		if c.Hook != nil {
			sq += "(hook)"
		}
		squares = append(squares, sq)
	}

	fmt.Fprintf(s.Out, "%s %s on %s: %s\n", resp.Piece.Side, resp.Piece.Kind, resp.Square, strings.Join(squares, " "))
	return nil
}

func showBoardHandler(s *Session, args []string) error {
	gameID, err := requireGame(s)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	game, err := s.Client.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	board, err := s.Client.GetBoard(ctx, gameID)
	if err != nil {
		return err
	}

	s.setGame(game)

	fmt.Fprintln(s.Out)
	display.RenderBoard(s.Out, board.Board)

	fmt.Fprintf(s.Out, "\nFEN: %s\n", game.FEN)
	fmt.Fprintf(s.Out, "Turn: %s | State: %s | Moves: %d\n",
		display.ColorForTurn(game.Turn), game.State, game.MoveCount)
	if game.InCheck && game.State == core.StateOngoing.String() {
		fmt.Fprintf(s.Out, "%s%s is in check%s\n", display.Yellow, display.ColorForTurn(game.Turn), display.Reset)
	}
	printLastMove(s, game)
	return nil
}

func printLastMove(s *Session, game *core.GameResponse) {
	last := game.LastMove
	if last == nil {
		return
	}

	fmt.Fprintf(s.Out, "Last move: %s %s%s", last.Piece.Kind, last.From, last.To)
	if last.Captured {
		fmt.Fprint(s.Out, " (capture)")
	}
	if last.Promotion != "" {
		fmt.Fprintf(s.Out, " promoted to %s", last.Promotion)
	}
	if last.Hook != nil {
		fmt.Fprintf(s.Out, " rook %s%s", last.Hook.RookFrom, last.Hook.RookTo)
	}
	fmt.Fprintln(s.Out)

	if game.State != core.StateOngoing.String() {
		fmt.Fprintf(s.Out, "%sGame over: %s%s\n", display.Magenta, game.State, display.Reset)
	}
}

func gameStateHandler(s *Session, args []string) error {
	gameID, err := requireGame(s)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := s.Client.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	s.setGame(resp)

	fmt.Fprintf(s.Out, "%sGame State:%s\n", display.Cyan, display.Reset)
	display.PrettyPrintJSON(s.Out, resp)
	return nil
}

func deleteGameHandler(s *Session, args []string) error {
	gameID := s.CurrentGame
	if len(args) > 0 {
		gameID = args[0]
	}
	if gameID == "" {
		return fmt.Errorf("usage: delete [gameId]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := s.Client.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	if gameID == s.CurrentGame {
		s.clearGame()
	}
	fmt.Fprintf(s.Out, "%sGame deleted: %s%s\n", display.Green, gameID, display.Reset)
	return nil
}

func pollHandler(s *Session, args []string) error {
	gameID, err := requireGame(s)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "%sWaiting for a move after #%d...%s\n", display.Cyan, s.LastMoveCount, display.Reset)
	resp, err := s.Client.WaitForMove(context.Background(), gameID, s.LastMoveCount)
	if err != nil {
		return err
	}

	if resp.MoveCount == s.LastMoveCount {
		fmt.Fprintln(s.Out, "No new moves")
		return nil
	}

	s.setGame(resp)
	printLastMove(s, resp)
	return nil
}

// FILE: cmd/chess-client/main.go
// Package main implements an interactive debugging client for the chess server API.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"chess/internal/client/api"
	"chess/internal/client/commands"
	"chess/internal/client/display"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Chess server API base URL")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		display.Disable()
	}

	client := api.New(*baseURL)
	client.Output = os.Stdout

	s := &commands.Session{
		Client: client,
		Out:    os.Stdout,
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("chess"),
		HistoryFile:     ".chess_client_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sChess Debug Client%s\n", display.Cyan, display.Reset)
	fmt.Printf("%sAPI: %s%s\n", display.Cyan, client.BaseURL, display.Reset)
	fmt.Printf("Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s)

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "quit" {
			break
		}
		if !registry.Execute(line) {
			break
		}
	}
}

func buildPrompt(s *commands.Session) string {
	promptStr := "chess"

	if s.CurrentGame != "" {
		id := s.CurrentGame
		if len(id) > 8 {
			id = id[:8]
		}
		promptStr += display.Yellow + " [" + display.Reset + display.White + id + display.Reset
		if s.PlayerColor != "" {
			promptStr += " " + display.ColorForTurn(s.PlayerColor)
		}
		promptStr += display.Yellow + "]" + display.Reset
	}

	if g := s.GameState; g != nil {
		if g.State == "ongoing" {
			promptStr += " - Turn:" + display.ColorForTurn(g.Turn)
		} else {
			promptStr += " - " + g.State
		}
	}

	return display.Prompt(promptStr)
}

// FILE: cmd/chess/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"chess/internal/cli"
	clitransport "chess/internal/transport/cli"
)

func main() {
	historyFile := flag.String("history", ".chess_history", "Readline history file (empty to disable)")
	theme := flag.String("theme", "", "Board color theme: off, brown, green, gray (default: brown on a terminal)")
	flag.Parse()

	rl, err := clitransport.NewReadline(*historyFile)
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	view := cli.New(rl.Stdout())
	if *theme != "" {
		if err := view.SetTheme(cli.ColorTheme(*theme)); err != nil {
			fmt.Printf("Failed to start: %v\n", err)
			os.Exit(1)
		}
	} else if err := view.SetTheme(cli.DefaultTheme(os.Stdout)); err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}

	handler := clitransport.New(rl, view)

	view.ShowWelcome()
	handler.Run() // All game loop logic is in the handler
}

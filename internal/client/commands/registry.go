// FILE: internal/client/commands/registry.go
package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"chess/internal/client/display"
)

// ErrExit is returned by the exit command
var ErrExit = errors.New("exit")

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Group       string
	Description string
	Usage       string
	Handler     func(*Session, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  *Session
	commands map[string]*Command
}

func NewRegistry(session *Session) *Registry {
	r := &Registry{
		session:  session,
		commands: make(map[string]*Command),
	}

	r.registerGameCommands()
	r.registerDebugCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Group:       "Utility",
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     r.helpHandler,
	})

	r.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Group:       "Utility",
		Description: "Exit the client",
		Usage:       "exit",
		Handler: func(*Session, []string) error {
			return ErrExit
		},
	})

	return r
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// Execute runs one input line. It returns false when the client should exit
func (r *Registry) Execute(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	// Trailing -v turns on verbose output for this command only
	r.session.Verbose = false
	if parts[len(parts)-1] == "-v" {
		r.session.Verbose = true
		parts = parts[:len(parts)-1]
		if len(parts) == 0 {
			return true
		}
	}

	cmdName := parts[0]
	args := parts[1:]
	out := r.session.Out

	cmd, exists := r.commands[cmdName]
	if !exists {
		fmt.Fprintf(out, "%sUnknown command: %s%s\n", display.Red, cmdName, display.Reset)
		fmt.Fprintf(out, "Type 'help' for available commands\n")
		return true
	}

	r.session.Client.SetVerbose(r.session.Verbose)

	if err := cmd.Handler(r.session, args); err != nil {
		if errors.Is(err, ErrExit) {
			fmt.Fprintf(out, "%sGoodbye!%s\n", display.Cyan, display.Reset)
			return false
		}
		fmt.Fprintf(out, "%sError: %s%s\n", display.Red, err.Error(), display.Reset)
	}
	return true
}

func (r *Registry) helpHandler(s *Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(s.Out, "\n%s%s%s - %s\n", display.Cyan, cmd.Name, display.Reset, cmd.Description)
		if cmd.ShortName != "" {
			fmt.Fprintf(s.Out, "Short form: %s%s%s\n", display.Cyan, cmd.ShortName, display.Reset)
		}
		fmt.Fprintf(s.Out, "Usage: %s\n", cmd.Usage)
		return nil
	}

	groups := make(map[string][]*Command)
	for name, cmd := range r.commands {
		if name == cmd.Name {
			groups[cmd.Group] = append(groups[cmd.Group], cmd)
		}
	}

	fmt.Fprintf(s.Out, "\n%sAvailable Commands:%s\n", display.Cyan, display.Reset)
	for _, group := range []string{"Game", "Utility"} {
		cmds := groups[group]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })

		fmt.Fprintf(s.Out, "\n%s%s Commands:%s\n", display.Yellow, group, display.Reset)
		for _, cmd := range cmds {
			shortPart := "    "
			if cmd.ShortName != "" {
				shortPart = fmt.Sprintf("[%s] ", cmd.ShortName)
			}
			fmt.Fprintf(s.Out, "  %s%-10s %s\n", shortPart, cmd.Name, cmd.Description)
		}
	}

	fmt.Fprintf(s.Out, "\nType 'help <command>' for detailed usage\n")
	fmt.Fprintf(s.Out, "Add '-v' to any command for verbose output\n")
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

const (
	appName    = "userreconcile"
	confirmYes = "yes"
)

// Command interface that all subcommands must implement
type Command interface {
	Name() string
	Usage() string
	Description() string
	Run(ctx context.Context, args []string) error
}

// Registry manages the available commands
type Registry struct {
	commands map[string]Command
	aliases  map[string]string
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command to the registry under its name and any aliases
func (r *Registry) Register(cmd Command, aliases ...string) {
	r.commands[cmd.Name()] = cmd
	for _, alias := range aliases {
		r.aliases[alias] = cmd.Name()
	}
}

// Get retrieves a command by name or alias
func (r *Registry) Get(name string) (Command, bool) {
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns a sorted list of all registered commands
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

func (r *Registry) aliasesOf(name string) []string {
	var out []string
	for alias, target := range r.aliases {
		if target == name {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// PrintHelp prints the usage information
func (r *Registry) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <command> [args...]\n", appName)
	fmt.Fprintln(w, "\nAvailable Commands:")

	cmds := r.List()
	maxLen := 0
	for _, cmd := range cmds {
		if l := len(cmd.Usage()); l > maxLen {
			maxLen = l
		}
	}

	for _, cmd := range cmds {
		padding := maxLen - len(cmd.Usage()) + 2
		fmt.Fprintf(w, "  %s%*s%s", cmd.Usage(), padding, "", cmd.Description())
		if aliases := r.aliasesOf(cmd.Name()); len(aliases) > 0 {
			fmt.Fprintf(w, " (alias: %s)", strings.Join(aliases, ", "))
		}
		fmt.Fprintln(w)
	}
}

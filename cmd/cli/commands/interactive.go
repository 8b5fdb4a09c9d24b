package commands

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Run several commands in one session, authenticating and connecting once",
		Long: `Start a session that reads commands line by line, e.g. "generate --dry-run --seed 7".
The sheets client and database stay open between commands.

Type 'help' to list commands and 'exit' or 'quit' to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := newSession(cmd.Parent(), cmd.OutOrStdout())
			fmt.Fprintln(session.out, "\nInteractive session started. Type 'help' for commands, 'exit' to leave")
			return session.run(cmd.InOrStdin())
		},
	}
}

// session dispatches input lines to the root command's siblings without
// re-running the root's PersistentPreRunE
type session struct {
	commands map[string]*cobra.Command
	out      io.Writer
}

func newSession(root *cobra.Command, out io.Writer) *session {
	commands := make(map[string]*cobra.Command)
	for _, c := range root.Commands() {
		switch c.Name() {
		case "interactive", "completion", "help":
			continue
		}
		commands[c.Name()] = c
	}
	return &session{commands: commands, out: out}
}

func (s *session) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}
		if done := s.execute(scanner.Text()); done {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

// execute runs one line and reports whether the session should end
func (s *session) execute(line string) bool {
	parts, err := splitArgs(line)
	if err != nil {
		fmt.Fprintf(s.out, "✗ %v\n\n", err)
		return false
	}
	if len(parts) == 0 {
		return false
	}

	name, args := parts[0], parts[1:]
	switch name {
	case "exit", "quit":
		fmt.Fprintln(s.out, "Bye")
		return true
	case "help":
		s.printHelp()
		return false
	}

	target, ok := s.commands[name]
	if !ok {
		fmt.Fprintf(s.out, "✗ Unknown command: %s (type 'help' for commands)\n\n", name)
		return false
	}

	// flags keep their values between Execute calls, so reset them first
	target.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	})

	if err := target.ParseFlags(args); err != nil {
		fmt.Fprintf(s.out, "✗ %v\n\n", err)
		return false
	}
	args = target.Flags().Args()

	if target.Args != nil {
		if err := target.Args(target, args); err != nil {
			fmt.Fprintf(s.out, "✗ %v\n\n", err)
			return false
		}
	}

	if target.RunE != nil {
		if err := target.RunE(target, args); err != nil {
			fmt.Fprintf(s.out, "✗ Error: %v\n\n", err)
		}
	} else if target.Run != nil {
		target.Run(target, args)
	}
	return false
}

func (s *session) printHelp() {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(s.out, "\nCommands:")
	for _, name := range names {
		c := s.commands[name]
		fmt.Fprintf(s.out, "  %-22s %s\n", c.Use, c.Short)
	}
	fmt.Fprintf(s.out, "  %-22s %s\n", "help", "Show this list")
	fmt.Fprintf(s.out, "  %-22s %s\n\n", "exit, quit", "Leave the session")
}

// splitArgs splits a line on whitespace. Single or double quotes group
// words into one argument.
func splitArgs(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var quote rune
	inArg := false

	for _, r := range line {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", quote)
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}

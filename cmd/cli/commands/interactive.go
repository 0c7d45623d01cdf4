package commands

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session that keeps changes between commands",
		Long: `Start an interactive session where you can run multiple commands against the
same in-memory records. Reports, updates and deletes last until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(cmd)
			fmt.Fprintln(s.out, "\n🚀 Starting interactive session...")
			fmt.Fprintln(s.out, "Type 'help' for available commands, 'exit' or 'quit' to leave")

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(s.out, "> ")
				if !scanner.Scan() {
					break
				}
				if s.handle(scanner.Text()) {
					return nil
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}
			return nil
		},
	}
}

// session runs sibling commands in-process. They share one AppContext, so records
// created in one command are visible to the next.
type session struct {
	out      io.Writer
	commands map[string]*cobra.Command
}

func newSession(cmd *cobra.Command) *session {
	s := &session{out: cmd.OutOrStdout(), commands: make(map[string]*cobra.Command)}
	for _, sub := range cmd.Parent().Commands() {
		switch sub.Name() {
		case "interactive", "completion", "help":
		default:
			s.commands[sub.Name()] = sub
		}
	}
	return s
}

// handle runs one input line and reports whether the session should end
func (s *session) handle(line string) bool {
	parts, err := parseCommandLine(line)
	if err != nil {
		fmt.Fprintf(s.out, "❌ Error parsing command: %v\n\n", err)
		return false
	}
	if len(parts) == 0 {
		return false
	}

	switch name := parts[0]; name {
	case "exit", "quit":
		fmt.Fprintln(s.out, "👋 Goodbye!")
		return true
	case "help":
		s.printHelp()
	default:
		target, ok := s.commands[name]
		if !ok {
			fmt.Fprintf(s.out, "❌ Unknown command: %s (type 'help' for available commands)\n\n", name)
			return false
		}
		if err := s.run(target, parts[1:]); err != nil {
			fmt.Fprintf(s.out, "❌ Error: %v\n\n", err)
		}
	}
	return false
}

// run calls the command's RunE directly. Going through Execute would re-run the
// root's PersistentPreRunE and rebuild the stores.
func (s *session) run(target *cobra.Command, args []string) error {
	target.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
			return
		}
		_ = f.Value.Set(f.DefValue)
	})

	if err := target.ParseFlags(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	args = target.Flags().Args()
	if target.Args != nil {
		if err := target.Args(target, args); err != nil {
			return err
		}
	}

	if target.RunE != nil {
		return target.RunE(target, args)
	}
	if target.Run != nil {
		target.Run(target, args)
	}
	return nil
}

func (s *session) printHelp() {
	fmt.Fprintln(s.out, "\nAvailable commands:")
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		c := s.commands[name]
		fmt.Fprintf(s.out, "  %-30s %s\n", c.Use, c.Short)
	}
	fmt.Fprintf(s.out, "\n  %-30s %s\n", "help", "Show this help message")
	fmt.Fprintf(s.out, "  %-30s %s\n\n", "exit, quit", "Leave the interactive session")
}

// parseCommandLine splits a line into arguments. Single or double quotes group
// words and are removed; "" gives an empty argument.
func parseCommandLine(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inArg   bool
	)

	for _, r := range line {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote, inArg = r, true
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

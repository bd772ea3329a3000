package cli

import (
	"fmt"

	"timeturner/internal/parser"
	"timeturner/internal/render"

	"github.com/spf13/cobra"
)

// addCommand records a new segment. Flag parsing is disabled so that
// delta tokens like "-1h" and the "-" range separator survive; the
// few flags are picked out by hand.
func (c *CLI) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "add [time tokens] [@tag ...]",
		Aliases: []string{"a"},
		Short:   "Add a segment, resolving conflicts by tag priority",
		Example: `  timeturner add                  start an open segment now
  timeturner add -1h              started an hour ago
  timeturner add 9:00 - 17:00     a fixed range today
  timeturner add 05-01 @vacation  a full vacation day`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args, holiday := extractFlag(args, "--holiday")
			args, description := extractValueFlag(args, "--description")
			args, passive := extractFlag(args, "--passive")

			params, err := parser.ParseAddArgs(args, c.now(), holiday, c.service.Settings())
			if err != nil {
				return err
			}
			params.Description = description
			params.Passive = params.Passive || passive

			segments, err := c.service.Add(params)
			if err != nil {
				return err
			}
			if len(segments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing added.")
				return nil
			}
			for i := range segments {
				fmt.Fprintln(cmd.OutOrStdout(), render.Segment(&segments[i]))
			}
			return nil
		},
	}
}

// extractFlag removes a boolean flag token from args.
func extractFlag(args []string, name string) ([]string, bool) {
	remaining := args[:0:0]
	found := false
	for _, arg := range args {
		if arg == name {
			found = true
			continue
		}
		remaining = append(remaining, arg)
	}
	return remaining, found
}

// extractValueFlag removes a flag token and its following value.
func extractValueFlag(args []string, name string) ([]string, string) {
	remaining := args[:0:0]
	value := ""
	for i := 0; i < len(args); i++ {
		if args[i] == name && i+1 < len(args) {
			value = args[i+1]
			i++
			continue
		}
		remaining = append(remaining, args[i])
	}
	return remaining, value
}

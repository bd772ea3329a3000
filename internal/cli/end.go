package cli

import (
	"fmt"

	"timeturner/internal/parser"
	"timeturner/internal/render"

	"github.com/spf13/cobra"
)

func (c *CLI) endCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "end [time tokens]",
		Aliases:            []string{"e"},
		Short:              "End the currently open segment",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			end, err := parser.SingleTimeParse(args, c.now())
			if err != nil {
				return err
			}
			segment, err := c.service.End(end)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Segment(segment))
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"timeturner/internal/parser"
	"timeturner/internal/render"

	"github.com/spf13/cobra"
)

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "list [time tokens | week | month | year]",
		Aliases:            []string{"l"},
		Short:              "List segments and daily summaries",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parser.ParseListArgs(args, c.now())
			if err != nil {
				return err
			}
			days, err := c.service.List(start, end)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.DaySummaryTable(days))
			return nil
		},
	}
}

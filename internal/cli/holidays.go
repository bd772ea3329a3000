package cli

import (
	"fmt"

	"timeturner/internal/render"

	"github.com/spf13/cobra"
)

func (c *CLI) holidaysCommand() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "holidays <calendar-file>",
		Short: "Import public holidays from a JSON calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = c.now().Year()
			}
			segments, err := c.service.ImportHolidays(year, args[0])
			if err != nil {
				return err
			}
			for i := range segments {
				fmt.Fprintln(cmd.OutOrStdout(), render.Segment(&segments[i]))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d holidays.\n", len(segments))
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Year to import (defaults to the current year)")
	return cmd
}

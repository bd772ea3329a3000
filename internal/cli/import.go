package cli

import (
	"fmt"
	"strings"

	"timeturner/internal/models"

	"github.com/spf13/cobra"
)

func (c *CLI) importCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "import <file>",
		Aliases: []string{"i"},
		Short:   "Import segments from a hamster text export or a JSON dump",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var segments []models.Segment
			var err error
			if asJSON || strings.HasSuffix(args[0], ".json") {
				segments, err = c.service.ImportJSON(args[0])
			} else {
				segments, err = c.service.ImportText(args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d segments.\n", len(segments))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Treat the file as a JSON dump")
	return cmd
}

// Package cli wires the tracker service into cobra commands.
package cli

import (
	"time"

	"timeturner/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CLI bundles the command tree with its dependencies.
type CLI struct {
	service *service.TrackerService
	logger  *logrus.Logger
	now     func() time.Time
	root    *cobra.Command
}

// New builds the full command tree around the given service.
func New(svc *service.TrackerService, logger *logrus.Logger) *CLI {
	c := &CLI{
		service: svc,
		logger:  logger,
		now:     time.Now,
	}

	c.root = &cobra.Command{
		Use:   "timeturner",
		Short: "Track working time from the command line",
		Long: `timeturner records working time as segments and reconciles
overlapping entries by tag priority. Holidays, sick days and vacation
are full-day segments that override ordinary clocked time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c.root.AddCommand(
		c.addCommand(),
		c.endCommand(),
		c.listCommand(),
		c.holidaysCommand(),
		c.importCommand(),
	)
	return c
}

// Execute runs the command tree.
func (c *CLI) Execute() error {
	return c.root.Execute()
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"discord-logger/internal/config"
	"discord-logger/internal/observability/logging"
)

// cli carries the state shared by every subcommand.
type cli struct {
	out      io.Writer
	logLevel string
	open     opener
	logger   *slog.Logger
}

func newRootCmd(out io.Writer, open opener) *cobra.Command {
	c := &cli{out: out, open: open}

	root := &cobra.Command{
		Use:           "relayctl",
		Short:         "Operate the Discord logger relay",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			c.logger = logging.NewTextLogger(os.Stderr, c.logLevel)
			slog.SetDefault(c.logger)
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		c.validateURLCmd(),
		c.testCmd(),
		c.settingsCmd(),
		c.logsCmd(),
		c.migrateCmd(),
	)
	return root
}

// withStores loads the store configuration, opens the stores and closes
// them after fn returns.
func (c *cli) withStores(cmd *cobra.Command, fn func(s *stores) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateStore(); err != nil {
		return err
	}

	s, err := c.open(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer s.Close(c.logger)
	return fn(s)
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

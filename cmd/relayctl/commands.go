package main

import (
	"errors"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"discord-logger/internal/domain/entity"
	"discord-logger/internal/handler/http/admin"
	"discord-logger/internal/infra/db"
)

const timeLayout = "2006-01-02 15:04:05"

// errTestFailed makes a failed connection test exit non-zero.
var errTestFailed = errors.New("connection test failed")

func (c *cli) validateURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-url URL",
		Short: "Check that a URL is a Discord webhook endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := entity.ValidateWebhookURL(args[0]); err != nil {
				return err
			}
			c.printf("valid: %s\n", entity.MaskWebhookURL(args[0]))
			return nil
		},
	}
}

func (c *cli) testCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Send the test embed with the saved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStores(cmd, func(s *stores) error {
				cfg, err := s.Settings.Load(cmd.Context())
				if err != nil {
					return err
				}
				out := s.Engine.Deliver(cmd.Context(), admin.TestMessage(), cfg)
				c.printf("%s\n", admin.TestResultMessage(out))
				if out.Detail != "" {
					c.printf("detail: %s\n", out.Detail)
				}
				if !out.Success() {
					return errTestFailed
				}
				return nil
			})
		},
	}
}

func (c *cli) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or change the webhook options",
	}

	var reveal bool
	get := &cobra.Command{
		Use:   "get [KEY]",
		Short: "Print one option, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStores(cmd, func(s *stores) error {
				if len(args) == 1 {
					v, err := s.Settings.Get(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					c.printf("%s\n", displaySetting(args[0], v, reveal))
					return nil
				}
				all, err := s.Settings.All(cmd.Context())
				if err != nil {
					return err
				}
				keys := make([]string, 0, len(all))
				for k := range all {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					c.printf("%s=%s\n", k, displaySetting(k, all[k], reveal))
				}
				return nil
			})
		},
	}
	get.Flags().BoolVar(&reveal, "reveal", false, "print the webhook URL unmasked")

	set := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Sanitize, validate and store one option",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStores(cmd, func(s *stores) error {
				if err := s.Settings.Save(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				c.printf("Setting saved\n")
				return nil
			})
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}

func displaySetting(key, value string, reveal bool) string {
	if key == entity.SettingWebhookURL && !reveal {
		return entity.MaskWebhookURL(value)
	}
	return value
}

func (c *cli) logsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Inspect or clear the activity log",
	}

	var limit, offset int
	list := &cobra.Command{
		Use:   "list",
		Short: "Print entries newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStores(cmd, func(s *stores) error {
				entries, err := s.Activity.List(cmd.Context(), limit, offset)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					c.printf("No logs found.\n")
					return nil
				}
				tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "TIME\tTYPE\tMESSAGE\tDETAILS")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
						e.Timestamp.Format(timeLayout), e.Type, e.Message, e.Details)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 50, "entries to print (at most 50)")
	list.Flags().IntVar(&offset, "offset", 0, "entries to skip")

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to clear the activity log without --yes")
			}
			return c.withStores(cmd, func(s *stores) error {
				if err := s.Activity.Clear(cmd.Context()); err != nil {
					return err
				}
				c.printf("Logs cleared successfully\n")
				return nil
			})
		},
	}
	clearCmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Print total, success and error counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStores(cmd, func(s *stores) error {
				st, err := s.Activity.Stats(cmd.Context())
				if err != nil {
					return err
				}
				c.printf("total=%d success=%d error=%d\n", st.Total, st.Success, st.Error)
				return nil
			})
		},
	}

	cmd.AddCommand(list, clearCmd, stats)
	return cmd
}

func (c *cli) migrateCmd() *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create (or with --down, drop) the relay tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStores(cmd, func(s *stores) error {
				if s.DB == nil {
					return errors.New("migrate: no database")
				}
				if down {
					if err := db.MigrateDown(cmd.Context(), s.DB); err != nil {
						return err
					}
					c.printf("tables dropped\n")
					return nil
				}
				if err := db.MigrateUp(cmd.Context(), s.DB); err != nil {
					return err
				}
				c.printf("migrations applied\n")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "drop the tables and every log row")
	return cmd
}

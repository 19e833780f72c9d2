package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/ozcitizen/backend/internal/infrastructure/bootstrap"
	"github.com/ozcitizen/backend/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

// cli holds state shared by every subcommand for one invocation.
type cli struct {
	device  string
	verbose bool

	cfg  *config.Config
	deps *bootstrap.Deps
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "citizenctl",
		Short: "Maintenance tool for the OzCitizen backend",
		Long: `citizenctl works directly against the configured store (DB_DRIVER, DB_DSN)
using the same environment as the server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.deps == nil {
				return nil
			}
			return c.deps.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&c.device, "device", "local", "device id whose data to operate on")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newStatsCmd(c),
		newResetCmd(c),
		newImportTermsCmd(c),
		newLookupCmd(c),
		newWarmCmd(c),
		newSweepCmd(c),
		newAdminTokenCmd(c),
	)
	return root
}

func (c *cli) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg

	out := io.Discard
	if c.verbose {
		out = cmd.ErrOrStderr()
	}
	logger := slog.New(slog.NewTextHandler(out, nil))

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	deps, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	c.deps = deps
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

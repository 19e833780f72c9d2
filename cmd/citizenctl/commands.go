package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ozcitizen/backend/internal/auth"
	"github.com/spf13/cobra"
)

func newStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the device's statistics and category progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := c.deps.Registry.Get(cmd.Context(), c.device)
			state := ctrl.Snapshot()
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"device":     c.device,
				"statistics": state.Statistics,
				"progress":   state.Progress,
			})
		},
	}
}

func newResetCmd(c *cli) *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the device's attempts and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := c.deps.Registry.Get(cmd.Context(), c.device)
			ctrl.Reset(cmd.Context(), full)
			fmt.Fprintf(cmd.OutOrStdout(), "reset %s (full=%t)\n", c.device, full)
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "also clear bookmarks, settings and open quizzes")
	return cmd
}

func newImportTermsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import-terms <file>",
		Short: "Merge a JSON term list into the term database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			res, err := c.deps.Terms.Import(cmd.Context(), data)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newLookupCmd(c *cli) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "lookup <text>",
		Short: "Show the known terms found in a piece of text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), c.deps.Terms.Lookup(args[0], lang))
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "translation language code")
	return cmd
}

func newWarmCmd(c *cli) *cobra.Command {
	var (
		lang    string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "warm-analysis",
		Short: "Analyze every bundled question so the cache is populated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := c.deps.Analysis.Warm(cmd.Context(), c.deps.Bank.All(), lang, workers)
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "en", "target language for translations")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent analyses")
	return cmd
}

func newSweepCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-cache",
		Short: "Delete expired analysis cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.deps.KVCache == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "analysis cache is in redis; entries expire on their own")
				return nil
			}
			n, err := c.deps.KVCache.Sweep(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired entries\n", n)
			return nil
		},
	}
}

func newAdminTokenCmd(c *cli) *cobra.Command {
	var (
		name string
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "issue-admin-token",
		Short: "Print a token for the admin term routes (import, clear)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := auth.NewService(c.cfg.TokenSecret, c.cfg.TokenTTL)
			if err != nil {
				return err
			}
			token, err := svc.IssueAdmin(name, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "who the token is for (required)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

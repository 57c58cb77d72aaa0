package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/medicore/ai-service/config"
	"github.com/medicore/ai-service/interactions"
	"github.com/medicore/ai-service/inventory"
	"github.com/medicore/ai-service/logging"
	"github.com/medicore/ai-service/prediction"
	"github.com/spf13/cobra"
)

const restockTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli holds the configuration loaded before any subcommand runs
type cli struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:          "medicore",
		Short:        "Medicore AI service: disease forecasts, restock plans and drug interaction checks",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to read .env: %w", err)
			}

			loaded, err := config.Load()
			if err != nil {
				return err
			}
			c.cfg = loaded

			if cmd.Name() != "serve" {
				verbose, _ := cmd.Flags().GetBool("verbose")
				logging.InitLogger(logging.Options{
					Env:     c.cfg.Env,
					Level:   c.cfg.LogLevel,
					Verbose: verbose,
					Console: cmd.ErrOrStderr(),
				})
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().Bool("verbose", false, "Log to stderr even in the test environment")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(c.cfg)
		},
	})
	rootCmd.AddCommand(predictCmd())
	rootCmd.AddCommand(interactionsCmd())
	rootCmd.AddCommand(c.restockCmd())

	return rootCmd
}

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Forecast disease cases for a region, or Overall for every region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			region, _ := cmd.Flags().GetString("region")
			days, _ := cmd.Flags().GetInt("days")
			month, _ := cmd.Flags().GetInt("month")

			if month < 0 || month > 12 {
				return fmt.Errorf("month must be between 1 and 12, got %d", month)
			}
			m := time.Now().Month()
			if month != 0 {
				m = time.Month(month)
			}

			report, err := prediction.NewDefaultEngine().Predict(region, days, m)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().String("region", "Neelambur", "Region name, or Overall")
	cmd.Flags().Int("days", 30, "Forecast horizon in days")
	cmd.Flags().Int("month", 0, "Calendar month 1-12 (default current month)")
	return cmd
}

func interactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactions DRUG...",
		Short: "Check a drug list for known interactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			legacy, _ := cmd.Flags().GetBool("legacy")
			matcher := interactions.NewDefaultMatcher()

			drugs := args
			if drugs == nil {
				drugs = []string{}
			}
			if legacy {
				return printJSON(cmd.OutOrStdout(), matcher.Screen(drugs))
			}
			return printJSON(cmd.OutOrStdout(), matcher.Check(drugs))
		},
	}
	cmd.Flags().Bool("legacy", false, "Use the substring screen over the known interactions table")
	return cmd
}

func (c *cli) restockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restock",
		Short: "Build a restock plan from live inventory, or simulated stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), restockTimeout)
			defer cancel()

			plan := inventory.NewPlanner(newBackendClient(c.cfg)).Plan(ctx)
			return printJSON(cmd.OutOrStdout(), plan)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gallerysort/internal/app"
	"gallerysort/internal/config"
	"gallerysort/internal/sorter"

	"github.com/spf13/cobra"
)

const version = "0.1.1"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file (if any) on top of the defaults and applies
// command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, "", fmt.Errorf("getting defaults: %w", err)
	}

	configPath := defaults["config_path"]
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath, config.NewConfig(defaults["base_dir"]))
	if err != nil {
		return nil, "", fmt.Errorf("reading config: %w", err)
	}

	applyFlags(cmd, cfg)
	return cfg, configPath, nil
}

// applyFlags overrides config values with flags the user set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Lookup("source") != nil && flags.Changed("source") {
		cfg.Sources, _ = flags.GetStringArray("source")
	}
	if flags.Lookup("event-threshold") != nil && flags.Changed("event-threshold") {
		cfg.EventThreshold, _ = flags.GetInt("event-threshold")
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// command identifies the CLI command being run (e.g. "sort", "history").
func newApp(cmd *cobra.Command, command string) (*app.App, *config.Config, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	a, err := app.NewApp(cfg, command, app.Options{
		Verbose: verbose,
		Out:     cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, cfg, nil
}

var rootCmd = &cobra.Command{
	Use:           "gallerysort DESTINATION",
	Short:         "Sort phone gallery files into date folders",
	Long:          "Copies media files from the source directories into DESTINATION, grouped into\nper-day folders for busy days, per-month folders otherwise, and \"unsorted\"\nfor files without a date. DESTINATION is a directory or an s3://bucket/prefix URL.",
	Version:       version,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		a, cfg, err := newApp(cmd, "sort")
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := a.Console()
		out.Title("Phone Gallery Sort")

		report, err := a.Sort(ctx, args[0], sorter.Request{
			Sources:        cfg.Sources,
			EventThreshold: cfg.EventThreshold,
			DryRun:         dryRun,
		})
		switch {
		case errors.Is(err, context.Canceled):
			out.Warning("Cancelled")
			printSummary(out, report)
			return err
		case errors.Is(err, sorter.ErrCopyFailed):
			printSummary(out, report)
			printFailures(out, report)
			return fmt.Errorf("%d file(s) could not be copied", len(report.Placement.Failures()))
		case err != nil:
			out.Error(err.Error())
			return fmt.Errorf("sort failed (run %s)", a.OperationID())
		}

		if dryRun {
			printPlan(out, report)
			out.Success("Dry run, nothing copied")
			return nil
		}

		printSummary(out, report)
		out.Success("Done")
		return nil
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		configPath := defaults["config_path"]
		if p, _ := cmd.Flags().GetString("config"); p != "" {
			configPath = p
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(configPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", configPath)
		fmt.Fprintf(cmd.OutOrStdout(), "Base Dir: %s\n", cfg.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, configPath, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "# Configuration from %s\n\n", configPath)
		m := &config.Manager{}
		return m.Write(cmd.OutOrStdout(), cfg)
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history [RUN_ID]",
	Short: "View journaled sort runs, or the placements of one run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, cfg, err := newApp(cmd, "history")
		if err != nil {
			return err
		}
		defer a.Close()

		out := a.Console()
		if cfg.Journal.Type == "" || cfg.Journal.Type == "none" {
			out.Warning("The run journal is disabled. Set journal.type in the config to record runs.")
			return nil
		}

		if len(args) == 1 {
			placements, err := a.RunPlacements(args[0])
			if err != nil {
				return err
			}
			if len(placements) == 0 {
				out.Text("No placements recorded for run " + args[0] + ".")
				return nil
			}
			out.Table([]string{"Source", "Folder", "Status", "Error"}, placementRows(placements))
			return nil
		}

		runs, err := a.History(limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			out.Text("No sort runs recorded.")
			return nil
		}
		out.Table([]string{"Run", "Started", "Status", "Files", "Copied", "Failed", "Unsorted", "Duration", "Destination"}, runRows(runs))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default $GALLERYSORT_CONFIG_PATH or ~/.config/gallerysort.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.Flags().StringArrayP("source", "s", []string{"./"}, "Source directory, scanned recursively (repeatable)")
	rootCmd.Flags().Int("event-threshold", config.DefaultEventThreshold, "Files a day needs beyond this count to get its own folder")
	rootCmd.Flags().Bool("dry-run", false, "Show the folder plan without copying")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of runs to show")
}

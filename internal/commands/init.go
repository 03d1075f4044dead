package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/homekeep/internal/config"
)

func newInitCommand() *cobra.Command {
	var name string
	var currency string
	var transcript bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default homekeep.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, name, currency, transcript); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized homekeep at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "household created when a shell starts")
	cmd.Flags().StringVar(&currency, "currency", "", "currency label (default PKR)")
	cmd.Flags().BoolVar(&transcript, "transcript", false, "record every session to logs/")

	return cmd
}

func runInit(dir, name, currency string, transcript bool) error {
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := config.Default()
	cfg.Household.DefaultName = name
	if currency != "" {
		cfg.Household.Currency = currency
	}
	cfg.Transcript.Enabled = transcript

	for _, d := range []string{filepath.Dir(cfg.Transcript.Path), cfg.Export.Dir} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cleared-dev/homekeep/internal/buildinfo"
	"github.com/cleared-dev/homekeep/internal/config"
	"github.com/cleared-dev/homekeep/internal/logging"
)

// EnvPrefix prefixes every environment variable read by homekeep, for
// example HOMEKEEP_LOGGING_LEVEL or HOMEKEEP_PREMIUM.
const EnvPrefix = "HOMEKEEP"

// app is the state shared by subcommands once the root command has
// resolved configuration.
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	baseDir string
	logger  *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:     "homekeep",
		Short:   "Household budget, task and grocery tracker",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", config.FileName, "config file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.Bool("premium", false, "enable the premium tier")

	_ = a.v.BindPFlag("config", flags.Lookup("config"))
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("premium", flags.Lookup("premium"))

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newShellCommand(a))
	rootCmd.AddCommand(newReplayCommand(a))

	return rootCmd
}

// initConfig loads the config file, lets env vars and flags override it
// and installs the logger.
func (a *app) initConfig(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	path := a.v.GetString("config")
	cfg, err := config.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && !a.v.IsSet("config"):
		cfg = config.Default()
	default:
		return err
	}
	a.baseDir = filepath.Dir(path)

	applyOverrides(a.v, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.Setup(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	logger.Debug("configuration loaded", "path", path, "premium", cfg.Premium)
	return nil
}

// applyOverrides seeds v with the file values as defaults so that flags
// and HOMEKEEP_* variables win over the file, then reads everything back.
func applyOverrides(v *viper.Viper, cfg *config.Config) {
	v.SetDefault("household.default_name", cfg.Household.DefaultName)
	v.SetDefault("household.currency", cfg.Household.Currency)
	v.SetDefault("household.near_budget_ratio", cfg.Household.NearBudgetRatio)
	v.SetDefault("premium", cfg.Premium)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("transcript.enabled", cfg.Transcript.Enabled)
	v.SetDefault("transcript.path", cfg.Transcript.Path)
	v.SetDefault("export.dir", cfg.Export.Dir)

	cfg.Household.DefaultName = v.GetString("household.default_name")
	cfg.Household.Currency = v.GetString("household.currency")
	cfg.Household.NearBudgetRatio = v.GetFloat64("household.near_budget_ratio")
	cfg.Premium = v.GetBool("premium")
	cfg.Logging.Level = v.GetString("logging.level")
	cfg.Logging.Format = v.GetString("logging.format")
	cfg.Transcript.Enabled = v.GetBool("transcript.enabled")
	cfg.Transcript.Path = v.GetString("transcript.path")
	cfg.Export.Dir = v.GetString("export.dir")
}

// resolve makes p relative to the directory holding the config file.
func (a *app) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.baseDir, p)
}

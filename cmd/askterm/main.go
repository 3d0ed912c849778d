package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"askterm/cmd/askterm/tui"
	"askterm/cmd/askterm/ui"
	"askterm/internal/config"
	"askterm/internal/logging"
)

var (
	verbose    bool
	configPath string

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "askterm",
	Short: "askterm - ask questions on the terminal",
	Long: `askterm asks the user a question on the terminal and prints the answer.

The user either picks one of the predefined options with the arrow keys or
types a free-form answer, including multi-line text and pasted content.
Answers are printed on stdout so askterm can be used from scripts; the
prompt itself is drawn on stderr.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}
		if err := logging.Initialize(cfg.Logging.Options()); err != nil {
			logger.Warn("file logging disabled", zap.Error(err))
		}
		logging.Boot("askterm %s: config=%s", cmd.Name(), configPath)
		logger.Debug("config loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath(), "Config file")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// errorLine styles a fatal error for stderr. Config errors happen before the
// theme is known, so those fall back to plain text.
func errorLine(err error) string {
	if cfg == nil {
		return "Error: " + err.Error()
	}
	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))
	return styles.Error.Render("Error: " + err.Error())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		if errors.Is(err, tui.ErrCancelled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

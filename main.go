// package main is the entry point for the cdn-updater bot
package main

import (
	"log/slog"
	"os"

	checkcmd "github.com/alan/cdn-updater/cmd/check"
	"github.com/alan/cdn-updater/cmd/latest"
	"github.com/alan/cdn-updater/cmd/verify"
	"github.com/alan/cdn-updater/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	var configFile string
	var logLevel string
	var logFormat string

	rootCmd := &cobra.Command{
		Use:   "cdn-updater",
		Short: "A CI bot that keeps the Plotly.js CDN URL constant up to date",
		Long: `cdn-updater checks whether a newer Plotly.js bundle has been published
and, when it has, opens a pull request updating the hard-coded CDN URL,
or files an issue if the new bundle URL is unreachable.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogger(logLevel, logFormat)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path (optional)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "f", "text", "Log format (text, json)")

	rootCmd.AddCommand(checkcmd.NewCheckCmd(&configFile, config.Load))
	rootCmd.AddCommand(latest.NewLatestCmd(&configFile, config.Load))
	rootCmd.AddCommand(verify.NewVerifyCmd(&configFile, config.Load))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger(level, format string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	}

	slog.SetDefault(slog.New(handler))
}

package controllers

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
)

// loadSettings reads the --config file (or the auto-detected one) and
// applies the --token override.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	token, _ := cmd.Flags().GetString("token")

	settings, err := entities.LoadSettings(configPath)
	if err != nil {
		return nil, err
	}
	if token != "" {
		settings.Content.Token = token
	}
	return settings, nil
}

// signalContext derives a context cancelled on SIGINT/SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		format = outputText
	}
	return format, validateOutput(format)
}

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yanxingzhi/event-form-multi/internal/config"
	"github.com/yanxingzhi/event-form-multi/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "eventform",
	Short:         "Event registration backend storing records in Google Sheets.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(serveCmd, tokenCmd)
}

func loadConfig() (config.Config, zerolog.Logger, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	return cfg, logging.New(cfg.LogLevel, cfg.LogPretty, nil), nil
}

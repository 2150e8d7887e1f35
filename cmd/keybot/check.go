package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"keybot/config"
	"keybot/suggest"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the suggestion service health endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client := suggest.New(cfg.Suggest.BaseURL, func(o *suggest.Options) {
			o.APIKey = cfg.Suggest.APIKey
			o.Timeout = cfg.Suggest.Timeout
		})

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		if err := client.Health(ctx); err != nil {
			return fmt.Errorf("suggestion service unhealthy: %w", err)
		}
		fmt.Printf("suggestion service at %s is healthy\n", cfg.Suggest.BaseURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "keybot",
	Short: "keybot is a virtual-keyboard and autosuggest chat bot",
	Long: `keybot turns free-text channel messages into an on-screen virtual keyboard
for guided composition and incremental autocomplete suggestions fetched from
an external ranking service.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calref/inboxcal/cmd/inboxcal/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "inboxcal",
		Short: "Extract calendar items from email text",
		Long:  "CLI tool for extracting deadlines and events from .eml or plain-text files",
	}

	rootCmd.AddCommand(commands.NewExtractCmd())
	rootCmd.AddCommand(commands.NewICSCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Package main provides the entry point for the gumcrawl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for gumcrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gumcrawl",
		Short: "Structured crawler for Gumtree search results",
		Long: `Gumcrawl crawls a Gumtree search results URL, discovers every listing
page of the search, follows every ad, and extracts structured records:
title, price, images, location, seller profile, description, and the
ad's attribute table.

Pages and ads are fetched concurrently with a bounded worker pool, and
every requested URL produces exactly one outcome: an item, or a
classified failure explaining why no item could be parsed.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

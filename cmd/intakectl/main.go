// Package main implements intakectl, the operator CLI for the intake API.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "intakectl",
	Short: "Operator CLI for the Bondspire intake API",
	Long: `intakectl applies the database schema, mints admin tokens for the review
listings and drives the intake forms against a running server.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Package cmd implements the doll-web server and content tooling using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"doll-web/pkg/config"
	"doll-web/pkg/logger"
)

var (
	cfg         *config.Config
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "doll-web",
	Short: "Content backend for the doll-web marketing site",
	Long: `doll-web serves news, solutions and projects from the CMS (or a directory
of front-matter files) as JSON with rendered HTML, and accepts contact-form
submissions.

Usage:
  doll-web serve
  doll-web content list news
  doll-web render < notes.txt`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger.SetVerbose(flagVerbose || cfg.Verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

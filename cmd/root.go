package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prscope",
	Short: "A CLI tool for browsing a repository's pull requests",
	Long: `prscope lists the pull requests of a GitHub repository by category
(review requested, assigned, authored, mentioned or all) and resolves single pull requests.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

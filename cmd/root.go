package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "certquest",
	Short: "Narrative quiz engine for certification prep",
	Long:  "CertQuest — a multi-certification training game that turns exam domains into themed story scenarios.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return playCmd.RunE(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("content", "", "Path to the certifications content root (overrides CERTQUEST_CONTENT)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(packsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveContentRoot returns the content root using the --content flag
// (highest priority), then the CERTQUEST_CONTENT env var, then the
// ./certifications default.
func resolveContentRoot(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("content"); p != "" {
		return p
	}
	if p := os.Getenv("CERTQUEST_CONTENT"); p != "" {
		return p
	}
	return "certifications"
}

// Musharaka calculator: Diminishing Musharaka home finance projections.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vrtu/musharaka/internal/config"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "musharaka",
	Short: "Diminishing Musharaka home finance calculator",
	Long: `Projects a Diminishing Musharaka partnership year by year: weekly
payments split into rent and share purchases, the time to full ownership,
and a comparison against a conventional amortizing mortgage.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.LogLevel = level
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(leadsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("musharaka %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "like-that",
	Short: "Find movies and shows from a natural-language request",
	Long: `like-that answers free-text requests about movies and TV shows.

It classifies each request with a language model (a quote to identify, a genre to rank,
or a title to find look-alikes for), looks the answer up on TMDB, and returns a
normalized result. Run it as an HTTP API with 'serve', or from the terminal with
'ask' and 'chat'.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var (
	logLevel string
	logJSON  bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")
}

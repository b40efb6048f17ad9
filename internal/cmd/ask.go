package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Digital-Shane/like-that/internal/dispatch"
	"github.com/Digital-Shane/like-that/internal/tui"
	"github.com/spf13/cobra"
)

var (
	askJSON  bool
	askWidth int
)

var askCmd = &cobra.Command{
	Use:   "ask <query...>",
	Short: "Answer one query and print the result",
	Example: `  like-that ask "I'll be back"
  like-that ask --json "بهترین سریال های درام"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		d, err := newDispatcher(cfg, newLogger(cfg, cmd.ErrOrStderr()), nil)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
		defer cancel()
		return runAsk(ctx, cmd.OutOrStdout(), d, strings.Join(args, " "), askJSON, askWidth)
	},
}

// querier is the part of the dispatcher the terminal commands use.
type querier interface {
	Handle(ctx context.Context, query string) (dispatch.Envelope, error)
}

func runAsk(ctx context.Context, out io.Writer, q querier, query string, asJSON bool, width int) error {
	env, err := q.Handle(ctx, query)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	}

	_, err = fmt.Fprintln(out, tui.Render(env, width))
	return err
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print the raw result envelope as JSON")
	askCmd.Flags().IntVar(&askWidth, "width", 80, "Render width in columns")
	rootCmd.AddCommand(askCmd)
}

package cmd

import (
	"fmt"

	"github.com/Digital-Shane/like-that/internal/tui/chat"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask queries interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Log lines would tear the alt screen; only errors go to stderr.
		logger := newLogger(cfg, cmd.ErrOrStderr())
		logger.SetLevel(hclog.Error)

		d, err := newDispatcher(cfg, logger, nil)
		if err != nil {
			return err
		}

		model := chat.New(d, chat.WithContext(cmd.Context()), chat.WithTimeout(cfg.RequestTimeout()))
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run chat UI: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

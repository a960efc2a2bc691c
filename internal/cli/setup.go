package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/thushan/llmsource/internal/config"
	"github.com/thushan/llmsource/internal/core/domain"
	"github.com/thushan/llmsource/internal/tui"
	"github.com/thushan/llmsource/internal/util"
)

var errNotInteractive = errors.New("setup needs an interactive terminal, use fetch instead")

func newSetupCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "setup [source-id]",
		Short: "Edit a source's host URL and fetch its models",
		Long: `Opens the setup panel of a LocalAI source. Edits to the host URL are saved
as you type; models are fetched when the panel opens on an empty source or
when the Models button is pressed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !util.IsInteractive() {
				return errNotInteractive
			}

			id := domain.SourceID(config.DefaultSourceID)
			if len(args) == 1 {
				id = domain.SourceID(args[0])
			}

			// the panel owns the terminal, logs only go to file
			s, err := openSession(cmd.Context(), opts, sessionMode{terminal: false, watch: true})
			if err != nil {
				return err
			}
			defer s.Close()

			source, err := s.app.Sources().Source(id)
			if err != nil {
				return err
			}

			panel, err := s.app.NewPanel(id)
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(), panel, source, s.app.Events(), s.cfg.Logging.Theme)
		},
	}
}

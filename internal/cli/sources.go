package cli

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/thushan/llmsource/internal/util"
	"github.com/thushan/llmsource/pkg/format"
)

func newSourcesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List configured sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts, sessionMode{terminal: true})
			if err != nil {
				return err
			}
			defer s.Close()

			tableData := [][]string{
				{"ID", "LABEL", "VENDOR", "HOST URL", "VALID"},
			}
			for _, source := range s.app.Sources().Sources() {
				setup, err := s.app.Sources().Setup(source.ID)
				if err != nil {
					return err
				}
				tableData = append(tableData, []string{
					string(source.ID),
					source.GetDisplayLabel(),
					string(source.VendorID),
					format.OrDash(setup.HostURL),
					strconv.FormatBool(util.IsValidHostURL(setup.HostURL)),
				})
			}

			tableString, err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tableString)
			return nil
		},
	}
}

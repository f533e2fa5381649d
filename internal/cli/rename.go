package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRenameCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <meeting-id> <name>",
		Short: "Set the display name of a meeting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.App.Store.SetDisplayName(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s\n", args[0])
			return nil
		},
	}
}

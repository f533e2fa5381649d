package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ingested meetings, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			meetings, err := deps.App.Store.ListMeetings(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(meetings) == 0 {
				fmt.Fprintln(out, "No meetings ingested yet.")
				return nil
			}
			for _, m := range meetings {
				name := m.Name
				if name == "" {
					name = "(unnamed)"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", m.ID, name, m.CreatedAt.Local().Format(time.RFC3339))
			}
			return nil
		},
	}
}

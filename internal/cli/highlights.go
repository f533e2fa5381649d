package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewHighlightsCmd(deps *Dependencies) *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "highlights <meeting-id>",
		Short: "Extract decision, action and deadline highlights for a meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			meetingID := args[0]

			if cached {
				content, err := deps.App.Store.LoadHighlights(meetingID)
				if err != nil {
					return fmt.Errorf("no saved highlights for %s (run without --cached first)", meetingID)
				}
				if content == "" {
					fmt.Fprintln(out, "No highlights found.")
					return nil
				}
				fmt.Fprintln(out, content)
				return nil
			}

			lines, err := deps.App.Highlights.Summarize(cmd.Context(), meetingID)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				fmt.Fprintln(out, "No highlights found.")
				return nil
			}
			for i, line := range lines {
				fmt.Fprintf(out, "%d. %s\n", i+1, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "Print the last saved highlights instead of regenerating")
	return cmd
}

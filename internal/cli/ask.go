package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"meeting-rag/internal/models"
)

func NewAskCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <meeting-id> [question]",
		Short: "Ask questions about one meeting",
		Long:  "With a question argument answers once; without it starts an interactive chat (type 'exit' to stop).",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			meetingID := args[0]
			if len(args) == 2 {
				answer, err := deps.App.Chat.Ask(cmd.Context(), meetingID, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), answer)
				return nil
			}
			return runChatLoop(cmd, deps, meetingID)
		},
	}
	return cmd
}

func runChatLoop(cmd *cobra.Command, deps *Dependencies, meetingID string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Chat with your meeting (type 'exit' to stop)")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		query := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(query, "exit") {
			return nil
		}

		answer, err := deps.App.Chat.Ask(cmd.Context(), meetingID, query)
		if err != nil {
			if errors.Is(err, models.ErrMeetingNotFound) {
				return err
			}
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "\nAI: %s\n\n", answer)
	}
}

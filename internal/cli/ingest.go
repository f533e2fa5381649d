package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"meeting-rag/internal/media"
	"meeting-rag/internal/models"
)

func NewIngestCmd(deps *Dependencies) *cobra.Command {
	var name string
	var meetingID string

	cmd := &cobra.Command{
		Use:   "ingest <media-file>",
		Short: "Process a meeting recording into a searchable index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaPath := args[0]
			if !media.IsSupported(mediaPath) {
				return &models.MediaError{
					Path: mediaPath,
					Err:  fmt.Errorf("unsupported file type (want %s)", strings.Join(media.SupportedExtensions(), ", ")),
				}
			}

			id := meetingID
			if id == "" {
				id = deps.App.Store.NewMeetingID()
			}

			if err := deps.App.Pipeline.Ingest(cmd.Context(), mediaPath, id); err != nil {
				return err
			}
			if name != "" {
				if err := deps.App.Store.SetDisplayName(cmd.Context(), id, name); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Meeting processed. ID: %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name for the meeting")
	cmd.Flags().StringVar(&meetingID, "id", "", "Re-ingest under an existing meeting ID (overwrites its index)")
	return cmd
}

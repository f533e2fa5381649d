package cli

import (
	"github.com/spf13/cobra"

	"meeting-rag/internal/app"
	"meeting-rag/internal/config"
)

type Dependencies struct {
	App    *app.App
	Config *config.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "meetingrag",
		Short:        "Turn meeting recordings into a searchable, chat-ready knowledge base",
		Long:         "Ingest meeting audio/video into a per-meeting vector index, then ask grounded questions or extract highlights.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(NewIngestCmd(deps))
	rootCmd.AddCommand(NewAskCmd(deps))
	rootCmd.AddCommand(NewHighlightsCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewRenameCmd(deps))

	return rootCmd
}

package cmd

import (
	"github.com/kasuboski/rawz/pkg/download"
	"github.com/kasuboski/rawz/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// listTorrentsCmd represents the list torrents command
var listTorrentsCmd = &cobra.Command{
	Use:   "torrents",
	Short: "list torrents known to the backend",
	Long:  `list torrents known to the backend`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		cfg := loadConfig()

		ctx := cmd.Context()
		backend, err := download.NewBackend(ctx, cfg.Backend)
		if err != nil {
			log.Fatalw("failed to create backend", zap.Error(err))
		}

		active, _ := cmd.Flags().GetBool("active")

		var transfers []download.Transfer
		if active {
			transfers, err = backend.ListActive(ctx)
		} else {
			transfers, err = backend.List(ctx)
		}
		if err != nil {
			log.Fatalw("failed to list torrents", zap.Error(err))
		}

		printTransfers(transfers)
	},
}

func init() {
	listCmd.AddCommand(listTorrentsCmd)
	listTorrentsCmd.Flags().Bool("active", false, "only list torrents still downloading")
}

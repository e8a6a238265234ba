package cmd

import (
	"github.com/kasuboski/rawz/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <show>",
	Short: "download every episode of a show",
	Long: `search the listing for a show and submit its releases to the configured
backend, waiting until the transfers finish`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		cfg := loadConfig()

		tag, _ := cmd.Flags().GetString("tag")
		dir, _ := cmd.Flags().GetString("dir")

		ctx, cancel := signalContext()
		defer cancel()

		group, err := searchGroup(ctx, cfg, args[0], tag)
		if err != nil {
			log.Fatalw("failed to search", zap.Error(err))
		}

		report, err := runDownload(ctx, cfg, group, dir)
		if err != nil {
			log.Fatalw("failed to download", zap.Error(err))
		}

		printReport(report)
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().String("tag", "", "only keep releases from this group, e.g. [Ohys-Raws]")
	downloadCmd.Flags().String("dir", "", "directory name under the download root (default: the show name)")
}

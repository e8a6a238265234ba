package cmd

import (
	"github.com/kasuboski/rawz/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// subsCmd represents the subs command
var subsCmd = &cobra.Command{
	Use:   "subs <show>",
	Short: "download the subtitles of a show",
	Long:  `find a show in the subtitle catalog and save all of its files into the show's subs directory`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		cfg := loadConfig()

		dir, _ := cmd.Flags().GetString("dir")

		ctx, cancel := signalContext()
		defer cancel()

		entry, saved, err := runSubs(ctx, cfg, args[0], showDir(cfg, args[0], dir))
		if err != nil {
			log.Fatalw("failed to fetch subtitles", zap.Error(err))
		}

		log.Infow("saved subtitles", "show", entry.Name, "files", len(saved))
	},
}

func init() {
	rootCmd.AddCommand(subsCmd)
	subsCmd.Flags().String("dir", "", "directory name under the download root (default: the show name)")
}

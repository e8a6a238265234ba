package cmd

import (
	"errors"

	"github.com/kasuboski/rawz/pkg/logger"
	"github.com/kasuboski/rawz/pkg/subtitles"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <show>",
	Short: "download a show, its subtitles and pair them",
	Long:  `run search, download, subs and match for a show in one go`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		cfg := loadConfig()

		show := args[0]
		tag, _ := cmd.Flags().GetString("tag")
		dir, _ := cmd.Flags().GetString("dir")
		subsName, _ := cmd.Flags().GetString("subs-name")
		if subsName == "" {
			subsName = show
		}

		ctx, cancel := signalContext()
		defer cancel()

		group, err := searchGroup(ctx, cfg, show, tag)
		if err != nil {
			log.Fatalw("failed to search", zap.Error(err))
		}

		report, err := runDownload(ctx, cfg, group, dir)
		if err != nil {
			log.Fatalw("failed to download", zap.Error(err))
		}
		printReport(report)

		if ctx.Err() != nil {
			log.Fatalw("interrupted", zap.Error(ctx.Err()))
		}

		target := showDir(cfg, show, dir)
		if _, _, err := runSubs(ctx, cfg, subsName, target); err != nil {
			if errors.Is(err, subtitles.ErrShowNotFound) {
				log.Warnw("no subtitles found, skipping match", "show", subsName)
				return
			}
			log.Fatalw("failed to fetch subtitles", zap.Error(err))
		}

		results, err := runMatch(ctx, target, "")
		if err != nil {
			log.Fatalw("failed to match", zap.Error(err))
		}
		printPairs(results)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().String("tag", "", "only keep releases from this group, e.g. [Ohys-Raws]")
	getCmd.Flags().String("dir", "", "directory name under the download root (default: the show name)")
	getCmd.Flags().String("subs-name", "", "name to look up in the subtitle catalog (default: the show name)")
}

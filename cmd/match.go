package cmd

import (
	"github.com/kasuboski/rawz/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match <dir>",
	Short: "pair raws with subtitles and rename them to a shared basename",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		subsDir, _ := cmd.Flags().GetString("subs")

		results, err := runMatch(cmd.Context(), args[0], subsDir)
		if err != nil {
			log.Fatalw("failed to match", zap.Error(err))
		}

		printPairs(results)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().String("subs", "", "subtitle directory (default: <dir>/subs)")
}

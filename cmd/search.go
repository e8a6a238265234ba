package cmd

import (
	"github.com/kasuboski/rawz/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <show>",
	Short: "list the episodes available for a show",
	Long:  `search the listing for a show and print its releases grouped by episode`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		cfg := loadConfig()

		tag, _ := cmd.Flags().GetString("tag")

		group, err := searchGroup(cmd.Context(), cfg, args[0], tag)
		if err != nil {
			log.Fatalw("failed to search", zap.Error(err))
		}

		printGroup(group)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().String("tag", "", "only keep releases from this group, e.g. [Ohys-Raws]")
}

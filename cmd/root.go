package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/kasuboski/rawz/pkg/download"
	"github.com/kasuboski/rawz/pkg/indexer"
	"github.com/kasuboski/rawz/pkg/manager"
	"github.com/kasuboski/rawz/pkg/release"
	"github.com/kasuboski/rawz/pkg/subtitles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rawz",
	Short: "rawz finds raw anime releases, downloads them and pairs them with subtitles",
	Long: `rawz searches a torrent listing for raw releases of a show, drives the
downloads through qBittorrent or Transmission and renames each episode so it
shares a basename with its subtitle file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
}

func initConfig() {
	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("RAWZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("indexer.scheme", indexer.DefaultScheme)
	viper.SetDefault("indexer.host", indexer.DefaultHost)
	viper.SetDefault("indexer.minInterval", 500*time.Millisecond)
	viper.SetDefault("indexer.userAgent", "")

	viper.SetDefault("backend.implementation", download.QBittorrent)
	viper.SetDefault("backend.scheme", "http")
	viper.SetDefault("backend.host", "localhost")
	viper.SetDefault("backend.port", 8080)
	viper.SetDefault("backend.username", "")
	viper.SetDefault("backend.password", "")
	viper.SetDefault("backend.timeout", 30*time.Second)

	viper.SetDefault("subtitles.scheme", subtitles.DefaultScheme)
	viper.SetDefault("subtitles.host", subtitles.DefaultHost)
	viper.SetDefault("subtitles.catalogPath", subtitles.DefaultCatalogPath)

	viper.SetDefault("download.root", ".")
	viper.SetDefault("download.cap", manager.DefaultCap)
	viper.SetDefault("download.pollInterval", manager.DefaultPollInterval)
	viper.SetDefault("download.taskTimeout", time.Duration(0))
	viper.SetDefault("download.directoryName", "")

	viper.SetDefault("catalog.tags", release.DefaultTags)
}

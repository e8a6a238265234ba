package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/kasuboski/rawz/config"
	"github.com/kasuboski/rawz/pkg/download"
	"github.com/kasuboski/rawz/pkg/indexer"
	rawzio "github.com/kasuboski/rawz/pkg/io"
	"github.com/kasuboski/rawz/pkg/library"
	"github.com/kasuboski/rawz/pkg/logger"
	"github.com/kasuboski/rawz/pkg/manager"
	"github.com/kasuboski/rawz/pkg/release"
	"github.com/kasuboski/rawz/pkg/subtitles"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const subtitleDirName = "subs"

func loadConfig() config.Config {
	log := logger.Get()

	cfg, err := config.New(viper.GetViper())
	if err != nil {
		log.Fatalw("failed to read configurations", zap.Error(err))
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", zap.Error(err))
	}

	return cfg
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// showDir is where raws of a show land, honoring the directory override
func showDir(cfg config.Config, show, override string) string {
	dir := override
	if dir == "" {
		dir = cfg.Download.DirectoryName
	}
	if dir == "" {
		dir = show
	}
	return filepath.Join(cfg.Download.Root, dir)
}

func searchGroup(ctx context.Context, cfg config.Config, show, tag string) (release.EpisodeGroup, error) {
	source, err := indexer.NewSource(cfg.Indexer)
	if err != nil {
		return release.EpisodeGroup{}, err
	}

	releases, err := source.Search(ctx, show)
	if err != nil {
		return release.EpisodeGroup{}, err
	}

	tags := cfg.Catalog.Tags
	if len(tags) == 0 {
		tags = release.DefaultTags
	}

	return release.Group(ctx, show, tag, release.Classify(releases, tags)), nil
}

func runDownload(ctx context.Context, cfg config.Config, group release.EpisodeGroup, dirOverride string) (manager.Report, error) {
	backend, err := download.NewBackend(ctx, cfg.Backend)
	if err != nil {
		return manager.Report{}, err
	}

	dir := dirOverride
	if dir == "" {
		dir = cfg.Download.DirectoryName
	}

	m := manager.New(backend,
		manager.WithCap(cfg.Download.Cap),
		manager.WithPollInterval(cfg.Download.PollInterval),
		manager.WithTaskTimeout(cfg.Download.TaskTimeout),
		manager.WithDirectoryName(dir),
		manager.WithProgress(printProgress),
	)

	return m.Run(ctx, group, cfg.Download.Root)
}

func printProgress(transfers []download.Transfer) {
	for _, t := range transfers {
		fmt.Fprintf(os.Stderr, "%6.2f%%  %9s/s  %s\n", t.Progress*100, humanize.Bytes(uint64(max(t.Speed, 0))), t.Name)
	}
}

func runSubs(ctx context.Context, cfg config.Config, show, dir string) (subtitles.Entry, []string, error) {
	provider, err := subtitles.NewProviderFromConfig(cfg.Subtitles)
	if err != nil {
		return subtitles.Entry{}, nil, err
	}

	entry, err := provider.Resolve(ctx, show)
	if err != nil {
		var ambiguous *subtitles.AmbiguousMatchError
		if errors.As(err, &ambiguous) {
			printCandidates(ambiguous.Candidates)
		}
		return subtitles.Entry{}, nil, err
	}

	saved, err := provider.DownloadAll(ctx, entry, filepath.Join(dir, subtitleDirName))
	return entry, saved, err
}

func runMatch(ctx context.Context, dir, subsDir string) ([]library.PairResult, error) {
	if subsDir == "" {
		subsDir = filepath.Join(dir, subtitleDirName)
	}

	return library.NewMatcher(&rawzio.MediaFileSystem{}).MatchAndRename(ctx, dir, subsDir)
}

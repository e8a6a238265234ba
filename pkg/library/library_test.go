package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kasuboski/rawz/pkg/episode"
	rawzio "github.com/kasuboski/rawz/pkg/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}
}

// failingFS fails renames whose source has the given extension
type failingFS struct {
	rawzio.MediaFileSystem
	ext string
}

func (f *failingFS) Rename(source, target string) error {
	if filepath.Ext(source) == f.ext {
		return errors.New("permission denied")
	}
	return f.MediaFileSystem.Rename(source, target)
}

func TestMatcher_MatchAndRename(t *testing.T) {
	root := t.TempDir()
	subs := filepath.Join(root, "subs")
	touch(t,
		filepath.Join(root, "Show-01.mkv"),
		filepath.Join(root, "Show-02.mkv"),
		filepath.Join(subs, "Show-01.srt"),
		filepath.Join(subs, "Show-03.srt"),
	)

	m := NewMatcher(&rawzio.MediaFileSystem{})
	results, err := m.MatchAndRename(context.Background(), root, subs)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, PairResult{
		Episode:    "S01E01",
		RawPath:    filepath.Join(root, "Show-01.mkv"),
		SubPath:    filepath.Join(subs, "Show-01.srt"),
		NewRawPath: filepath.Join(root, "Show-01 - S01E01.mkv"),
		NewSubPath: filepath.Join(subs, "Show-01 - S01E01.srt"),
		Status:     Renamed,
	}, results[0])
	assert.Equal(t, PairResult{
		Episode: "S01E03",
		SubPath: filepath.Join(subs, "Show-03.srt"),
		Status:  UnmatchedSubtitle,
	}, results[1])

	assert.FileExists(t, filepath.Join(root, "Show-01 - S01E01.mkv"))
	assert.FileExists(t, filepath.Join(subs, "Show-01 - S01E01.srt"))
	assert.FileExists(t, filepath.Join(root, "Show-02.mkv"))
	assert.FileExists(t, filepath.Join(subs, "Show-03.srt"))
	assert.NoFileExists(t, filepath.Join(root, "Show-01.mkv"))

	t.Run("second run is a no-op", func(t *testing.T) {
		results, err := m.MatchAndRename(context.Background(), root, subs)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, AlreadyPaired, results[0].Status)
		assert.Equal(t, UnmatchedSubtitle, results[1].Status)
	})
}

func TestMatcher_WalksEpisodeDirectories(t *testing.T) {
	root := t.TempDir()
	subs := filepath.Join(root, "subs")
	touch(t,
		filepath.Join(root, "S01E02", "[Ohys-Raws] Bocchi the Rock! - 02 (BS11 1280x720 x264 AAC).mp4"),
		filepath.Join(root, "S01E10", "[Ohys-Raws] Bocchi the Rock! - 10 (BS11 1280x720 x264 AAC).mp4"),
		filepath.Join(root, "S01E10", "notes.txt"),
		filepath.Join(subs, "Bocchi the Rock! - 10.ass"),
		filepath.Join(subs, "Bocchi the Rock! - 02.ass"),
		filepath.Join(subs, "readme.txt"),
	)

	results, err := NewMatcher(&rawzio.MediaFileSystem{}).MatchAndRename(context.Background(), root, subs)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "S01E02", results[0].Episode)
	assert.Equal(t, "S01E10", results[1].Episode)
	for _, r := range results {
		assert.Equal(t, Renamed, r.Status)
		assert.Equal(t, filepath.Dir(r.RawPath), filepath.Dir(r.NewRawPath))
		assert.Equal(t, ".mp4", filepath.Ext(r.NewRawPath))
		assert.Equal(t, ".ass", filepath.Ext(r.NewSubPath))
		assert.Equal(t,
			strings.TrimSuffix(filepath.Base(r.NewRawPath), ".mp4"),
			strings.TrimSuffix(filepath.Base(r.NewSubPath), ".ass"))
	}
	assert.FileExists(t, filepath.Join(root, "S01E02", "[Ohys-Raws] Bocchi the Rock! - 02 (BS11 1280x720 x264 AAC) - S01E02.mp4"))
}

func TestMatcher_PairsDifferentlyWrittenEpisodes(t *testing.T) {
	root := t.TempDir()
	subs := filepath.Join(root, "subs")
	touch(t,
		filepath.Join(root, "Show - 1.mkv"),
		filepath.Join(root, "Show - S1E1.mp4"),
		filepath.Join(subs, "Show.S01E01.WEBRip.srt"),
		filepath.Join(subs, "Show.S1E1.ass"),
	)

	m := NewMatcher(&rawzio.MediaFileSystem{})
	results, err := m.MatchAndRename(context.Background(), root, subs)
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, Renamed, res.Status)
	assert.Equal(t, "S01E01", res.Episode)
	assert.Equal(t, filepath.Join(root, "Show - 1 - S01E01.mkv"), res.NewRawPath)
	assert.Equal(t, filepath.Join(subs, "Show - 1 - S01E01.srt"), res.NewSubPath)
	assert.FileExists(t, res.NewRawPath)
	assert.FileExists(t, res.NewSubPath)

	results, err = m.MatchAndRename(context.Background(), root, subs)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, AlreadyPaired, results[0].Status)
}

func TestMatcher_PartialRename(t *testing.T) {
	root := t.TempDir()
	subs := filepath.Join(root, "subs")
	touch(t,
		filepath.Join(root, "Show-01.mkv"),
		filepath.Join(subs, "Show-01.srt"),
	)

	results, err := NewMatcher(&failingFS{ext: ".srt"}).MatchAndRename(context.Background(), root, subs)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, PartialRename, results[0].Status)

	var partial *PartialRenameError
	require.ErrorAs(t, results[0].Err, &partial)
	assert.Equal(t, filepath.Join(root, "Show-01 - S01E01.mkv"), partial.NewRawPath)
	assert.FileExists(t, filepath.Join(root, "Show-01 - S01E01.mkv"))
	assert.FileExists(t, filepath.Join(subs, "Show-01.srt"))
}

func TestMatcher_RenameFailed(t *testing.T) {
	root := t.TempDir()
	subs := filepath.Join(root, "subs")
	touch(t,
		filepath.Join(root, "Show-01.mkv"),
		filepath.Join(subs, "Show-01.srt"),
	)

	results, err := NewMatcher(&failingFS{ext: ".mkv"}).MatchAndRename(context.Background(), root, subs)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, RenameFailed, results[0].Status)
	assert.Error(t, results[0].Err)
	assert.FileExists(t, filepath.Join(root, "Show-01.mkv"))
	assert.FileExists(t, filepath.Join(subs, "Show-01.srt"))
}

func TestMatcher_MissingSubtitleDir(t *testing.T) {
	root := t.TempDir()
	_, err := NewMatcher(&rawzio.MediaFileSystem{}).MatchAndRename(context.Background(), root, filepath.Join(root, "subs"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCommonBasename(t *testing.T) {
	id := episode.ID{Season: "01", Episode: "05"}
	assert.Equal(t, "Show - 05 - S01E05", CommonBasename("/a/Show - 05.mkv", id))
	assert.Equal(t, "Show - S01E05", CommonBasename("/a/Show - S01E05.mkv", id))

	short := episode.ID{Season: "01", Episode: "5"}
	assert.Equal(t, "Show - 5 - S01E05", CommonBasename("/a/Show - 5.mkv", short))
	assert.Equal(t, "Show S1E5", CommonBasename("/a/Show S1E5.mkv", episode.ID{Season: "1", Episode: "5"}))
}

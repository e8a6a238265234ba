package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kasuboski/rawz/pkg/episode"
	rawzio "github.com/kasuboski/rawz/pkg/io"
	"github.com/kasuboski/rawz/pkg/logger"
	"go.uber.org/zap"
)

var videoExtensions = []string{".mp4", ".avi", ".mkv", ".m4v", ".iso", ".ts", ".m2ts"}

type Status string

const (
	Renamed           Status = "renamed"
	AlreadyPaired     Status = "already_paired"
	UnmatchedSubtitle Status = "unmatched_subtitle"
	RenameFailed      Status = "rename_failed"
	PartialRename     Status = "partial_rename"
)

// PairResult records what happened to one subtitle episode
type PairResult struct {
	Episode    string `json:"episode"`
	RawPath    string `json:"rawPath,omitempty"`
	SubPath    string `json:"subPath"`
	NewRawPath string `json:"newRawPath,omitempty"`
	NewSubPath string `json:"newSubPath,omitempty"`
	Status     Status `json:"status"`
	Err        error  `json:"-"`
}

// PartialRenameError means the raw file was renamed but its subtitle was not.
// The raw file is left under its new name.
type PartialRenameError struct {
	Episode    episode.ID
	NewRawPath string
	SubPath    string
	Err        error
}

func (e *PartialRenameError) Error() string {
	return fmt.Sprintf("renamed raw to %s but not subtitle %s for %s: %v", e.NewRawPath, e.SubPath, e.Episode, e.Err)
}

func (e *PartialRenameError) Unwrap() error {
	return e.Err
}

type file struct {
	id   episode.ID
	path string
}

// Matcher pairs raw videos with subtitles by episode and gives each pair a common basename
type Matcher struct {
	fs rawzio.FileIO
}

func NewMatcher(fileIO rawzio.FileIO) *Matcher {
	return &Matcher{fs: fileIO}
}

// MatchAndRename pairs the videos under rawDir with the files in subtitleDir.
// rawDir is walked recursively, skipping subtitleDir. Results are ordered by episode.
func (m *Matcher) MatchAndRename(ctx context.Context, rawDir, subtitleDir string) ([]PairResult, error) {
	log := logger.FromCtx(ctx, "raws", rawDir, "subs", subtitleDir)

	raws, err := m.raws(ctx, rawDir, subtitleDir)
	if err != nil {
		return nil, err
	}

	subs, err := m.subtitles(ctx, subtitleDir)
	if err != nil {
		return nil, err
	}

	results := make([]PairResult, 0, len(subs))
	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		label := sub.id.String()
		raw, ok := raws[sub.id.Key()]
		if !ok {
			log.Debugw("no raw for subtitle", "episode", label, "subtitle", sub.path)
			results = append(results, PairResult{Episode: label, SubPath: sub.path, Status: UnmatchedSubtitle})
			continue
		}

		results = append(results, m.rename(ctx, raw, sub))
	}

	return results, nil
}

func (m *Matcher) rename(ctx context.Context, raw, sub file) PairResult {
	label := sub.id.String()
	log := logger.FromCtx(ctx, "episode", label)

	base := CommonBasename(raw.path, raw.id)
	res := PairResult{
		Episode:    label,
		RawPath:    raw.path,
		SubPath:    sub.path,
		NewRawPath: filepath.Join(filepath.Dir(raw.path), base+filepath.Ext(raw.path)),
		NewSubPath: filepath.Join(filepath.Dir(sub.path), base+filepath.Ext(sub.path)),
	}

	if res.NewRawPath == res.RawPath && res.NewSubPath == res.SubPath {
		res.Status = AlreadyPaired
		return res
	}

	rawRenamed := false
	if res.NewRawPath != res.RawPath {
		if err := m.fs.Rename(res.RawPath, res.NewRawPath); err != nil {
			log.Warnw("failed to rename raw", "path", res.RawPath, zap.Error(err))
			res.Status = RenameFailed
			res.Err = err
			return res
		}
		rawRenamed = true
	}

	if res.NewSubPath != res.SubPath {
		if err := m.fs.Rename(res.SubPath, res.NewSubPath); err != nil {
			log.Warnw("failed to rename subtitle", "path", res.SubPath, zap.Error(err))
			if rawRenamed {
				res.Status = PartialRename
				res.Err = &PartialRenameError{Episode: sub.id, NewRawPath: res.NewRawPath, SubPath: res.SubPath, Err: err}
			} else {
				res.Status = RenameFailed
				res.Err = err
			}
			return res
		}
	}

	log.Infow("renamed pair", "raw", res.NewRawPath, "subtitle", res.NewSubPath)
	res.Status = Renamed
	return res
}

// CommonBasename is the raw file's name without extension, suffixed with the
// canonical episode label unless the name already carries a label for it
func CommonBasename(rawPath string, id episode.ID) string {
	name := filepath.Base(rawPath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	if strings.Contains(stem, id.String()) || strings.Contains(stem, id.Key()) {
		return stem
	}
	return stem + " - " + id.Key()
}

func (m *Matcher) raws(ctx context.Context, rawDir, subtitleDir string) (map[string]file, error) {
	log := logger.FromCtx(ctx)
	skip := filepath.Clean(subtitleDir)

	raws := make(map[string]file)
	err := m.fs.WalkDir(rawDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == rawDir {
				return err
			}
			log.Debugw("skipping unreadable path", "path", path, zap.Error(err))
			return nil
		}

		if d.IsDir() {
			if filepath.Clean(path) == skip {
				return fs.SkipDir
			}
			return nil
		}

		if !isVideoFile(path) {
			return nil
		}

		id, err := episode.Resolve(d.Name(), "")
		if err != nil {
			log.Debugw("ignoring raw without episode", "path", path)
			return nil
		}

		if existing, ok := raws[id.Key()]; ok {
			log.Debugw("duplicate raw for episode", "episode", id.Key(), "kept", existing.path, "ignored", path)
			return nil
		}

		raws[id.Key()] = file{id: id, path: path}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", rawDir, err)
	}

	return raws, nil
}

func (m *Matcher) subtitles(ctx context.Context, subtitleDir string) ([]file, error) {
	log := logger.FromCtx(ctx)

	entries, err := m.fs.ReadDir(subtitleDir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", subtitleDir, err)
	}

	seen := make(map[string]struct{})
	var subs []file
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		id, err := episode.Resolve(e.Name(), "")
		if err != nil {
			var notFound *episode.NotFoundError
			if errors.As(err, &notFound) {
				log.Debugw("ignoring subtitle without episode", "name", e.Name())
			}
			continue
		}

		if _, ok := seen[id.Key()]; ok {
			log.Debugw("duplicate subtitle for episode", "episode", id.Key(), "ignored", e.Name())
			continue
		}
		seen[id.Key()] = struct{}{}

		subs = append(subs, file{id: id, path: filepath.Join(subtitleDir, e.Name())})
	}

	slices.SortStableFunc(subs, func(a, b file) int {
		return episode.Compare(a.id, b.id)
	})

	return subs, nil
}

func isVideoFile(path string) bool {
	return slices.Contains(videoExtensions, strings.ToLower(filepath.Ext(path)))
}

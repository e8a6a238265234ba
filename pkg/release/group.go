package release

import (
	"context"
	"slices"

	"github.com/kasuboski/rawz/pkg/episode"
	"github.com/kasuboski/rawz/pkg/logger"
)

// Entry is a release paired with its resolved episode
type Entry struct {
	Release
	ID episode.ID
}

// EpisodeGroup is the sorted and filtered set of releases for one show and optionally one tag.
// Groups are built with Group and not modified afterwards.
type EpisodeGroup struct {
	show    string
	tag     string
	entries []Entry
}

func (g EpisodeGroup) Show() string {
	return g.show
}

func (g EpisodeGroup) Tag() string {
	return g.tag
}

func (g EpisodeGroup) Len() int {
	return len(g.entries)
}

// Entries returns a copy of the group's releases with their episodes, in group order
func (g EpisodeGroup) Entries() []Entry {
	return slices.Clone(g.entries)
}

// Releases returns a copy of the group's releases in group order
func (g EpisodeGroup) Releases() []Release {
	releases := make([]Release, len(g.entries))
	for i, e := range g.entries {
		releases[i] = e.Release
	}
	return releases
}

// Group builds an EpisodeGroup from releases.
// Releases are sorted by episode, numerically by season then episode, keeping listing order for ties.
// When tag is not empty only releases with exactly that tag are kept, then only releases for show.
// Releases whose episode cannot be resolved are dropped. Multiple releases of an episode are kept.
func Group(ctx context.Context, show, tag string, releases []Release) EpisodeGroup {
	log := logger.FromCtx(ctx)

	entries := make([]Entry, 0, len(releases))
	for _, r := range releases {
		id, err := r.Episode()
		if err != nil {
			log.Debugw("dropping release without episode", "release", r.RemoteName, "error", err)
			continue
		}

		entries = append(entries, Entry{Release: r, ID: id})
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return episode.Compare(a.ID, b.ID)
	})

	if tag != "" {
		entries = slices.DeleteFunc(entries, func(e Entry) bool {
			return e.Tag != tag
		})
	}

	entries = slices.DeleteFunc(entries, func(e Entry) bool {
		return e.Show != show
	})

	log.Debugw("grouped releases", "show", show, "tag", tag, "input", len(releases), "kept", len(entries))

	return EpisodeGroup{
		show:    show,
		tag:     tag,
		entries: entries,
	}
}

package release

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func episodeLabels(t *testing.T, g EpisodeGroup) []string {
	t.Helper()

	var labels []string
	for _, e := range g.Entries() {
		labels = append(labels, e.ID.String())
	}
	return labels
}

func TestGroup_SortsNumerically(t *testing.T) {
	releases := []Release{
		{Show: "Show", RemoteName: "Show S1E2.mkv", Seeders: 1},
		{Show: "Show", RemoteName: "Show S1E10.mkv", Seeders: 1},
		{Show: "Show", RemoteName: "Show S1E1.mkv", Seeders: 1},
	}

	g := Group(context.Background(), "Show", "", releases)

	assert.Equal(t, "Show", g.Show())
	assert.Equal(t, "", g.Tag())
	assert.Equal(t, []string{"S1E1", "S1E2", "S1E10"}, episodeLabels(t, g))
}

func TestGroup_StableForSameEpisode(t *testing.T) {
	releases := []Release{
		{Show: "Show", RemoteName: "[A] Show - 02.mkv"},
		{Show: "Show", RemoteName: "[B] Show - 01.mkv"},
		{Show: "Show", RemoteName: "[C] Show - 02.mkv"},
		{Show: "Show", RemoteName: "[D] Show - 01.mkv"},
	}

	g := Group(context.Background(), "Show", "", releases)

	var names []string
	for _, r := range g.Releases() {
		names = append(names, r.RemoteName)
	}
	assert.Equal(t, []string{"[B] Show - 01.mkv", "[D] Show - 01.mkv", "[A] Show - 02.mkv", "[C] Show - 02.mkv"}, names)
}

func TestGroup_Filters(t *testing.T) {
	releases := Classify([]Release{
		{Show: "Bocchi", RemoteName: "[Ohys-Raws] Bocchi the Rock! - 02.mp4"},
		{Show: "Bocchi", RemoteName: "[Fumi-Raws] Bocchi the Rock! - 01.mkv"},
		{Show: "Bocchi", RemoteName: "Bocchi the Rock! - 03.mkv"},
		{Show: "Bocchi", RemoteName: "[Ohys-Raws] Bocchi the Rock! - 01.mp4"},
		{Show: "bocchi", RemoteName: "[Ohys-Raws] bocchi the rock - 04.mp4"},
		{Show: "Bocchi", RemoteName: "[Ohys-Raws] Bocchi the Rock! Special.mp4"},
	}, []string{"[Ohys-Raws]", "[Fumi-Raws]"})

	t.Run("no tag keeps every tag but only the show", func(t *testing.T) {
		g := Group(context.Background(), "Bocchi", "", releases)
		assert.Equal(t, []string{"S01E01", "S01E01", "S01E02", "S01E03"}, episodeLabels(t, g))
	})

	t.Run("tag filter is exact and untagged never matches", func(t *testing.T) {
		g := Group(context.Background(), "Bocchi", "[Ohys-Raws]", releases)
		assert.Equal(t, []string{"S01E01", "S01E02"}, episodeLabels(t, g))
		for _, r := range g.Releases() {
			assert.Equal(t, "[Ohys-Raws]", r.Tag)
			assert.Equal(t, "Bocchi", r.Show)
		}
	})

	t.Run("show comparison is case sensitive", func(t *testing.T) {
		g := Group(context.Background(), "bocchi", "", releases)
		assert.Equal(t, []string{"S01E04"}, episodeLabels(t, g))
	})

	t.Run("unknown tag", func(t *testing.T) {
		g := Group(context.Background(), "Bocchi", "[Nope]", releases)
		assert.Equal(t, 0, g.Len())
	})
}

func TestGroup_Idempotent(t *testing.T) {
	releases := Classify([]Release{
		{Show: "Show", RemoteName: "[Ohys-Raws] Show - 10.mp4", Seeders: 4},
		{Show: "Show", RemoteName: "[Ohys-Raws] Show - 2.mp4", Seeders: 0},
		{Show: "Other", RemoteName: "[Ohys-Raws] Other - 1.mp4", Seeders: 9},
		{Show: "Show", RemoteName: "Show - 1.mp4", Seeders: 3},
		{Show: "Show", RemoteName: "[Ohys-Raws] Show - 2.mp4", Seeders: 7},
	}, []string{"[Ohys-Raws]"})

	for _, tag := range []string{"", "[Ohys-Raws]"} {
		first := Group(context.Background(), "Show", tag, releases)
		second := Group(context.Background(), "Show", tag, first.Releases())
		require.Equal(t, first, second, "tag %q", tag)
	}
}

func TestGroup_EntriesAreCopies(t *testing.T) {
	g := Group(context.Background(), "Show", "", []Release{{Show: "Show", RemoteName: "Show - 01.mkv"}})

	entries := g.Entries()
	entries[0].RemoteName = "changed"

	assert.Equal(t, "Show - 01.mkv", g.Releases()[0].RemoteName)
}

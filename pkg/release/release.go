package release

import (
	"fmt"
	"strings"

	"github.com/kasuboski/rawz/pkg/episode"
)

// Release is one candidate download for an episode as reported by a search listing.
// Tag is empty until the release has been classified.
type Release struct {
	Show       string `json:"show"`
	RemoteName string `json:"remoteName"`
	Locator    string `json:"locator"`
	Seeders    int    `json:"seeders"`
	Tag        string `json:"tag,omitempty"`
}

func (r Release) String() string {
	return fmt.Sprintf("show: %s, name: %s, seeders: %d, tag: %s", r.Show, r.RemoteName, r.Seeders, r.Tag)
}

// Episode resolves the release's episode identifier, using the show name as the prefix anchor
func (r Release) Episode() (episode.ID, error) {
	return episode.Resolve(r.RemoteName, r.Show)
}

// HasTag reports whether the release was classified with a release group tag
func (r Release) HasTag() bool {
	return r.Tag != ""
}

// WithTag returns a copy of r carrying tag
func (r Release) WithTag(tag string) Release {
	r.Tag = tag
	return r
}

// DefaultTags are the release group markers recognised when no tags are configured
var DefaultTags = []string{"[Ohys-Raws]", "[Fumi-Raws]", "[Leopard-Raws]", "[Moozzi2]", "[Kawaiika-Raws]"}

// Classify returns copies of releases with Tag set to the first marker in tags found in the remote name.
// The input slice and its elements are left untouched.
func Classify(releases []Release, tags []string) []Release {
	classified := make([]Release, 0, len(releases))
	for _, r := range releases {
		for _, tag := range tags {
			if tag != "" && strings.Contains(r.RemoteName, tag) {
				r = r.WithTag(tag)
				break
			}
		}

		classified = append(classified, r)
	}

	return classified
}

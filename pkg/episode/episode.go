// Package episode resolves canonical S<season>E<episode> identifiers from release filenames.
package episode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kasuboski/rawz/pkg/cache"
)

const (
	// DefaultSeason is used when a filename only carries a bare episode number
	DefaultSeason = "01"

	explicitPattern = `.*?S(\d+)E(\d+)`
	barePattern     = `.*?-\s*(\d+)`
)

var (
	labelRegex = regexp.MustCompile(`^S(\d+)E(\d+)$`)

	grammars = cache.New[string, grammar]()
)

// ID is an episode identifier. Season and Episode hold the digits exactly as they appeared in the filename.
type ID struct {
	Season  string `json:"season"`
	Episode string `json:"episode"`
}

func (id ID) String() string {
	return fmt.Sprintf("S%sE%s", id.Season, id.Episode)
}

// Key is the canonical label of id. Identifiers that Compare as equal share a Key,
// so "S1E1", "S01E1" and "S01E01" all become "S01E01".
func (id ID) Key() string {
	return fmt.Sprintf("S%sE%s", canonicalDigits(id.Season), canonicalDigits(id.Episode))
}

// IsZero reports whether id was never resolved
func (id ID) IsZero() bool {
	return id.Season == "" && id.Episode == ""
}

// NotFoundError is returned when no episode marker can be located in a filename
type NotFoundError struct {
	Filename string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find episode number in %q", e.Filename)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

type grammar struct {
	explicit *regexp.Regexp
	bare     *regexp.Regexp
}

func grammarFor(prefix string) (grammar, error) {
	return grammars.GetOrCompute(prefix, func() (grammar, error) {
		quoted := regexp.QuoteMeta(prefix)

		explicit, err := regexp.Compile(quoted + explicitPattern)
		if err != nil {
			return grammar{}, err
		}

		bare, err := regexp.Compile(quoted + barePattern)
		if err != nil {
			return grammar{}, err
		}

		return grammar{explicit: explicit, bare: bare}, nil
	})
}

// Resolve extracts the episode identifier from filename.
// The search starts at the first occurrence of prefix, which is matched literally.
// An explicit SxxEyy marker wins over a bare "- NN" marker. Both are scanned lazily so the first
// marker after the prefix is used rather than numbers further along such as resolutions.
func Resolve(filename string, prefix string) (ID, error) {
	g, err := grammarFor(prefix)
	if err != nil {
		return ID{}, err
	}

	if m := g.explicit.FindStringSubmatch(filename); m != nil {
		return ID{Season: m[1], Episode: m[2]}, nil
	}

	if m := g.bare.FindStringSubmatch(filename); m != nil {
		return ID{Season: DefaultSeason, Episode: m[1]}, nil
	}

	return ID{}, &NotFoundError{Filename: filename}
}

// Parse recovers an ID from its S<season>E<episode> label
func Parse(label string) (ID, error) {
	m := labelRegex.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return ID{}, fmt.Errorf("invalid episode label %q", label)
	}

	return ID{Season: m[1], Episode: m[2]}, nil
}

// Compare orders identifiers numerically by season and then by episode.
// It returns -1, 0 or 1 so it can be used with slices.SortStableFunc.
func Compare(a, b ID) int {
	if c := compareDigits(a.Season, b.Season); c != 0 {
		return c
	}

	return compareDigits(a.Episode, b.Episode)
}

// canonicalDigits drops leading zeros and pads to at least two digits
func canonicalDigits(d string) string {
	d = strings.TrimLeft(d, "0")
	for len(d) < 2 {
		d = "0" + d
	}
	return d
}

// compareDigits compares two decimal strings by value so "2" < "10" and "01" == "1"
func compareDigits(a, b string) int {
	an, aErr := strconv.ParseUint(a, 10, 64)
	bn, bErr := strconv.ParseUint(b, 10, 64)
	if aErr == nil && bErr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}

	// values too large for uint64, compare by significant digits
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}

	return strings.Compare(a, b)
}

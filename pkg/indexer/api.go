package indexer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kasuboski/rawz/config"
	rawzhttp "github.com/kasuboski/rawz/pkg/http"
	"github.com/kasuboski/rawz/pkg/release"
)

// Source lists the releases published for a show
type Source interface {
	Search(ctx context.Context, show string) ([]release.Release, error)
}

const (
	DefaultScheme = "https"
	DefaultHost   = "nyaa.si"
)

// NewSource returns a throttled listing source for the given configuration
func NewSource(cfg config.Indexer) (Source, error) {
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}

	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}

	base, err := url.Parse(fmt.Sprintf("%s://%s", scheme, host))
	if err != nil {
		return nil, fmt.Errorf("invalid indexer address: %w", err)
	}

	var opts []rawzhttp.ClientOption
	if cfg.MinInterval > 0 {
		opts = append(opts, rawzhttp.WithMinInterval(cfg.MinInterval))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, rawzhttp.WithUserAgent(cfg.UserAgent))
	}

	return NewNyaaSource(rawzhttp.NewThrottledClient(opts...), *base), nil
}

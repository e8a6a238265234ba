package download

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kasuboski/rawz/config"
	rawzhttp "github.com/kasuboski/rawz/pkg/http"
)

// Backend is a torrent client that downloads are submitted to and supervised through
type Backend interface {
	// Submit hands a locator to the backend, saving into destination
	Submit(ctx context.Context, locator, destination string) (Handle, error)
	// ListActive returns transfers that have not finished downloading
	ListActive(ctx context.Context) ([]Transfer, error)
	// List returns every transfer known to the backend
	List(ctx context.Context) ([]Transfer, error)
	// ForceStartAll starts every transfer regardless of queueing limits
	ForceStartAll(ctx context.Context) error
}

// Handle identifies a submitted transfer within its backend
type Handle struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Transfer is a point-in-time view of a transfer
type Transfer struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Progress float64 `json:"progress"` // 0 to 1
	Speed    int64   `json:"speed"`    // bytes/s
	Size     int64   `json:"size"`     // bytes
	Done     bool    `json:"done"`
}

const (
	QBittorrent  = "qbittorrent"
	Transmission = "transmission"
)

const defaultTimeout = 30 * time.Second

// NewBackend returns a backend for the given configuration
func NewBackend(ctx context.Context, cfg config.Backend) (Backend, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	switch cfg.Implementation {
	case QBittorrent:
		b, err := NewQBittorrentBackend(ctx, cfg.Scheme, cfg.Host, cfg.Port, cfg.Username, cfg.Password, timeout)
		if err != nil {
			return nil, err
		}
		return b, nil
	case Transmission:
		client := rawzhttp.NewThrottledClient(
			rawzhttp.WithMinInterval(0),
			rawzhttp.WithHTTPClient(&http.Client{Timeout: timeout}),
		)
		return NewTransmissionBackend(client, cfg.Scheme, cfg.Host, cfg.Port), nil
	default:
		return nil, fmt.Errorf("unsupported backend implementation: %v", cfg.Implementation)
	}
}

func hostPort(host string, port int) string {
	if port != 0 {
		return fmt.Sprintf("%s:%d", host, port)
	}
	return host
}

package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anacrolix/torrent/metainfo"
	qbt "github.com/autobrr/go-qbittorrent"
	"github.com/kasuboski/rawz/pkg/logger"
)

// QBittorrentAPI is the slice of the qBittorrent web api the backend relies on
type QBittorrentAPI interface {
	LoginCtx(ctx context.Context) error
	AddTorrentFromUrlCtx(ctx context.Context, url string, options map[string]string) error
	GetTorrentsCtx(ctx context.Context, o qbt.TorrentFilterOptions) ([]qbt.Torrent, error)
	SetForceStartCtx(ctx context.Context, hashes []string, value bool) error
}

var ErrUnsupportedLocator = errors.New("locator is not a magnet link")

type QBittorrentBackend struct {
	client QBittorrentAPI
}

// NewQBittorrentBackend builds a client and logs in
func NewQBittorrentBackend(ctx context.Context, scheme, host string, port int, username, password string, timeout time.Duration) (*QBittorrentBackend, error) {
	if scheme == "" {
		scheme = "http"
	}

	client := qbt.NewClient(qbt.Config{
		Host:     fmt.Sprintf("%s://%s", scheme, hostPort(host, port)),
		Username: username,
		Password: password,
		Timeout:  int(timeout.Seconds()),
	})

	if err := client.LoginCtx(ctx); err != nil {
		return nil, fmt.Errorf("qbittorrent login: %w", err)
	}

	return NewQBittorrentBackendWithClient(client), nil
}

func NewQBittorrentBackendWithClient(client QBittorrentAPI) *QBittorrentBackend {
	return &QBittorrentBackend{client: client}
}

// ParseMagnet derives the handle a magnet link will be known by once added
func ParseMagnet(locator string) (Handle, error) {
	if !strings.HasPrefix(locator, "magnet:") {
		return Handle{}, fmt.Errorf("%w: %q", ErrUnsupportedLocator, locator)
	}

	m, err := metainfo.ParseMagnetUri(locator)
	if err != nil {
		return Handle{}, fmt.Errorf("parse magnet: %w", err)
	}

	return Handle{ID: strings.ToLower(m.InfoHash.HexString()), Name: m.DisplayName}, nil
}

func (b *QBittorrentBackend) Submit(ctx context.Context, locator, destination string) (Handle, error) {
	handle, err := ParseMagnet(locator)
	if err != nil {
		return Handle{}, err
	}

	options := map[string]string{
		"savepath": destination,
	}
	if err := b.client.AddTorrentFromUrlCtx(ctx, locator, options); err != nil {
		return Handle{}, fmt.Errorf("add torrent: %w", err)
	}

	logger.FromCtx(ctx).Debugw("added torrent", "hash", handle.ID, "destination", destination)
	return handle, nil
}

func (b *QBittorrentBackend) List(ctx context.Context) ([]Transfer, error) {
	return b.list(ctx, qbt.TorrentFilterOptions{})
}

// ListActive returns torrents in a downloading state with progress below one
func (b *QBittorrentBackend) ListActive(ctx context.Context) ([]Transfer, error) {
	all, err := b.list(ctx, qbt.TorrentFilterOptions{Filter: qbt.TorrentFilterDownloading})
	if err != nil {
		return nil, err
	}

	var active []Transfer
	for _, t := range all {
		if !t.Done {
			active = append(active, t)
		}
	}

	return active, nil
}

func (b *QBittorrentBackend) ForceStartAll(ctx context.Context) error {
	return b.client.SetForceStartCtx(ctx, []string{"all"}, true)
}

func (b *QBittorrentBackend) list(ctx context.Context, filter qbt.TorrentFilterOptions) ([]Transfer, error) {
	torrents, err := b.client.GetTorrentsCtx(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list torrents: %w", err)
	}

	transfers := make([]Transfer, 0, len(torrents))
	for _, t := range torrents {
		transfers = append(transfers, Transfer{
			ID:       strings.ToLower(t.Hash),
			Name:     t.Name,
			Progress: t.Progress,
			Speed:    t.DlSpeed,
			Size:     t.Size,
			Done:     t.Progress >= 1,
		})
	}

	return transfers, nil
}

package download

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	rawzhttp "github.com/kasuboski/rawz/pkg/http"
	"github.com/kasuboski/rawz/pkg/logger"
)

type TransmissionBackend struct {
	http    rawzhttp.HTTPClient
	scheme  string
	host    string
	mutex   *sync.Mutex
	session string
}

type TransmissionRequest struct {
	Arguments any           `json:"arguments"`
	Tag       *int          `json:"tag,omitempty"`
	Method    torrentMethod `json:"method"`
}

type torrentMethod string

const (
	AddTorrentMethod      torrentMethod = "torrent-add"
	GetTorrentMethod      torrentMethod = "torrent-get"
	StartNowTorrentMethod torrentMethod = "torrent-start-now"
)

// transmission status codes above this are seeding or queued to seed
const transmissionDownloading = 4

func NewTransmissionBackend(http rawzhttp.HTTPClient, scheme, host string, port int) *TransmissionBackend {
	if scheme == "" {
		scheme = "http"
	}

	return &TransmissionBackend{
		http:    http,
		scheme:  scheme,
		host:    hostPort(host, port),
		mutex:   new(sync.Mutex),
		session: "",
	}
}

type TransmissionTorrent struct {
	Name          string  `json:"name"`
	HashString    string  `json:"hashString"`
	DownloadDir   string  `json:"downloadDir"`
	PercentDone   float64 `json:"percentDone"`
	ID            int     `json:"id"`
	TotalSize     int64   `json:"totalSize"`
	LeftUntilDone int64   `json:"leftUntilDone"`
	RateDownload  int64   `json:"rateDownload"`
	Status        int     `json:"status"`
	IsFinished    bool    `json:"isFinished"`
}

func (t TransmissionTorrent) ToTransfer() Transfer {
	return Transfer{
		ID:       strings.ToLower(t.HashString),
		Name:     t.Name,
		Size:     t.TotalSize,
		Progress: t.PercentDone,
		Speed:    t.RateDownload,
		Done:     t.IsFinished || t.Status > transmissionDownloading || t.PercentDone >= 1,
	}
}

type TransmissionListTorrentsResponse struct {
	Result    string      `json:"result"`
	Arguments TorrentList `json:"arguments"`
}

type TorrentList struct {
	Torrents []TransmissionTorrent `json:"torrents"`
}

var torrentFields = []string{
	"hashString",
	"id",
	"isFinished",
	"leftUntilDone",
	"name",
	"downloadDir",
	"percentDone",
	"rateDownload",
	"status",
	"totalSize",
}

type AddTorrentPayload struct {
	DownloadDir string `json:"download-dir"`
	Filename    string `json:"filename"`
}

// AddTorrentResponse represents a response from a torrent-add rpc call
type AddTorrentResponse struct {
	Result    string                      `json:"result"`
	Arguments AddTorrentResponseArguments `json:"arguments"`
}

// AddTorrentResponseArguments holds either the added torrent or the one that already existed
type AddTorrentResponseArguments struct {
	TorrentAdded     *AddedTorrent `json:"torrent-added,omitempty"`
	TorrentDuplicate *AddedTorrent `json:"torrent-duplicate,omitempty"`
}

// AddedTorrent represents the details of the added torrent
type AddedTorrent struct {
	HashString string `json:"hashString"`
	Name       string `json:"name"`
	ID         int    `json:"id"`
}

type genericResponse struct {
	Result string `json:"result"`
}

// Submit adds a torrent saving into destination
func (c *TransmissionBackend) Submit(ctx context.Context, locator, destination string) (Handle, error) {
	log := logger.FromCtx(ctx)

	request := &TransmissionRequest{
		Method: AddTorrentMethod,
		Arguments: AddTorrentPayload{
			DownloadDir: destination,
			Filename:    locator,
		},
	}

	var response AddTorrentResponse
	if err := c.call(ctx, request, &response); err != nil {
		return Handle{}, err
	}

	if response.Result != "success" {
		return Handle{}, fmt.Errorf("unexpected result: %v", response.Result)
	}

	added := response.Arguments.TorrentAdded
	if added == nil {
		added = response.Arguments.TorrentDuplicate
		log.Debugw("torrent already present", "destination", destination)
	}
	if added == nil {
		return Handle{}, errors.New("torrent-add returned no torrent")
	}

	return Handle{ID: strings.ToLower(added.HashString), Name: added.Name}, nil
}

// List fetches all torrents
func (c *TransmissionBackend) List(ctx context.Context) ([]Transfer, error) {
	request := &TransmissionRequest{
		Method:    GetTorrentMethod,
		Arguments: map[string]any{"fields": torrentFields},
	}

	var response TransmissionListTorrentsResponse
	if err := c.call(ctx, request, &response); err != nil {
		return nil, err
	}

	if response.Result != "success" {
		return nil, fmt.Errorf("unexpected result: %v", response.Result)
	}

	transfers := make([]Transfer, 0, len(response.Arguments.Torrents))
	for _, t := range response.Arguments.Torrents {
		transfers = append(transfers, t.ToTransfer())
	}

	return transfers, nil
}

// ListActive fetches torrents that are still downloading
func (c *TransmissionBackend) ListActive(ctx context.Context) ([]Transfer, error) {
	all, err := c.List(ctx)
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

// ForceStartAll starts every torrent, bypassing the queue
func (c *TransmissionBackend) ForceStartAll(ctx context.Context) error {
	request := &TransmissionRequest{
		Method:    StartNowTorrentMethod,
		Arguments: map[string]any{},
	}

	var response genericResponse
	if err := c.call(ctx, request, &response); err != nil {
		return err
	}

	if response.Result != "success" {
		return fmt.Errorf("unexpected result: %v", response.Result)
	}

	return nil
}

func (c *TransmissionBackend) call(ctx context.Context, request *TransmissionRequest, out any) error {
	b, err := json.Marshal(request)
	if err != nil {
		return err
	}

	url := url.URL{
		Host:   c.host,
		Scheme: c.scheme,
		Path:   "/transmission/rpc",
	}

	b, err = c.do(ctx, &url, b)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, out)
}

const (
	sessionHeader = "x-transmission-session-id"
)

func (c *TransmissionBackend) do(ctx context.Context, url *url.URL, body []byte, retry ...bool) ([]byte, error) {
	if c.http == nil {
		return nil, errors.New("http client is nil")
	}

	if url == nil {
		return nil, errors.New("url is nil")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url.String(), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(sessionHeader, c.getSessionID())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	// a 409 carries the session id to use
	case http.StatusConflict:
		// only take a new session once per call
		if len(retry) != 0 && retry[0] {
			return nil, errors.New("session id is invalid after retry")
		}

		session := resp.Header.Get(sessionHeader)
		if session == "" {
			return nil, errors.New("session id is empty")
		}

		c.setSessionID(session)
		return c.do(ctx, url, body, true)

	case http.StatusOK:
		return io.ReadAll(resp.Body)

	default:
		return nil, fmt.Errorf("unexpected status code: %v", resp.Status)
	}
}

func (c *TransmissionBackend) setSessionID(id string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.session = id
}

func (c *TransmissionBackend) getSessionID() string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.session
}

package subtitles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"
	"github.com/kasuboski/rawz/config"
	rawzhttp "github.com/kasuboski/rawz/pkg/http"
	rawzio "github.com/kasuboski/rawz/pkg/io"
	"github.com/kasuboski/rawz/pkg/logger"
	"go.uber.org/zap"
)

const (
	DefaultScheme      = "https"
	DefaultHost        = "kitsunekko.net"
	DefaultCatalogPath = "/dirlist.php?dir=subtitles%2Fjapanese%2F"
)

// Entry is a show directory in the subtitle catalog
type Entry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// File is a downloadable subtitle file of a show
type File struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Provider browses a directory-listing subtitle site
type Provider struct {
	http    rawzhttp.HTTPClient
	base    url.URL
	catalog string
	fs      rawzio.FileIO
}

func NewProvider(client rawzhttp.HTTPClient, base url.URL, catalogPath string, fileIO rawzio.FileIO) *Provider {
	if catalogPath == "" {
		catalogPath = DefaultCatalogPath
	}

	return &Provider{
		http:    client,
		base:    base,
		catalog: catalogPath,
		fs:      fileIO,
	}
}

// NewProviderFromConfig builds a throttled provider writing through the os filesystem
func NewProviderFromConfig(cfg config.Subtitles) (*Provider, error) {
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
		return nil, fmt.Errorf("invalid subtitles address: %w", err)
	}

	return NewProvider(rawzhttp.NewThrottledClient(), *base, cfg.CatalogPath, &rawzio.MediaFileSystem{}), nil
}

// Catalog lists every show the site has subtitles for
func (p *Provider) Catalog(ctx context.Context) ([]Entry, error) {
	doc, err := p.document(ctx, p.resolve(p.catalog))
	if err != nil {
		return nil, err
	}

	var entries []Entry
	doc.Find(`tr td[colspan="2"] a`).Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok {
			return
		}

		name := strings.TrimSpace(link.Find("strong").First().Text())
		if name == "" {
			return
		}

		entries = append(entries, Entry{Name: name, URL: p.resolve(href)})
	})

	logger.FromCtx(ctx).Debugw("fetched subtitle catalog", "entries", len(entries))
	return entries, nil
}

// Resolve looks name up in the catalog, failing with ErrShowNotFound or *AmbiguousMatchError
func (p *Provider) Resolve(ctx context.Context, name string) (Entry, error) {
	entries, err := p.Catalog(ctx)
	if err != nil {
		return Entry{}, err
	}

	match := Lookup(name, entries)
	switch match.Kind {
	case Found:
		return match.Entry, nil
	case Ambiguous:
		return Entry{}, &AmbiguousMatchError{Name: name, Candidates: match.Candidates}
	default:
		if len(match.Candidates) > 0 {
			logger.FromCtx(ctx).Infow("show not found, similar shows exist", "show", name, "suggestions", len(match.Candidates))
		}
		return Entry{}, fmt.Errorf("%w: %q", ErrShowNotFound, name)
	}
}

// Files lists the subtitle files in a show's directory
func (p *Provider) Files(ctx context.Context, entry Entry) ([]File, error) {
	doc, err := p.document(ctx, entry.URL)
	if err != nil {
		return nil, err
	}

	var files []File
	doc.Find("tr td a").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || strings.HasSuffix(href, "/") || strings.Contains(href, "dirlist.php") {
			return
		}

		name := strings.TrimSpace(link.Find("strong").First().Text())
		if name == "" {
			name = path.Base(href)
		}

		files = append(files, File{Name: name, URL: p.resolve(href)})
	})

	return files, nil
}

// Download saves file into dir, creating dir when needed. An existing file is not overwritten.
func (p *Provider) Download(ctx context.Context, file File, dir string) (string, error) {
	log := logger.FromCtx(ctx, "file", file.Name)

	target := filepath.Join(dir, filepath.Base(file.Name))
	if p.fs.FileExists(target) {
		return "", fmt.Errorf("%w: %s", rawzio.ErrFileExists, target)
	}

	if err := p.fs.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	resp, err := p.get(ctx, file.URL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// the target only appears once the whole body is on disk
	partial := filepath.Join(dir, "."+filepath.Base(target)+".part")
	w, err := p.fs.Create(partial)
	if err != nil {
		return "", err
	}

	n, err := io.Copy(w, resp.Body)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = p.fs.Rename(partial, target)
	}
	if err != nil {
		if rmErr := p.fs.Remove(partial); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			log.Warnw("failed to remove partial download", "path", partial, zap.Error(rmErr))
		}
		return "", fmt.Errorf("write %s: %w", target, err)
	}

	log.Debugw("downloaded subtitle", "path", target, "size", humanize.Bytes(uint64(n)))
	return target, nil
}

// DownloadAll saves every file of entry into dir. Files that fail are logged and skipped.
func (p *Provider) DownloadAll(ctx context.Context, entry Entry, dir string) ([]string, error) {
	log := logger.FromCtx(ctx, "show", entry.Name)

	files, err := p.Files(ctx, entry)
	if err != nil {
		return nil, err
	}

	var saved []string
	for _, f := range files {
		target, err := p.Download(ctx, f, dir)
		if err != nil {
			log.Warnw("failed to download subtitle", "file", f.Name, zap.Error(err))
			continue
		}
		saved = append(saved, target)
	}

	return saved, nil
}

func (p *Provider) resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if !strings.HasPrefix(ref, "/") && !u.IsAbs() {
		u.Path = "/" + u.Path
	}
	return p.base.ResolveReference(u).String()
}

func (p *Provider) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("get %s: unexpected status code: %v", target, resp.Status)
	}

	return resp, nil
}

func (p *Provider) document(ctx context.Context, target string) (*goquery.Document, error) {
	resp, err := p.get(ctx, target)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}

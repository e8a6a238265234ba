package indexer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	rawzhttp "github.com/kasuboski/rawz/pkg/http"
	"github.com/kasuboski/rawz/pkg/logger"
	"github.com/kasuboski/rawz/pkg/release"
	"go.uber.org/zap"
)

const (
	rawAnimeCategory = "1_4"
	seedersColumn    = 5
)

// NyaaSource scrapes the raw anime category of a nyaa listing, most seeded first
type NyaaSource struct {
	http rawzhttp.HTTPClient
	base url.URL
}

func NewNyaaSource(client rawzhttp.HTTPClient, base url.URL) *NyaaSource {
	return &NyaaSource{http: client, base: base}
}

func (s *NyaaSource) searchURL(show string) string {
	u := s.base
	u.Path = "/"
	q := url.Values{}
	q.Set("f", "0")
	q.Set("c", rawAnimeCategory)
	q.Set("q", show)
	q.Set("s", "seeders")
	q.Set("o", "desc")
	u.RawQuery = q.Encode()
	return u.String()
}

// Search fetches one listing page for show
func (s *NyaaSource) Search(ctx context.Context, show string) ([]release.Release, error) {
	log := logger.FromCtx(ctx, "show", show)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.searchURL(show), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", show, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search %q: unexpected status code: %v", show, resp.Status)
	}

	releases, err := ParseListing(resp.Body, show)
	if err != nil {
		log.Debugw("failed to parse listing", zap.Error(err))
		return nil, err
	}

	log.Debugw("parsed listing", "releases", len(releases))
	return releases, nil
}

// ParseListing extracts releases from a listing page. Rows missing a title, magnet or seeder count are skipped.
func ParseListing(body io.Reader, show string) ([]release.Release, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var releases []release.Release
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		r, ok := parseRow(row)
		if !ok {
			return
		}
		r.Show = show
		releases = append(releases, r)
	})

	return releases, nil
}

func parseRow(row *goquery.Selection) (release.Release, bool) {
	var r release.Release

	row.Find(`a[href^="/view/"]`).EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		if strings.Contains(href, "#comments") {
			return true
		}
		r.RemoteName, _ = link.Attr("title")
		return false
	})
	if r.RemoteName == "" {
		return r, false
	}

	magnet, ok := row.Find(`a[href^="magnet:"]`).First().Attr("href")
	if !ok {
		return r, false
	}
	r.Locator = magnet

	cells := row.Find("td")
	if cells.Length() <= seedersColumn {
		return r, false
	}

	seeders, err := strconv.Atoi(strings.TrimSpace(cells.Eq(seedersColumn).Text()))
	if err != nil || seeders < 0 {
		return r, false
	}
	r.Seeders = seeders

	return r, true
}

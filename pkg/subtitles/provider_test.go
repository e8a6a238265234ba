package subtitles

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	rawzhttp "github.com/kasuboski/rawz/pkg/http"
	rawzio "github.com/kasuboski/rawz/pkg/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()

	catalog, err := os.ReadFile("testdata/catalog.html")
	require.NoError(t, err)
	show, err := os.ReadFile("testdata/show.html")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/dirlist.php" && r.URL.Query().Get("dir") == "subtitles/japanese/":
			_, _ = w.Write(catalog)
		case r.URL.Path == "/dirlist.php" && r.URL.Query().Get("dir") == "subtitles/japanese/Bocchi the Rock!/":
			_, _ = w.Write(show)
		case r.URL.Path == "/subtitles/japanese/Bocchi the Rock!/Bocchi the Rock! - 01.srt":
			_, _ = w.Write([]byte("1\n00:00:01,000 --> 00:00:02,000\nこんにちは\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL)
	require.NoError(t, err)

	client := rawzhttp.NewThrottledClient(rawzhttp.WithMinInterval(0), rawzhttp.WithHTTPClient(srv.Client()))
	return NewProvider(client, *base, "", &rawzio.MediaFileSystem{})
}

func TestProvider_Catalog(t *testing.T) {
	p := newTestProvider(t)

	entries, err := p.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bocchi the Rock!", "ReLIFE", "ReLife Kanketsu Hen", "One Piece"}, names(entries))
	assert.Equal(t, p.base.String()+"/dirlist.php?dir=subtitles%2Fjapanese%2FBocchi+the+Rock%21%2F", entries[0].URL)
}

func TestProvider_Resolve(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	t.Run("unique", func(t *testing.T) {
		entry, err := p.Resolve(ctx, "bocchi")
		require.NoError(t, err)
		assert.Equal(t, "Bocchi the Rock!", entry.Name)
	})

	t.Run("ambiguous", func(t *testing.T) {
		_, err := p.Resolve(ctx, "life")
		var ambiguous *AmbiguousMatchError
		require.True(t, errors.As(err, &ambiguous))
		assert.Equal(t, []string{"ReLIFE", "ReLife Kanketsu Hen"}, names(ambiguous.Candidates))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := p.Resolve(ctx, "Frieren")
		assert.ErrorIs(t, err, ErrShowNotFound)
	})
}

func TestProvider_FilesAndDownload(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	entry, err := p.Resolve(ctx, "Bocchi the Rock!")
	require.NoError(t, err)

	files, err := p.Files(ctx, entry)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "Bocchi the Rock! - 01.srt", files[0].Name)

	dir := filepath.Join(t.TempDir(), "subs")
	target, err := p.Download(ctx, files[0], dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Bocchi the Rock! - 01.srt"), target)

	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(b), "こんにちは")

	_, err = p.Download(ctx, files[0], dir)
	assert.ErrorIs(t, err, rawzio.ErrFileExists)
}

func TestProvider_DownloadAll_SkipsFailures(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	entry, err := p.Resolve(ctx, "bocchi")
	require.NoError(t, err)

	dir := t.TempDir()
	saved, err := p.DownloadAll(ctx, entry, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "Bocchi the Rock! - 01.srt")}, saved)
}

func TestProvider_Download_TruncatedBodyLeavesNothingBehind(t *testing.T) {
	body := "1\n00:00:01,000 --> 00:00:02,000\nこんにちは\n"
	var truncate atomic.Bool
	truncate.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if truncate.Load() {
			w.Header().Set("Content-Length", "1000")
			_, _ = w.Write([]byte(body[:7]))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL)
	require.NoError(t, err)
	client := rawzhttp.NewThrottledClient(rawzhttp.WithMinInterval(0), rawzhttp.WithHTTPClient(srv.Client()))
	p := NewProvider(client, *base, "", &rawzio.MediaFileSystem{})

	ctx := context.Background()
	dir := t.TempDir()
	file := File{Name: "Show - 01.srt", URL: srv.URL + "/Show - 01.srt"}

	_, err = p.Download(ctx, file, dir)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "Show - 01.srt"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	truncate.Store(false)
	target, err := p.Download(ctx, file, dir)
	require.NoError(t, err)

	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, body, string(b))
}

package download_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/hoard/pkg/domain/types"
	"github.com/m-mizutani/hoard/pkg/infra/download"
)

func archivePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".dataset.tar.gz")
}

func TestSimpleDownload(t *testing.T) {
	const body = "archive-bytes"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	path := archivePath(t)
	dl := download.NewSimple(srv.Client())
	gt.Value(t, dl.Available()).Equal(true)
	gt.NoError(t, dl.Download(context.Background(), srv.URL, path))

	got, err := os.ReadFile(path)
	gt.NoError(t, err)
	gt.Value(t, string(got)).Equal(body)
}

func TestSimpleDownloadBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dl := download.NewSimple(srv.Client())
	gt.Error(t, dl.Download(context.Background(), srv.URL, archivePath(t)))
}

func TestResumableDownload(t *testing.T) {
	const body = "full-archive-content"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	path := archivePath(t)
	dl := download.NewResumable(download.WithHTTPClient(srv.Client()))
	gt.NoError(t, dl.Download(context.Background(), srv.URL, path))

	got, err := os.ReadFile(path)
	gt.NoError(t, err)
	gt.Value(t, string(got)).Equal(body)
}

// The first response dies mid-body; the retry must continue from the last
// byte offset via a Range request.
func TestResumableDownloadResumesOnRetry(t *testing.T) {
	const body = "0123456789"

	var mu sync.Mutex
	var requests int
	var rangeHeaders []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		n := requests
		rangeHeaders = append(rangeHeaders, r.Header.Get("Range"))
		mu.Unlock()

		if n == 1 {
			// Announce the full length but send only a prefix, so the
			// client sees an unexpected EOF
			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
			_, _ = w.Write([]byte(body[:4]))
			return
		}

		w.Header().Set("Content-Range", fmt.Sprintf("bytes 4-%d/%d", len(body)-1, len(body)))
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write([]byte(body[4:]))
	}))
	defer srv.Close()

	path := archivePath(t)
	dl := download.NewResumable(
		download.WithHTTPClient(srv.Client()),
		download.WithRetries(2),
	)
	gt.NoError(t, dl.Download(context.Background(), srv.URL, path))

	got, err := os.ReadFile(path)
	gt.NoError(t, err)
	gt.Value(t, string(got)).Equal(body)

	mu.Lock()
	defer mu.Unlock()
	gt.Value(t, requests).Equal(2)
	gt.Value(t, rangeHeaders[0]).Equal("")
	gt.Value(t, rangeHeaders[1]).Equal("bytes=4-")
}

// A server that ignores Range and replies 200 must cause a restart from
// scratch, not a corrupted concatenation.
func TestResumableDownloadRestartsWhenRangeIgnored(t *testing.T) {
	const body = "abcdefghij"

	var mu sync.Mutex
	var requests int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		n := requests
		mu.Unlock()

		if n == 1 {
			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
			_, _ = w.Write([]byte(body[:7]))
			return
		}

		// Ignore the Range header entirely
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	path := archivePath(t)
	dl := download.NewResumable(
		download.WithHTTPClient(srv.Client()),
		download.WithRetries(1),
	)
	gt.NoError(t, dl.Download(context.Background(), srv.URL, path))

	got, err := os.ReadFile(path)
	gt.NoError(t, err)
	gt.Value(t, string(got)).Equal(body)
}

func TestResumableDownloadFailsAfterRetries(t *testing.T) {
	var mu sync.Mutex
	var requests int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dl := download.NewResumable(
		download.WithHTTPClient(srv.Client()),
		download.WithRetries(2),
	)
	err := dl.Download(context.Background(), srv.URL, archivePath(t))
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.TagDownloadFailed)).Equal(true)

	mu.Lock()
	defer mu.Unlock()
	gt.Value(t, requests).Equal(3)
}

// unavailableDownloader simulates a mechanism missing from the environment
type unavailableDownloader struct{}

func (unavailableDownloader) Name() string    { return "missing" }
func (unavailableDownloader) Available() bool { return false }
func (unavailableDownloader) Download(ctx context.Context, url, path string) error {
	panic("must not be called")
}

func TestSelectPrefersFirstAvailable(t *testing.T) {
	preferred := download.NewResumable()
	fallback := download.NewSimple(nil)

	dl, err := download.Select(unavailableDownloader{}, preferred, fallback)
	gt.NoError(t, err)
	gt.Value(t, dl.Name()).Equal(preferred.Name())
}

func TestSelectNoMechanism(t *testing.T) {
	_, err := download.Select(unavailableDownloader{})
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.TagDownloadUnavailable)).Equal(true)
	gt.Value(t, strings.Contains(err.Error(), "no download mechanism")).Equal(true)

	_, err = download.Select()
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.TagDownloadUnavailable)).Equal(true)
}

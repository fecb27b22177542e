package download

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Simple is the fallback mechanism: a single GET with no resume and no
// retries, mirroring what the resumable one does minus the recovery paths.
type Simple struct {
	client *http.Client
}

// NewSimple creates the single-shot HTTP download mechanism
func NewSimple(client *http.Client) *Simple {
	if client == nil {
		client = defaultClient(10 * time.Minute)
	}
	return &Simple{client: client}
}

// Name identifies the mechanism in logs
func (x *Simple) Name() string {
	return "http"
}

// Available reports whether the mechanism can be used
func (x *Simple) Available() bool {
	return x.client != nil
}

// Download retrieves url into the file at path with one GET
func (x *Simple) Download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create download request", goerr.V("url", url))
	}

	resp, err := x.client.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to request archive", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return goerr.New("unexpected status code",
			goerr.V("url", url),
			goerr.V("status", resp.StatusCode),
		)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return goerr.Wrap(err, "failed to open archive file", goerr.V("path", path))
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		return goerr.Wrap(err, "failed to write archive file",
			goerr.V("url", url),
			goerr.V("path", path),
		)
	}

	if err := file.Close(); err != nil {
		return goerr.Wrap(err, "failed to close archive file", goerr.V("path", path))
	}

	return nil
}

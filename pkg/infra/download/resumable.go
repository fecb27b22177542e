package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hoard/pkg/domain/types"
)

// Resumable downloads over HTTP with a fixed retry count, continuing an
// interrupted transfer from its last byte offset when the server honors
// Range requests.
type Resumable struct {
	client    *http.Client
	retries   int
	userAgent string
}

// Option is a functional option for download mechanism configuration
type Option func(*Resumable)

// WithHTTPClient sets the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(x *Resumable) {
		x.client = client
	}
}

// WithRetries sets the number of additional attempts after a failed one
func WithRetries(n int) Option {
	return func(x *Resumable) {
		x.retries = n
	}
}

// WithUserAgent sets the User-Agent header sent with each request
func WithUserAgent(ua string) Option {
	return func(x *Resumable) {
		x.userAgent = ua
	}
}

// NewResumable creates the resume-capable HTTP download mechanism
func NewResumable(opts ...Option) *Resumable {
	x := &Resumable{
		client:    defaultClient(10 * time.Minute),
		retries:   3,
		userAgent: "hoard/" + types.Version,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Name identifies the mechanism in logs
func (x *Resumable) Name() string {
	return "resumable-http"
}

// Available reports whether the mechanism can be used
func (x *Resumable) Available() bool {
	return x.client != nil
}

// Download retrieves url into the file at path. On retry, an existing
// partial file is continued via a Range request; the file is left in place
// on failure so a later run can pick it up.
func (x *Resumable) Download(ctx context.Context, url, path string) error {
	logger := ctxlog.From(ctx)

	var lastErr error
	for attempt := 0; attempt <= x.retries; attempt++ {
		// Only resume on retry: the first attempt always starts fresh
		err := x.attempt(ctx, url, path, attempt > 0)
		if err == nil {
			return nil
		}
		lastErr = err

		logger.Warn("download attempt failed",
			"url", url,
			"attempt", attempt+1,
			"error", err,
		)

		if ctx.Err() != nil {
			break
		}
	}

	return goerr.Wrap(lastErr, "download did not complete",
		goerr.V("url", url),
		goerr.V("retries", x.retries),
		goerr.T(types.TagDownloadFailed),
	)
}

func (x *Resumable) attempt(ctx context.Context, url, path string, resume bool) error {
	var offset int64
	if resume {
		if st, err := os.Stat(path); err == nil {
			offset = st.Size()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create download request", goerr.V("url", url))
	}
	req.Header.Set("User-Agent", x.userAgent)
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := x.client.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to request archive", goerr.V("url", url))
	}
	defer resp.Body.Close()

	flags := os.O_CREATE | os.O_WRONLY
	switch resp.StatusCode {
	case http.StatusPartialContent:
		flags |= os.O_APPEND
	case http.StatusOK:
		// Server ignored the Range header: restart from scratch
		flags |= os.O_TRUNC
	default:
		return goerr.New("unexpected status code",
			goerr.V("url", url),
			goerr.V("status", resp.StatusCode),
		)
	}

	file, err := os.OpenFile(path, flags, 0644)
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

// Package download provides HTTP download mechanisms for dataset archives.
// Two mechanisms exist: a resumable one that retries and continues partial
// transfers via Range requests, and a simple single-shot one. Select picks
// the first usable mechanism in preference order.
package download

import (
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hoard/pkg/domain/interfaces"
	"github.com/m-mizutani/hoard/pkg/domain/types"
)

// defaultClient applies an overall request timeout so a stalled transfer
// cannot hang a fetch forever
func defaultClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

// Select returns the first available download mechanism, in the order given.
// It fails with a download_unavailable error when none can be used; no
// network access happens during selection.
func Select(candidates ...interfaces.Downloader) (interfaces.Downloader, error) {
	for _, c := range candidates {
		if c.Available() {
			return c, nil
		}
	}
	return nil, goerr.New("no download mechanism available",
		goerr.V("candidates", len(candidates)),
		goerr.T(types.TagDownloadUnavailable),
	)
}

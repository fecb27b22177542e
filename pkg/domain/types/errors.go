package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify fetch failures by pipeline stage. Handlers and tests
// check them with goerr.HasTag.
var (
	// TagDownloadUnavailable means no download mechanism could be selected.
	// No network access has happened when this is returned.
	TagDownloadUnavailable = goerr.NewTag("download_unavailable")

	// TagDownloadFailed means the transfer did not complete after retries.
	TagDownloadFailed = goerr.NewTag("download_failed")

	// TagExtractionFailed means the archive was corrupt or the destination
	// directory was missing or unwritable.
	TagExtractionFailed = goerr.NewTag("extraction_failed")

	// TagCleanupFailed marks a failed temp file removal. Non-fatal: it is
	// logged and never changes the fetch outcome.
	TagCleanupFailed = goerr.NewTag("cleanup_failed")
)

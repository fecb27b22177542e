package interfaces

import (
	"context"

	"github.com/m-mizutani/hoard/pkg/domain/model"
)

// FetchUseCase defines the fetch pipeline for a single dataset
type FetchUseCase interface {
	// Fetch downloads the dataset archive, extracts it into destDir and
	// removes the temporary archive
	Fetch(ctx context.Context, ds model.Dataset, destDir string) (*model.FetchResult, error)
}

// Downloader defines a download mechanism. Implementations differ in
// capability (resume support); Select picks the preferred available one.
type Downloader interface {
	// Name identifies the mechanism in logs
	Name() string

	// Available reports whether the mechanism can be used in this process
	Available() bool

	// Download retrieves url into the file at path. Implementations with
	// resume support may continue an existing partial file at path.
	Download(ctx context.Context, url, path string) error
}

// Reporter receives progress events during a fetch, used for the
// human-readable CLI output
type Reporter interface {
	// Stage reports that the fetch for the named dataset entered a stage
	Stage(dataset string, stage model.Stage)
}

// Extractor unpacks a downloaded archive into a destination directory
type Extractor interface {
	// Extract unpacks the archive at archivePath into destDir, preserving
	// archive-internal paths. destDir must already exist.
	Extract(ctx context.Context, archivePath, destDir string) ([]string, int64, error)
}

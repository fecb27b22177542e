package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hoard/pkg/domain/interfaces"
	"github.com/m-mizutani/hoard/pkg/domain/model"
	"github.com/m-mizutani/hoard/pkg/domain/types"
)

type fetchUseCase struct {
	downloader interfaces.Downloader
	extractor  interfaces.Extractor
	reporter   interfaces.Reporter
	workDir    string
}

// FetchOption is a functional option for the fetch use case
type FetchOption func(*fetchUseCase)

// WithWorkDir sets the directory holding the temporary archive file.
// Defaults to the current working directory.
func WithWorkDir(dir string) FetchOption {
	return func(uc *fetchUseCase) {
		uc.workDir = dir
	}
}

// WithReporter sets the progress reporter
func WithReporter(r interfaces.Reporter) FetchOption {
	return func(uc *fetchUseCase) {
		uc.reporter = r
	}
}

// noopReporter discards progress events
type noopReporter struct{}

func (noopReporter) Stage(string, model.Stage) {}

// NewFetch creates a new instance of FetchUseCase
func NewFetch(downloader interfaces.Downloader, extractor interfaces.Extractor, opts ...FetchOption) interfaces.FetchUseCase {
	uc := &fetchUseCase{
		downloader: downloader,
		extractor:  extractor,
		reporter:   noopReporter{},
		workDir:    ".",
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Fetch downloads the dataset archive, extracts it into destDir and removes
// the temporary archive. The steps are strictly sequential; the temp archive
// is removed after extraction regardless of the extraction outcome, but kept
// when the download itself fails so a later run can resume it.
func (uc *fetchUseCase) Fetch(ctx context.Context, ds model.Dataset, destDir string) (*model.FetchResult, error) {
	logger := ctxlog.From(ctx)

	archiveName := fmt.Sprintf(".%s-%s.tar.gz", ds.Name, uuid.NewString())
	transfer := model.NewTransfer(ds, filepath.Join(uc.workDir, archiveName), destDir)

	uc.reporter.Stage(ds.Name, model.StageDownload)
	logger.Info("downloading dataset archive",
		"dataset", ds.Name,
		"url", ds.URL,
		"archive", transfer.ArchivePath,
		"mechanism", uc.downloader.Name(),
	)

	if err := uc.downloader.Download(ctx, ds.URL, transfer.ArchivePath); err != nil {
		// Keep the partial archive: the resumable mechanism can continue it
		return nil, goerr.Wrap(err, "failed to download dataset",
			goerr.V("dataset", ds.Name),
			goerr.V("url", ds.URL),
			goerr.T(types.TagDownloadFailed),
		)
	}
	if err := transfer.Advance(model.StatusDownloaded); err != nil {
		return nil, err
	}

	uc.reporter.Stage(ds.Name, model.StageExtract)
	logger.Info("extracting dataset archive",
		"dataset", ds.Name,
		"archive", transfer.ArchivePath,
		"dest_dir", destDir,
	)

	files, size, err := uc.extractor.Extract(ctx, transfer.ArchivePath, destDir)
	if err != nil {
		// Cleanup is still attempted, but must not mask the extraction error
		uc.cleanup(ctx, transfer)
		return nil, goerr.Wrap(err, "failed to extract dataset archive",
			goerr.V("dataset", ds.Name),
			goerr.V("archive", transfer.ArchivePath),
			goerr.T(types.TagExtractionFailed),
		)
	}
	if err := transfer.Advance(model.StatusExtracted); err != nil {
		return nil, err
	}

	uc.cleanup(ctx, transfer)

	uc.reporter.Stage(ds.Name, model.StageDone)
	logger.Info("dataset fetched",
		"dataset", ds.Name,
		"dest_dir", destDir,
		"file_count", len(files),
		"total_size_bytes", size,
		"status", transfer.Status,
	)

	return &model.FetchResult{
		Dataset: ds.Name,
		DestDir: destDir,
		Files:   files,
		Size:    size,
	}, nil
}

// cleanup removes the temporary archive. Best-effort: a failure is logged
// and never changes the fetch outcome.
func (uc *fetchUseCase) cleanup(ctx context.Context, transfer *model.Transfer) {
	logger := ctxlog.From(ctx)

	uc.reporter.Stage(transfer.Dataset.Name, model.StageCleanup)
	if err := os.Remove(transfer.ArchivePath); err != nil {
		wrapped := goerr.Wrap(err, "failed to remove temporary archive",
			goerr.V("archive", transfer.ArchivePath),
			goerr.T(types.TagCleanupFailed),
		)
		logger.Warn("cleanup failed", "error", wrapped)
		return
	}

	if transfer.Status == model.StatusExtracted {
		if err := transfer.Advance(model.StatusCleaned); err != nil {
			logger.Warn("transfer state error", "error", err)
		}
	}
}

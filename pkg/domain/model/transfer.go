package model

import "github.com/m-mizutani/goerr/v2"

// TransferStatus is the lifecycle state of a single archive transfer
type TransferStatus string

const (
	StatusPending    TransferStatus = "pending"
	StatusDownloaded TransferStatus = "downloaded"
	StatusExtracted  TransferStatus = "extracted"
	StatusCleaned    TransferStatus = "cleaned"
)

// next holds the only legal transition from each state. The lifecycle is
// strictly linear: pending -> downloaded -> extracted -> cleaned.
var next = map[TransferStatus]TransferStatus{
	StatusPending:    StatusDownloaded,
	StatusDownloaded: StatusExtracted,
	StatusExtracted:  StatusCleaned,
}

// Transfer tracks one archive from download through extraction to cleanup.
// It exists only for the duration of a fetch; nothing is persisted beyond the
// extracted files.
type Transfer struct {
	Dataset     Dataset
	ArchivePath string // Temporary archive file in the working directory
	DestDir     string // Pre-existing destination directory
	Status      TransferStatus
}

// NewTransfer creates a pending transfer for the given dataset
func NewTransfer(ds Dataset, archivePath, destDir string) *Transfer {
	return &Transfer{
		Dataset:     ds,
		ArchivePath: archivePath,
		DestDir:     destDir,
		Status:      StatusPending,
	}
}

// Advance moves the transfer to the given status, enforcing the linear
// lifecycle order
func (t *Transfer) Advance(to TransferStatus) error {
	if next[t.Status] != to {
		return goerr.New("invalid transfer transition",
			goerr.V("from", t.Status),
			goerr.V("to", to),
		)
	}
	t.Status = to
	return nil
}

// FetchResult represents the outcome of a completed fetch
type FetchResult struct {
	Dataset string   // Dataset name
	DestDir string   // Directory populated with the archive contents
	Files   []string // Extracted entry names, archive-internal paths
	Size    int64    // Total uncompressed size in bytes
}

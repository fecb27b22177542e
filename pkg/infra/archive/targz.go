// Package archive unpacks gzip-compressed tar archives into a destination
// directory, preserving archive-internal paths and file modes.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// TarGz extracts .tar.gz archives
type TarGz struct{}

// NewTarGz creates a tar.gz extractor
func NewTarGz() *TarGz {
	return &TarGz{}
}

// Extract unpacks the archive at archivePath into destDir. destDir must
// already exist; nothing outside it is ever written. Returns the extracted
// entry names and the total uncompressed size.
func (x *TarGz) Extract(ctx context.Context, archivePath, destDir string) ([]string, int64, error) {
	logger := ctxlog.From(ctx)

	if st, err := os.Stat(destDir); err != nil {
		return nil, 0, goerr.Wrap(err, "destination directory is not accessible",
			goerr.V("dest_dir", destDir),
		)
	} else if !st.IsDir() {
		return nil, 0, goerr.New("destination is not a directory",
			goerr.V("dest_dir", destDir),
		)
	}

	file, err := os.Open(archivePath)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to open archive", goerr.V("path", archivePath))
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to read gzip stream", goerr.V("path", archivePath))
	}
	defer gzReader.Close()

	tarReader := tar.NewReader(gzReader)

	var entries []string
	var totalSize int64

	for {
		hdr, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, goerr.Wrap(err, "failed to read tar entry", goerr.V("path", archivePath))
		}

		if err := x.extractEntry(tarReader, hdr, destDir); err != nil {
			return nil, 0, goerr.Wrap(err, "failed to extract entry",
				goerr.V("entry", hdr.Name),
			)
		}

		switch hdr.Typeflag {
		case tar.TypeReg, tar.TypeDir:
			entries = append(entries, hdr.Name)
			totalSize += hdr.Size
		default:
			logger.Warn("skipped unsupported tar entry",
				"entry", hdr.Name,
				"type", hdr.Typeflag,
			)
		}
	}

	return entries, totalSize, nil
}

// extractEntry writes a single tar entry below destDir
func (x *TarGz) extractEntry(r io.Reader, hdr *tar.Header, destDir string) error {
	// Security check: prevent path traversal attacks
	destPath := filepath.Join(destDir, hdr.Name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return goerr.New("invalid entry path detected",
			goerr.V("entry", hdr.Name),
			goerr.V("dest", destPath),
		)
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(destPath, hdr.FileInfo().Mode())

	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return goerr.Wrap(err, "failed to create parent directories",
				goerr.V("dir", filepath.Dir(destPath)),
			)
		}

		destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, hdr.FileInfo().Mode())
		if err != nil {
			return goerr.Wrap(err, "failed to create destination file", goerr.V("path", destPath))
		}
		defer destFile.Close()

		if _, err := io.Copy(destFile, r); err != nil {
			return goerr.Wrap(err, "failed to copy entry content", goerr.V("path", destPath))
		}
		return nil

	default:
		// Unsupported entry types (symlinks, devices) are skipped by the caller
		return nil
	}
}

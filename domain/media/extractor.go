package media

import (
	"context"
	"io"
)

// Metadata is what a probe learns about a URL without downloading it.
// Empty Title and zero DurationSeconds mean the engine did not report them.
type Metadata struct {
	Title           string
	DurationSeconds int
}

// Extractor defines the extraction engine the batch hands every URL to
// This is a port that can be implemented by different infrastructure adapters
type Extractor interface {
	// Probe inspects the URL without retrieving the media. A nil Metadata
	// with a nil error means nothing was reported.
	Probe(ctx context.Context, url string) (*Metadata, error)

	// Fetch retrieves the media and writes it under req.OutputDir()
	Fetch(ctx context.Context, url string, req *DownloadRequest) error
}

// DirectoryEnsurer creates the output directory before the first download
type DirectoryEnsurer interface {
	// EnsureDir creates path and any missing parents
	EnsureDir(path string) error
}

// URLFileOpener opens a URL list file for reading
type URLFileOpener interface {
	// Open returns ErrFileNotFound when the file is missing and ErrIO otherwise
	Open(path string) (io.ReadCloser, error)
}

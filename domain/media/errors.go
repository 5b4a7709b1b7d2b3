package media

import "errors"

var (
	// ErrInvalidQuality is returned when a quality string is neither a preset
	// nor a height that parses to a positive integer
	ErrInvalidQuality = errors.New("invalid quality")

	// ErrFileNotFound is returned when the URL list file does not exist
	ErrFileNotFound = errors.New("file not found")

	// ErrIO is returned for filesystem failures other than a missing file
	ErrIO = errors.New("i/o error")

	// ErrExtraction is returned when the extraction engine fails to probe or fetch a URL
	ErrExtraction = errors.New("extraction failed")

	// ErrNoOutputDirectory is returned when a request is built without an output directory
	ErrNoOutputDirectory = errors.New("output directory is required")
)

// ExtractionError reports an engine failure for one URL. Its message is the
// engine's message unchanged; errors.Is matches it against ErrExtraction.
type ExtractionError struct {
	URL string
	Op  string // "probe" or "fetch"
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return ErrExtraction.Error()
	}
	return e.Err.Error()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrExtraction
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}

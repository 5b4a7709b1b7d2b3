package batch

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"ytbatch/domain/media"
	"ytbatch/infrastructure/logger"
)

const progressRuleWidth = 50

// Input lists the URL sources of a run
type Input struct {
	URLFile string   // Optional list file, read before URLs
	URLs    []string // URLs given on the command line
}

// HasSources reports whether any URL source was supplied
func (in Input) HasSources() bool {
	return in.URLFile != "" || len(in.URLs) > 0
}

// Service runs a batch of downloads one URL at a time
type Service struct {
	extractor media.Extractor
	dirs      media.DirectoryEnsurer
	files     media.URLFileOpener
	log       logger.Logger
}

// NewService creates a new batch Service
func NewService(extractor media.Extractor, dirs media.DirectoryEnsurer, files media.URLFileOpener, log logger.Logger) *Service {
	if log == nil {
		log = logger.Discard
	}
	return &Service{
		extractor: extractor,
		dirs:      dirs,
		files:     files,
		log:       log,
	}
}

// Initialize creates the output directory. It must succeed before any
// URL is dispatched.
func (s *Service) Initialize(req *media.DownloadRequest) error {
	if err := s.dirs.EnsureDir(req.OutputDir()); err != nil {
		return err
	}
	s.log.Emit(logger.DEBUG, "Output directory ready: %s\n", req.OutputDir())
	return nil
}

// Run initializes the output directory, resolves the URL sources and
// downloads every URL. Only Initialize failures are returned as errors.
func (s *Service) Run(ctx context.Context, req *media.DownloadRequest, in Input) ([]media.DownloadResult, error) {
	if err := s.Initialize(req); err != nil {
		return nil, err
	}

	urls := s.CollectURLs(in)
	return s.DownloadAll(ctx, req, urls), nil
}

// CollectURLs returns the file URLs followed by the command line URLs.
// An unreadable file contributes nothing and does not stop the run.
func (s *Service) CollectURLs(in Input) []string {
	var urls []string

	if in.URLFile != "" {
		fileURLs, err := s.ReadURLFile(in.URLFile)
		if err == nil {
			urls = append(urls, fileURLs...)
		}
	}

	for _, u := range in.URLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}

	return urls
}

// ReadURLFile loads the URLs of a list file, logging any failure
func (s *Service) ReadURLFile(path string) ([]string, error) {
	f, err := s.files.Open(path)
	if err != nil {
		s.logFileError(path, err)
		return nil, err
	}
	defer f.Close()

	urls, err := media.ParseURLList(f)
	if err != nil {
		s.logFileError(path, err)
		return nil, err
	}

	s.log.Emit(logger.DEBUG, "Read %d URLs from %s\n", len(urls), path)
	return urls, nil
}

func (s *Service) logFileError(path string, err error) {
	if errors.Is(err, media.ErrFileNotFound) {
		s.log.Emit(logger.ERROR, "Error: File '%s' not found.\n", path)
		return
	}
	s.log.Emit(logger.ERROR, "Error reading file '%s': %v\n", path, err)
}

// DownloadAll processes urls strictly in order and returns one result per URL
func (s *Service) DownloadAll(ctx context.Context, req *media.DownloadRequest, urls []string) []media.DownloadResult {
	results := make([]media.DownloadResult, 0, len(urls))
	if len(urls) == 0 {
		return results
	}

	dir := req.OutputDir()
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	s.log.Emit(logger.NEW, "Starting download of %d videos...\n", len(urls))
	s.log.Emit(logger.INFO, "Download directory: %s\n", dir)
	s.log.Emit(logger.INFO, "%s\n", strings.Repeat("-", progressRuleWidth))

	for i, url := range urls {
		s.log.Emit(logger.INFO, "\n[%d/%d] Processing: %s\n", i+1, len(urls), url)
		results = append(results, s.Download(ctx, req, url))
	}

	return results
}

// Download probes and fetches a single URL. Engine failures are captured in
// the returned result.
func (s *Service) Download(ctx context.Context, req *media.DownloadRequest, url string) media.DownloadResult {
	meta, err := s.extractor.Probe(ctx, url)
	if err != nil {
		return s.fail(url, "probe", err)
	}

	title, duration := media.UnknownTitle, 0
	if meta != nil {
		if meta.Title != "" {
			title = meta.Title
		}
		duration = meta.DurationSeconds
	}

	s.log.Emit(logger.INFO, "Downloading: %s\n", title)
	if duration > 0 {
		s.log.Emit(logger.INFO, "Duration: %s\n", media.FormatClock(duration))
	}

	if err := s.extractor.Fetch(ctx, url, req); err != nil {
		return s.fail(url, "fetch", err)
	}

	s.log.Emit(logger.SUCCESS, "Finished: %s\n", title)
	return media.Succeeded(url, title, duration)
}

func (s *Service) fail(url, op string, err error) media.DownloadResult {
	var extErr *media.ExtractionError
	if !errors.As(err, &extErr) {
		err = &media.ExtractionError{URL: url, Op: op, Err: err}
	}

	s.log.Emit(logger.ERROR, "Error downloading %s: %v\n", url, err)
	return media.Failed(url, err)
}

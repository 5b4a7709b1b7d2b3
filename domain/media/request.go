package media

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Quality presets understood without height parsing
const (
	QualityBest  = "best"
	QualityWorst = "worst"
)

// DefaultOutputDirectory is used when no output directory is configured
const DefaultOutputDirectory = "./downloads"

// OutputTemplate is the yt-dlp filename template used inside the output directory
const OutputTemplate = "%(title)s.%(ext)s"

// Format selectors handed to the extraction engine
const (
	SelectorAudio = "bestaudio/best"
	SelectorBest  = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	SelectorWorst = "worst[ext=mp4]/worst"

	selectorHeight = "best[height<=%d][ext=mp4]/best[height<=%d]"
)

// AudioFormat is the container audio-only downloads are converted to
const AudioFormat = "mp3"

// DownloadRequest is the configuration shared by every URL in a run.
// It is built once by NewDownloadRequest and never modified.
type DownloadRequest struct {
	outputDir      string
	audioOnly      bool
	quality        string
	customFormat   string
	formatSelector string
}

// NewDownloadRequest validates the inputs and resolves the format selector
func NewDownloadRequest(outputDir string, audioOnly bool, quality, customFormat string) (*DownloadRequest, error) {
	outputDir = strings.TrimSpace(outputDir)
	if outputDir == "" {
		return nil, ErrNoOutputDirectory
	}

	quality = strings.ToLower(strings.TrimSpace(quality))
	if quality == "" {
		quality = QualityBest
	}
	customFormat = strings.TrimSpace(customFormat)

	selector, err := ResolveFormatSelector(audioOnly, quality, customFormat)
	if err != nil {
		return nil, err
	}

	return &DownloadRequest{
		outputDir:      outputDir,
		audioOnly:      audioOnly,
		quality:        quality,
		customFormat:   customFormat,
		formatSelector: selector,
	}, nil
}

// ResolveFormatSelector picks the selector for the given options.
// A custom format wins outright. Otherwise the quality is validated first,
// then audio-only takes precedence over the quality preset.
func ResolveFormatSelector(audioOnly bool, quality, customFormat string) (string, error) {
	if customFormat != "" {
		return customFormat, nil
	}

	switch quality {
	case QualityBest, QualityWorst:
	default:
		if _, err := ParseHeight(quality); err != nil {
			return "", err
		}
	}

	if audioOnly {
		return SelectorAudio, nil
	}

	switch quality {
	case QualityBest:
		return SelectorBest, nil
	case QualityWorst:
		return SelectorWorst, nil
	}

	height, _ := ParseHeight(quality)
	return fmt.Sprintf(selectorHeight, height, height), nil
}

// ParseHeight converts a quality such as "720p" or "720" into a pixel height
func ParseHeight(quality string) (int, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(quality), "pP")
	if trimmed == "" {
		return 0, fmt.Errorf("%w %q: expected best, worst or <height>p", ErrInvalidQuality, quality)
	}

	height, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w %q: expected best, worst or <height>p", ErrInvalidQuality, quality)
	}
	if height <= 0 {
		return 0, fmt.Errorf("%w %q: height must be positive", ErrInvalidQuality, quality)
	}

	return height, nil
}

// OutputDir returns the directory downloads are written to
func (r *DownloadRequest) OutputDir() string {
	return r.outputDir
}

// AudioOnly reports whether only the audio stream is kept
func (r *DownloadRequest) AudioOnly() bool {
	return r.audioOnly
}

// Quality returns the normalized quality string
func (r *DownloadRequest) Quality() string {
	return r.quality
}

// CustomFormat returns the user supplied selector, if any
func (r *DownloadRequest) CustomFormat() string {
	return r.customFormat
}

// FormatSelector returns the resolved selector passed to the engine
func (r *DownloadRequest) FormatSelector() string {
	return r.formatSelector
}

// OutputPath returns the output template joined with the output directory
func (r *DownloadRequest) OutputPath() string {
	return filepath.Join(r.outputDir, OutputTemplate)
}

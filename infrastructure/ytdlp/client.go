package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	goytdlp "github.com/lrstanley/go-ytdlp"

	"ytbatch/domain/media"
)

const errorLinePrefix = "ERROR:"

// Client implements media.Extractor by running yt-dlp through go-ytdlp
type Client struct {
	executable string
}

// Option is a functional option for configuring Client
type Option func(*Client)

// WithExecutable sets a custom yt-dlp executable path
func WithExecutable(path string) Option {
	return func(c *Client) {
		c.executable = path
	}
}

// NewClient creates a new yt-dlp backed extractor
func NewClient(opts ...Option) *Client {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) command() *goytdlp.Command {
	cmd := goytdlp.New()
	if c.executable != "" {
		cmd = cmd.SetExecutable(c.executable)
	}
	return cmd
}

// Probe implements media.Extractor. Only the metadata is requested; nothing
// is written to disk.
func (c *Client) Probe(ctx context.Context, url string) (*media.Metadata, error) {
	res, err := c.command().
		SkipDownload().
		PrintJSON().
		NoPlaylist().
		Run(ctx, url)
	if err != nil {
		return nil, &media.ExtractionError{URL: url, Op: "probe", Err: engineError(res, err)}
	}

	infos, err := res.GetExtractedInfo()
	if err != nil {
		// yt-dlp succeeded but printed nothing usable; treat as no metadata
		return nil, nil
	}

	return metadataFromInfo(infos), nil
}

// Fetch implements media.Extractor
func (c *Client) Fetch(ctx context.Context, url string, req *media.DownloadRequest) error {
	cmd := c.command().
		Format(req.FormatSelector()).
		Output(req.OutputPath()).
		NoPlaylist()

	if req.AudioOnly() {
		cmd = cmd.ExtractAudio().AudioFormat(media.AudioFormat)
	}

	res, err := cmd.Run(ctx, url)
	if err != nil {
		return &media.ExtractionError{URL: url, Op: "fetch", Err: engineError(res, err)}
	}

	return nil
}

// EnsureInstalled resolves the yt-dlp binary, downloading it into the
// go-ytdlp cache when it is not already available. A custom executable is
// never replaced.
func (c *Client) EnsureInstalled(ctx context.Context) error {
	if c.executable != "" {
		return nil
	}
	if _, err := goytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("yt-dlp install failed: %w", err)
	}
	return nil
}

// metadataFromInfo reads title and duration from the first extracted entry
func metadataFromInfo(infos []*goytdlp.ExtractedInfo) *media.Metadata {
	if len(infos) == 0 || infos[0] == nil {
		return nil
	}

	info := infos[0]
	meta := &media.Metadata{}
	if info.Title != nil {
		meta.Title = *info.Title
	}
	if info.Duration != nil && *info.Duration > 0 {
		meta.DurationSeconds = int(math.Round(*info.Duration))
	}

	return meta
}

// engineError prefers yt-dlp's own last "ERROR:" line over the exit status
func engineError(res *goytdlp.Result, err error) error {
	if res == nil {
		return err
	}
	if msg := lastErrorLine(res.Stderr); msg != "" {
		return errors.New(msg)
	}
	return err
}

func lastErrorLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, errorLinePrefix) {
			return line
		}
	}
	return ""
}

// Ensure Client implements media.Extractor
var _ media.Extractor = (*Client)(nil)

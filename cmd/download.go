package cmd

import (
	"context"
	"fmt"
	"time"

	"ytbatch/application/batch"
	"ytbatch/domain/media"
	"ytbatch/infrastructure/config"
	"ytbatch/infrastructure/filesystem"
	"ytbatch/infrastructure/logger"
	"ytbatch/infrastructure/report"
	"ytbatch/infrastructure/ytdlp"

	"github.com/spf13/cobra"
)

var (
	dlURLFile    string
	dlOutputDir  string
	dlAudioOnly  bool
	dlQuality    string
	dlFormat     string
	dlReportPath string
	dlInstall    bool
)

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

// DownloadOptions are the resolved settings of one run
type DownloadOptions struct {
	OutputDirectory string
	AudioOnly       bool
	Quality         string
	Format          string
	ReportPath      string // Optional YAML run report
}

func initDownloadFlags(c *cobra.Command) {
	c.Flags().StringVarP(&dlURLFile, "file", "f", "", "Text file containing URLs (one per line)")
	c.Flags().StringVarP(&dlOutputDir, "output", "o", media.DefaultOutputDirectory, "Output directory")
	c.Flags().BoolVarP(&dlAudioOnly, "audio-only", "a", false, "Download audio only (MP3)")
	c.Flags().StringVarP(&dlQuality, "quality", "q", media.QualityBest, "Video quality (best, worst, 720p, 1080p, etc.)")
	c.Flags().StringVar(&dlFormat, "format", "", "Custom format selector for yt-dlp (overrides --quality)")
	c.Flags().StringVar(&dlReportPath, "report", "", "Write a YAML run report to this path")
	c.Flags().BoolVar(&dlInstall, "install", false, "Download yt-dlp first if it is not available")
}

func runDownload(cmd *cobra.Command, args []string) error {
	input := batch.Input{URLFile: dlURLFile, URLs: args}
	out := cmd.OutOrStdout()

	// Usage guidance needs neither config nor a download directory
	if !input.HasSources() {
		printUsageHint(out)
		return nil
	}

	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	opts, err := resolveDownloadOptions(cmd, cfg)
	if err != nil {
		return err
	}

	extractor, err := newExtractor(cmd.Context(), cfg, dlInstall)
	if err != nil {
		return err
	}
	checker := filesystem.NewChecker()

	return RunDownloadWithDependencies(
		cmd.Context(),
		extractor,
		checker,
		checker,
		opts,
		input,
		newLogger(out),
		out,
	)
}

// resolveDownloadOptions layers explicitly set flags over the loaded config
func resolveDownloadOptions(cmd *cobra.Command, cfg *config.Config) (DownloadOptions, error) {
	merged := *cfg
	flags := cmd.Flags()

	if flags.Changed("output") {
		merged.Download.OutputDirectory = dlOutputDir
	}
	if flags.Changed("audio-only") {
		merged.Download.AudioOnly = dlAudioOnly
	}
	if flags.Changed("quality") {
		merged.Download.Quality = dlQuality
	}
	if flags.Changed("format") {
		merged.Download.Format = dlFormat
	}

	if err := merged.Validate(); err != nil {
		return DownloadOptions{}, err
	}

	return DownloadOptions{
		OutputDirectory: merged.Download.OutputDirectory,
		AudioOnly:       merged.Download.AudioOnly,
		Quality:         merged.Download.Quality,
		Format:          merged.Download.Format,
		ReportPath:      dlReportPath,
	}, nil
}

// newExtractor builds the yt-dlp client, resolving the binary first when asked
func newExtractor(ctx context.Context, cfg *config.Config, install bool) (*ytdlp.Client, error) {
	client := ytdlp.NewClient(ytdlp.WithExecutable(cfg.YTDLP.Executable))

	if install || cfg.YTDLP.Install {
		if err := client.EnsureInstalled(ctx); err != nil {
			return nil, err
		}
	}

	return client, nil
}

func printUsageHint(out OutputWriter) {
	fmt.Fprintln(out, "No URLs provided. Use --help for usage information.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Example usage:")
	fmt.Fprintln(out, "  ytbatch 'https://youtube.com/watch?v=...' 'https://youtube.com/watch?v=...'")
	fmt.Fprintln(out, "  ytbatch -f urls.txt")
	fmt.Fprintln(out, "  ytbatch -a -q 720p 'https://youtube.com/watch?v=...'")
}

// RunDownloadWithDependencies runs a batch with injected dependencies (for testing)
func RunDownloadWithDependencies(
	ctx context.Context,
	extractor media.Extractor,
	dirs media.DirectoryEnsurer,
	files media.URLFileOpener,
	opts DownloadOptions,
	input batch.Input,
	log logger.Logger,
	output OutputWriter,
) error {
	if !input.HasSources() {
		printUsageHint(output)
		return nil
	}

	req, err := media.NewDownloadRequest(opts.OutputDirectory, opts.AudioOnly, opts.Quality, opts.Format)
	if err != nil {
		return err
	}

	service := batch.NewService(extractor, dirs, files, log)

	startedAt := time.Now()
	results, err := service.Run(ctx, req, input)
	if err != nil {
		return err
	}
	finishedAt := time.Now()

	fmt.Fprint(output, media.Summarize(results).Render())

	if opts.ReportPath != "" {
		if err := report.Write(report.New(req, results, startedAt, finishedAt), opts.ReportPath); err != nil {
			return err
		}
		log.Emit(logger.SUCCESS, "Report written to %s\n", opts.ReportPath)
	}

	return nil
}

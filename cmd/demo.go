package cmd

import (
	"ytbatch/application/batch"
	"ytbatch/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

// DemoURLs is the sample batch downloaded by the demo command
var DemoURLs = []string{
	"https://youtu.be/9uxvKLSKpPA",
	"https://youtu.be/NCPIBPGJTFk",
	"https://youtu.be/gsUPN9h9Kd4",
	"https://youtu.be/Z8XSbud_OEo",
	"https://youtu.be/9oE0ByeTF58",
	"https://youtu.be/uoor0Gvhn-s",
	"https://youtu.be/dT9xRd86h18",
	"https://youtu.be/rVo3Z9MddAA",
	"https://youtu.be/O6z2jAs6wLc",
	"https://youtu.be/B0EIkD3yIbI",
	"https://youtu.be/MqSAneZZG3c",
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Download a built-in sample batch",
	Long: `Runs a normal batch over a fixed list of sample URLs using the
configured output directory and quality. Useful to check that yt-dlp
works end to end.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	extractor, err := newExtractor(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	checker := filesystem.NewChecker()
	out := cmd.OutOrStdout()

	return RunDownloadWithDependencies(
		cmd.Context(),
		extractor,
		checker,
		checker,
		DownloadOptions{
			OutputDirectory: cfg.Download.OutputDirectory,
			AudioOnly:       cfg.Download.AudioOnly,
			Quality:         cfg.Download.Quality,
			Format:          cfg.Download.Format,
		},
		batch.Input{URLs: DemoURLs},
		newLogger(out),
		out,
	)
}

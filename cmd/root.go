package cmd

import (
	"fmt"
	"os"

	"ytbatch/infrastructure/config"
	"ytbatch/infrastructure/logger"

	"github.com/spf13/cobra"
)

// Version is set during build via -ldflags "-X ytbatch/cmd.version=X.Y.Z"
var version = "dev"

var (
	cfgFile string
	cfg     *config.Config
	cfgErr  error

	noColor bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ytbatch [urls...]",
	Short: "Download multiple videos in one run",
	Long: `ytbatch hands a list of video URLs to yt-dlp one at a time and prints
a summary of what was downloaded and what failed.

URLs come from the command line, from a text file with one URL per line
(blank lines and lines starting with # are ignored), or both. File URLs
are processed first.

Example:
  ytbatch 'https://youtube.com/watch?v=...' 'https://youtube.com/watch?v=...'
  ytbatch -f urls.txt
  ytbatch -a -q 720p 'https://youtube.com/watch?v=...'`,
	Args:          cobra.ArbitraryArgs,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDownload,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print debug output")
	initDownloadFlags(rootCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath
	}

	cfg, cfgErr = config.LoadOrDefault(path, cfgFile != "")
	if cfgErr != nil {
		cfg = nil
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// requireConfig returns the loaded configuration or the reason it is missing
func requireConfig() (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	if cfgErr != nil {
		return nil, cfgErr
	}
	return nil, fmt.Errorf("configuration not loaded")
}

// configPath returns the file setup and config commands operate on
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath
}

func newLogger(out OutputWriter) logger.Logger {
	opts := []logger.Option{}
	if noColor {
		opts = append(opts, logger.WithColor(false))
	}
	if verbose {
		opts = append(opts, logger.WithMinLevel(logger.DEBUG))
	}
	return logger.New(out, opts...)
}

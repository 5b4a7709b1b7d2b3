package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ytbatch/domain/media"
	"ytbatch/infrastructure/config"
	"ytbatch/infrastructure/filesystem"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// QualityChoices are offered by the setup prompt
var QualityChoices = []string{"best", "2160p", "1080p", "720p", "480p", "360p", "worst"}

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, options []string, defaultValue string) (string, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func (p *SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for the download directory, quality and yt-dlp settings and
writes them to the config file (./` + config.DefaultPath + ` unless --config is given).`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, filesystem.NewChecker(), configPath(), cmd.OutOrStdout())
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, checker *filesystem.Checker, configPath string, out OutputWriter) error {
	if checker.Exists(configPath) {
		overwrite, err := prompter.Confirm(fmt.Sprintf("%s already exists. Overwrite?", configPath), false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(out, "Welcome to ytbatch setup!")
	fmt.Fprintln(out)

	cfg := &config.Config{}

	if err := promptDownload(prompter, cfg); err != nil {
		return err
	}

	if err := promptYTDLP(prompter, cfg); err != nil {
		return err
	}

	// Reject combinations a run would refuse
	if _, err := media.NewDownloadRequest(cfg.Download.OutputDirectory, cfg.Download.AudioOnly, cfg.Download.Quality, cfg.Download.Format); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, filesystem.DefaultDirPermissions); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Configuration saved to %s\n", configPath)
	return nil
}

func promptDownload(prompter Prompter, cfg *config.Config) error {
	dir, err := prompter.Input("Where should downloads be saved?", media.DefaultOutputDirectory)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return fmt.Errorf("output directory is required")
	}
	cfg.Download.OutputDirectory = dir

	quality, err := prompter.Select("Preferred video quality?", QualityChoices, media.QualityBest)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Download.Quality = quality

	audioOnly, err := prompter.Confirm("Download audio only (MP3)?", false)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Download.AudioOnly = audioOnly

	format, err := prompter.Input("Custom yt-dlp format selector (leave empty to derive from quality):", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Download.Format = strings.TrimSpace(format)

	return nil
}

func promptYTDLP(prompter Prompter, cfg *config.Config) error {
	executable, err := prompter.Input("Path to yt-dlp (leave empty to search PATH):", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.YTDLP.Executable = strings.TrimSpace(executable)

	if cfg.YTDLP.Executable == "" {
		install, err := prompter.Confirm("Download yt-dlp automatically when it is missing?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		cfg.YTDLP.Install = install
	}

	return nil
}

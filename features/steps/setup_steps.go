//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ytbatch/cmd"
	"ytbatch/infrastructure/config"
	"ytbatch/infrastructure/filesystem"

	"github.com/cucumber/godog"
)

// MockPrompter implements cmd.Prompter for testing
type MockPrompter struct {
	inputResponses   []string
	confirmResponses []bool
	selectResponses  []string
	inputIndex       int
	confirmIndex     int
	selectIndex      int
}

func (m *MockPrompter) Input(message string, defaultValue string) (string, error) {
	if m.inputIndex >= len(m.inputResponses) {
		return defaultValue, nil
	}
	response := m.inputResponses[m.inputIndex]
	m.inputIndex++
	return response, nil
}

func (m *MockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if m.confirmIndex >= len(m.confirmResponses) {
		return defaultValue, nil
	}
	response := m.confirmResponses[m.confirmIndex]
	m.confirmIndex++
	return response, nil
}

func (m *MockPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	if m.selectIndex >= len(m.selectResponses) {
		return defaultValue, nil
	}
	response := m.selectResponses[m.selectIndex]
	m.selectIndex++
	return response, nil
}

type setupContext struct {
	tempDir         string
	configPath      string
	originalContent string
	prompter        *MockPrompter
	output          *bytes.Buffer
	err             error
}

var SharedSetupContext *setupContext

func InitializeSetupScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "ytbatch-setup-*")
		if err != nil {
			return c, err
		}
		SharedSetupContext = &setupContext{
			tempDir:    tempDir,
			configPath: filepath.Join(tempDir, "config", config.DefaultPath),
			prompter:   &MockPrompter{},
			output:     &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedSetupContext != nil && SharedSetupContext.tempDir != "" {
			os.RemoveAll(SharedSetupContext.tempDir)
		}
		SharedSetupContext = nil
		return c, nil
	})

	ctx.Step(`^no config file exists$`, noConfigFileExists)
	ctx.Step(`^a config file already exists$`, aConfigFileAlreadyExists)
	ctx.Step(`^I answer the download directory with "([^"]*)"$`, iAnswerTheDownloadDirectoryWith)
	ctx.Step(`^I choose the quality "([^"]*)"$`, iChooseTheQuality)
	ctx.Step(`^I decline to overwrite$`, iDeclineToOverwrite)
	ctx.Step(`^I run setup$`, iRunSetup)
	ctx.Step(`^the config file should have output directory "([^"]*)"$`, theConfigFileShouldHaveOutputDirectory)
	ctx.Step(`^the config file should have quality "([^"]*)"$`, theConfigFileShouldHaveQuality)
	ctx.Step(`^the config file should be unchanged$`, theConfigFileShouldBeUnchanged)
	ctx.Step(`^setup should report "([^"]*)"$`, setupShouldReport)
}

func noConfigFileExists() error {
	return nil
}

func aConfigFileAlreadyExists() error {
	s := SharedSetupContext
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0755); err != nil {
		return err
	}
	s.originalContent = "download:\n  output_directory: ./original\n  quality: best\n"
	return os.WriteFile(s.configPath, []byte(s.originalContent), 0644)
}

func iAnswerTheDownloadDirectoryWith(dir string) error {
	p := SharedSetupContext.prompter
	// directory, custom format, executable
	p.inputResponses = []string{dir, "", ""}
	return nil
}

func iChooseTheQuality(quality string) error {
	SharedSetupContext.prompter.selectResponses = []string{quality}
	return nil
}

func iDeclineToOverwrite() error {
	SharedSetupContext.prompter.confirmResponses = []bool{false}
	return nil
}

func iRunSetup() error {
	s := SharedSetupContext
	s.err = cmd.RunSetupWithPrompter(s.prompter, filesystem.NewChecker(), s.configPath, s.output)
	return nil
}

func loadSaved() (*config.Config, error) {
	s := SharedSetupContext
	if s.err != nil {
		return nil, fmt.Errorf("setup failed: %v", s.err)
	}
	return config.Load(s.configPath)
}

func theConfigFileShouldHaveOutputDirectory(dir string) error {
	cfg, err := loadSaved()
	if err != nil {
		return err
	}
	if cfg.Download.OutputDirectory != dir {
		return fmt.Errorf("output directory = %q, want %q", cfg.Download.OutputDirectory, dir)
	}
	return nil
}

func theConfigFileShouldHaveQuality(quality string) error {
	cfg, err := loadSaved()
	if err != nil {
		return err
	}
	if cfg.Download.Quality != quality {
		return fmt.Errorf("quality = %q, want %q", cfg.Download.Quality, quality)
	}
	return nil
}

func theConfigFileShouldBeUnchanged() error {
	s := SharedSetupContext
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return err
	}
	if string(data) != s.originalContent {
		return fmt.Errorf("config changed:\n%s", data)
	}
	return nil
}

func setupShouldReport(text string) error {
	s := SharedSetupContext
	if !strings.Contains(s.output.String(), text) {
		return fmt.Errorf("output does not contain %q:\n%s", text, s.output.String())
	}
	return nil
}

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytbatch/domain/media"
	"ytbatch/infrastructure/config"
	"ytbatch/infrastructure/filesystem"
)

// mockPrompter implements Prompter with queued answers
type mockPrompter struct {
	inputs   []string
	confirms []bool
	selects  []string
	asked    []string
}

func (m *mockPrompter) Input(message string, defaultValue string) (string, error) {
	m.asked = append(m.asked, message)
	if len(m.inputs) == 0 {
		return defaultValue, nil
	}
	v := m.inputs[0]
	m.inputs = m.inputs[1:]
	return v, nil
}

func (m *mockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	m.asked = append(m.asked, message)
	if len(m.confirms) == 0 {
		return defaultValue, nil
	}
	v := m.confirms[0]
	m.confirms = m.confirms[1:]
	return v, nil
}

func (m *mockPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	m.asked = append(m.asked, message)
	if len(m.selects) == 0 {
		return defaultValue, nil
	}
	v := m.selects[0]
	m.selects = m.selects[1:]
	return v, nil
}

// failingPrompter simulates a user interrupt
type failingPrompter struct{}

func (failingPrompter) Input(string, string) (string, error)            { return "", errors.New("interrupt") }
func (failingPrompter) Confirm(string, bool) (bool, error)              { return false, errors.New("interrupt") }
func (failingPrompter) Select(string, []string, string) (string, error) { return "", errors.New("interrupt") }

func TestRunSetupWithPrompter_WritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ytbatch.yaml")
	prompter := &mockPrompter{
		inputs:   []string{"/data/videos", "", ""},
		selects:  []string{"720p"},
		confirms: []bool{true, false},
	}
	var out bytes.Buffer

	if err := RunSetupWithPrompter(prompter, filesystem.NewChecker(), path, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("saved config does not load: %v", err)
	}
	if cfg.Download.OutputDirectory != "/data/videos" {
		t.Errorf("OutputDirectory = %q", cfg.Download.OutputDirectory)
	}
	if cfg.Download.Quality != "720p" {
		t.Errorf("Quality = %q, want 720p", cfg.Download.Quality)
	}
	if !cfg.Download.AudioOnly {
		t.Error("AudioOnly = false, want true")
	}
	if cfg.YTDLP.Install {
		t.Error("Install = true, want false")
	}
	if !strings.Contains(out.String(), fmt.Sprintf("Configuration saved to %s", path)) {
		t.Errorf("confirmation missing:\n%s", out.String())
	}
}

func TestRunSetupWithPrompter_ExistingFileDeclined(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytbatch.yaml")
	original := "download:\n  output_directory: ./keep\n  quality: best\n"
	if err := os.WriteFile(path, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}
	prompter := &mockPrompter{confirms: []bool{false}}
	var out bytes.Buffer

	if err := RunSetupWithPrompter(prompter, filesystem.NewChecker(), path, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != original {
		t.Errorf("config was modified:\n%s", data)
	}
	if !strings.Contains(out.String(), "Setup cancelled.") {
		t.Errorf("cancellation not reported:\n%s", out.String())
	}
}

func TestRunSetupWithPrompter_RejectsInvalidQuality(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytbatch.yaml")
	prompter := &mockPrompter{
		inputs:  []string{"./downloads", "", ""},
		selects: []string{"ultra"},
	}
	var out bytes.Buffer

	err := RunSetupWithPrompter(prompter, filesystem.NewChecker(), path, &out)

	if !errors.Is(err, media.ErrInvalidQuality) {
		t.Fatalf("error = %v, want ErrInvalidQuality", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("config file written despite invalid quality")
	}
}

func TestRunSetupWithPrompter_Cancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytbatch.yaml")
	var out bytes.Buffer

	err := RunSetupWithPrompter(failingPrompter{}, filesystem.NewChecker(), path, &out)

	if err == nil || !strings.Contains(err.Error(), "prompt cancelled") {
		t.Errorf("error = %v, want prompt cancelled", err)
	}
}

func TestRunSetupWithPrompter_CustomExecutableSkipsInstallPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytbatch.yaml")
	prompter := &mockPrompter{
		inputs:   []string{"./downloads", "", "/opt/bin/yt-dlp"},
		confirms: []bool{false},
	}
	var out bytes.Buffer

	if err := RunSetupWithPrompter(prompter, filesystem.NewChecker(), path, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, q := range prompter.asked {
		if strings.Contains(q, "automatically") {
			t.Errorf("install prompt shown with a custom executable")
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.YTDLP.Executable != "/opt/bin/yt-dlp" {
		t.Errorf("Executable = %q", cfg.YTDLP.Executable)
	}
}

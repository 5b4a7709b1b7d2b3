package cmd

import (
	"bytes"
	"strings"
	"testing"

	"ytbatch/infrastructure/config"
)

func TestRunConfigShowWithDependencies(t *testing.T) {
	cfg := &config.Config{
		Download: config.DownloadConfig{
			OutputDirectory: "/media/in",
			Quality:         "1080p",
			AudioOnly:       true,
		},
	}
	var out bytes.Buffer

	if err := RunConfigShowWithDependencies(cfg, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"output_directory: /media/in",
		"quality: 1080p",
		"audio_only: true",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "executable") {
		t.Errorf("empty executable should be omitted:\n%s", out.String())
	}
}

func TestDemoURLs_AreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, u := range DemoURLs {
		if !strings.HasPrefix(u, "https://") {
			t.Errorf("%q is not a URL", u)
		}
		if seen[u] {
			t.Errorf("%q listed twice", u)
		}
		seen[u] = true
	}
}

package ytdlp

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	goytdlp "github.com/lrstanley/go-ytdlp"

	"ytbatch/domain/media"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestMetadataFromInfo(t *testing.T) {
	tests := []struct {
		name  string
		infos []*goytdlp.ExtractedInfo
		want  *media.Metadata
	}{
		{
			name: "title and duration",
			infos: []*goytdlp.ExtractedInfo{
				{Title: strPtr("Onboard lap"), Duration: floatPtr(212)},
			},
			want: &media.Metadata{Title: "Onboard lap", DurationSeconds: 212},
		},
		{
			name: "fractional duration rounds",
			infos: []*goytdlp.ExtractedInfo{
				{Title: strPtr("Clip"), Duration: floatPtr(59.6)},
			},
			want: &media.Metadata{Title: "Clip", DurationSeconds: 60},
		},
		{
			name:  "missing fields",
			infos: []*goytdlp.ExtractedInfo{{}},
			want:  &media.Metadata{},
		},
		{
			name:  "no entries",
			infos: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metadataFromInfo(tt.infos)

			if tt.want == nil {
				if got != nil {
					t.Errorf("metadataFromInfo() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("metadataFromInfo() = nil")
			}
			if *got != *tt.want {
				t.Errorf("metadataFromInfo() = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}

func TestLastErrorLine(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{
			name:   "single error",
			stderr: "WARNING: slow\nERROR: [youtube] abc: Video unavailable\n",
			want:   "ERROR: [youtube] abc: Video unavailable",
		},
		{
			name:   "last error wins",
			stderr: "ERROR: first\nsome noise\nERROR: second",
			want:   "ERROR: second",
		},
		{
			name:   "no error lines",
			stderr: "WARNING: nothing fatal",
			want:   "",
		},
		{
			name:   "empty",
			stderr: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lastErrorLine(tt.stderr); got != tt.want {
				t.Errorf("lastErrorLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngineError(t *testing.T) {
	exitErr := errors.New("exit status 1")

	if got := engineError(nil, exitErr); got != exitErr {
		t.Errorf("engineError(nil) = %v, want original error", got)
	}

	res := &goytdlp.Result{Stderr: "ERROR: Unsupported URL: https://example.com"}
	if got := engineError(res, exitErr); got.Error() != "ERROR: Unsupported URL: https://example.com" {
		t.Errorf("engineError() = %q, want yt-dlp message", got.Error())
	}
}

func TestClient_MissingExecutable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "yt-dlp")
	c := NewClient(WithExecutable(missing))

	_, err := c.Probe(context.Background(), "https://youtu.be/abc")
	if !errors.Is(err, media.ErrExtraction) {
		t.Errorf("Probe() error = %v, want ErrExtraction", err)
	}

	req, reqErr := media.NewDownloadRequest(t.TempDir(), true, "best", "")
	if reqErr != nil {
		t.Fatal(reqErr)
	}
	if err := c.Fetch(context.Background(), "https://youtu.be/abc", req); !errors.Is(err, media.ErrExtraction) {
		t.Errorf("Fetch() error = %v, want ErrExtraction", err)
	}
}

func TestClient_EnsureInstalledKeepsCustomExecutable(t *testing.T) {
	c := NewClient(WithExecutable("/opt/bin/yt-dlp"))
	if err := c.EnsureInstalled(context.Background()); err != nil {
		t.Errorf("EnsureInstalled() with custom executable = %v, want nil", err)
	}
}

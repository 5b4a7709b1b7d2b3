package report

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"ytbatch/domain/media"
)

// Report is the YAML document written after a run
type Report struct {
	RunID           string    `yaml:"run_id"`
	StartedAt       time.Time `yaml:"started_at"`
	FinishedAt      time.Time `yaml:"finished_at"`
	OutputDirectory string    `yaml:"output_directory"`
	FormatSelector  string    `yaml:"format_selector"`
	AudioOnly       bool      `yaml:"audio_only"`
	Totals          Totals    `yaml:"totals"`
	Items           []Item    `yaml:"items"`
}

// Totals mirrors the printed summary
type Totals struct {
	Processed       int    `yaml:"processed"`
	Succeeded       int    `yaml:"succeeded"`
	Failed          int    `yaml:"failed"`
	DurationSeconds int    `yaml:"duration_seconds"`
	Duration        string `yaml:"duration"`
}

// Item is one processed URL
type Item struct {
	URL             string `yaml:"url"`
	Status          string `yaml:"status"`
	Title           string `yaml:"title,omitempty"`
	DurationSeconds int    `yaml:"duration_seconds,omitempty"`
	Error           string `yaml:"error,omitempty"`
}

// New builds a report with a fresh run ID
func New(req *media.DownloadRequest, results []media.DownloadResult, startedAt, finishedAt time.Time) *Report {
	summary := media.Summarize(results)

	r := &Report{
		RunID:           uuid.NewString(),
		StartedAt:       startedAt.UTC(),
		FinishedAt:      finishedAt.UTC(),
		OutputDirectory: req.OutputDir(),
		FormatSelector:  req.FormatSelector(),
		AudioOnly:       req.AudioOnly(),
		Totals: Totals{
			Processed:       summary.Total,
			Succeeded:       summary.Succeeded,
			Failed:          summary.Failed,
			DurationSeconds: summary.TotalDuration,
			Duration:        media.FormatTotalDuration(summary.TotalDuration),
		},
		Items: make([]Item, 0, len(results)),
	}

	for _, res := range results {
		item := Item{URL: res.URL(), Status: string(res.Status())}
		switch o := res.Outcome().(type) {
		case media.Success:
			item.Title = o.Title
			item.DurationSeconds = o.DurationSeconds
		case media.Failure:
			item.Error = o.Message
		}
		r.Items = append(r.Items, item)
	}

	return r
}

// Write serializes the report to path
func Write(r *Report, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: writing report %s: %v", media.ErrIO, path, err)
	}

	return nil
}

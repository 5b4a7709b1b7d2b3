package media

import (
	"fmt"
	"strings"
)

const (
	summaryRuleWidth = 60
	summaryTitle     = "DOWNLOAD SUMMARY"
)

// Summary aggregates the results of a run
type Summary struct {
	Total         int
	Succeeded     int
	Failed        int
	TotalDuration int // seconds, successes only
	Failures      []DownloadResult
}

// Summarize computes the summary of results without side effects
func Summarize(results []DownloadResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch o := r.Outcome().(type) {
		case Success:
			s.Succeeded++
			s.TotalDuration += o.DurationSeconds
		case Failure:
			s.Failed++
			s.Failures = append(s.Failures, r)
		default:
			s.Failed++
			s.Failures = append(s.Failures, r)
		}
	}
	return s
}

// FormatTotalDuration renders seconds as "Hh Mm Ss"
func FormatTotalDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dh %dm %ds", seconds/3600, (seconds%3600)/60, seconds%60)
}

// FormatClock renders seconds as "M:SS", the form used while downloading
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Render returns the printable summary block
func (s Summary) Render() string {
	var b strings.Builder
	rule := strings.Repeat("=", summaryRuleWidth)

	b.WriteString("\n")
	b.WriteString(rule + "\n")
	b.WriteString(summaryTitle + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total videos processed: %d\n", s.Total)
	fmt.Fprintf(&b, "Successfully downloaded: %d\n", s.Succeeded)
	fmt.Fprintf(&b, "Failed downloads: %d\n", s.Failed)

	if s.Succeeded > 0 {
		fmt.Fprintf(&b, "Total duration: %s\n", FormatTotalDuration(s.TotalDuration))
	}

	if len(s.Failures) > 0 {
		b.WriteString("\nFailed downloads:\n")
		for _, f := range s.Failures {
			fmt.Fprintf(&b, "  - %s: %s\n", f.URL(), f.ErrorMessage())
		}
	}

	return b.String()
}

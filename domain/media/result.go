package media

// UnknownTitle is reported when the engine returns no title for a URL
const UnknownTitle = "Unknown"

// Status is the terminal state of one processed URL
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Outcome is either Success or Failure. The interface is sealed so a type
// switch over the two cases is exhaustive.
type Outcome interface {
	Status() Status
	sealed()
}

// Success carries the metadata of a completed download
type Success struct {
	Title           string
	DurationSeconds int
}

// Status implements Outcome
func (Success) Status() Status { return StatusSuccess }

func (Success) sealed() {}

// Failure carries the engine's error message, unmodified
type Failure struct {
	Message string
}

// Status implements Outcome
func (Failure) Status() Status { return StatusError }

func (Failure) sealed() {}

// DownloadResult records what happened to one URL
type DownloadResult struct {
	url     string
	outcome Outcome
}

// Succeeded builds a successful result. An empty title becomes UnknownTitle
// and a negative duration is clamped to zero.
func Succeeded(url, title string, durationSeconds int) DownloadResult {
	if title == "" {
		title = UnknownTitle
	}
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	return DownloadResult{
		url:     url,
		outcome: Success{Title: title, DurationSeconds: durationSeconds},
	}
}

// Failed builds a failed result from the engine's error
func Failed(url string, err error) DownloadResult {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return DownloadResult{
		url:     url,
		outcome: Failure{Message: msg},
	}
}

// URL returns the source URL
func (r DownloadResult) URL() string {
	return r.url
}

// Outcome returns the Success or Failure case
func (r DownloadResult) Outcome() Outcome {
	return r.outcome
}

// Status returns StatusSuccess or StatusError
func (r DownloadResult) Status() Status {
	if r.outcome == nil {
		return StatusError
	}
	return r.outcome.Status()
}

// Title returns the resolved title, or UnknownTitle for failures
func (r DownloadResult) Title() string {
	if s, ok := r.outcome.(Success); ok {
		return s.Title
	}
	return UnknownTitle
}

// DurationSeconds returns the duration of a success, 0 otherwise
func (r DownloadResult) DurationSeconds() int {
	if s, ok := r.outcome.(Success); ok {
		return s.DurationSeconds
	}
	return 0
}

// ErrorMessage returns the failure message, empty for successes
func (r DownloadResult) ErrorMessage() string {
	if f, ok := r.outcome.(Failure); ok {
		return f.Message
	}
	return ""
}

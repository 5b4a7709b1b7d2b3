//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"ytbatch/application/batch"
	"ytbatch/cmd"
	"ytbatch/domain/media"
	"ytbatch/infrastructure/logger"

	"github.com/cucumber/godog"
)

// mockEngine stands in for yt-dlp
type mockEngine struct {
	metadata  map[string]*media.Metadata
	failures  map[string]string
	fetched   []string
	selectors []string
}

func (m *mockEngine) Probe(ctx context.Context, url string) (*media.Metadata, error) {
	return m.metadata[url], nil
}

func (m *mockEngine) Fetch(ctx context.Context, url string, req *media.DownloadRequest) error {
	m.fetched = append(m.fetched, url)
	m.selectors = append(m.selectors, req.FormatSelector())
	if msg, ok := m.failures[url]; ok {
		return errors.New(msg)
	}
	return nil
}

// mockFilesystem serves URL list files from memory
type mockFilesystem struct {
	files   map[string]string
	created []string
}

func (m *mockFilesystem) EnsureDir(path string) error {
	m.created = append(m.created, path)
	return nil
}

func (m *mockFilesystem) Open(path string) (io.ReadCloser, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", media.ErrFileNotFound, path)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

// batchContext holds test state for batch scenarios
type batchContext struct {
	engine *mockEngine
	fs     *mockFilesystem
	opts   cmd.DownloadOptions
	input  batch.Input
	output *bytes.Buffer
	err    error
}

// SharedBatchContext is reset before each scenario via Before hook
var SharedBatchContext *batchContext

func getBatchContext() *batchContext {
	return SharedBatchContext
}

func InitializeBatchScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedBatchContext = &batchContext{
			engine: &mockEngine{
				metadata: make(map[string]*media.Metadata),
				failures: make(map[string]string),
			},
			fs: &mockFilesystem{files: make(map[string]string)},
			opts: cmd.DownloadOptions{
				OutputDirectory: media.DefaultOutputDirectory,
				Quality:         media.QualityBest,
			},
			output: &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedBatchContext = nil
		return c, nil
	})

	ctx.Step(`^the video "([^"]*)" titled "([^"]*)" lasting (\d+) seconds$`, theVideoTitledLasting)
	ctx.Step(`^the video "([^"]*)" fails with "([^"]*)"$`, theVideoFailsWith)
	ctx.Step(`^a URL file "([^"]*)" containing:$`, aURLFileContaining)
	ctx.Step(`^the quality is "([^"]*)"$`, theQualityIs)
	ctx.Step(`^the custom format is "([^"]*)"$`, theCustomFormatIs)
	ctx.Step(`^audio only is enabled$`, audioOnlyIsEnabled)
	ctx.Step(`^I download "([^"]*)"$`, iDownload)
	ctx.Step(`^I download the URLs "([^"]*)"$`, iDownloadTheURLs)
	ctx.Step(`^I download from the file "([^"]*)" and "([^"]*)"$`, iDownloadFromTheFileAnd)
	ctx.Step(`^I download from the file "([^"]*)"$`, iDownloadFromTheFile)
	ctx.Step(`^I run without any URLs$`, iRunWithoutAnyURLs)
	ctx.Step(`^the URLs should be downloaded in order "([^"]*)"$`, theURLsShouldBeDownloadedInOrder)
	ctx.Step(`^nothing should be downloaded$`, nothingShouldBeDownloaded)
	ctx.Step(`^no directory should be created$`, noDirectoryShouldBeCreated)
	ctx.Step(`^the format selector should be "([^"]*)"$`, theFormatSelectorShouldBe)
	ctx.Step(`^the output should contain "([^"]*)"$`, theOutputShouldContain)
	ctx.Step(`^the output should not contain "([^"]*)"$`, theOutputShouldNotContain)
	ctx.Step(`^I should receive an invalid quality error$`, iShouldReceiveAnInvalidQualityError)
}

func theVideoTitledLasting(url, title string, seconds int) error {
	b := getBatchContext()
	b.engine.metadata[url] = &media.Metadata{Title: title, DurationSeconds: seconds}
	return nil
}

func theVideoFailsWith(url, message string) error {
	b := getBatchContext()
	b.engine.failures[url] = message
	return nil
}

func aURLFileContaining(path string, content *godog.DocString) error {
	b := getBatchContext()
	b.fs.files[path] = content.Content
	return nil
}

func theQualityIs(quality string) error {
	getBatchContext().opts.Quality = quality
	return nil
}

func theCustomFormatIs(format string) error {
	getBatchContext().opts.Format = format
	return nil
}

func audioOnlyIsEnabled() error {
	getBatchContext().opts.AudioOnly = true
	return nil
}

func run(b *batchContext) {
	b.err = cmd.RunDownloadWithDependencies(
		context.Background(),
		b.engine,
		b.fs,
		b.fs,
		b.opts,
		b.input,
		logger.New(b.output),
		b.output,
	)
}

func iDownload(url string) error {
	b := getBatchContext()
	b.input = batch.Input{URLs: []string{url}}
	run(b)
	return nil
}

func iDownloadTheURLs(list string) error {
	b := getBatchContext()
	b.input = batch.Input{URLs: splitList(list)}
	run(b)
	return nil
}

func iDownloadFromTheFileAnd(path, list string) error {
	b := getBatchContext()
	b.input = batch.Input{URLFile: path, URLs: splitList(list)}
	run(b)
	return nil
}

func iDownloadFromTheFile(path string) error {
	b := getBatchContext()
	b.input = batch.Input{URLFile: path}
	run(b)
	return nil
}

func iRunWithoutAnyURLs() error {
	b := getBatchContext()
	b.input = batch.Input{}
	run(b)
	return nil
}

func theURLsShouldBeDownloadedInOrder(list string) error {
	b := getBatchContext()
	want := splitList(list)
	if strings.Join(b.engine.fetched, ",") != strings.Join(want, ",") {
		return fmt.Errorf("fetched %v, want %v", b.engine.fetched, want)
	}
	return nil
}

func nothingShouldBeDownloaded() error {
	b := getBatchContext()
	if len(b.engine.fetched) != 0 {
		return fmt.Errorf("expected no downloads, got %v", b.engine.fetched)
	}
	return nil
}

func noDirectoryShouldBeCreated() error {
	b := getBatchContext()
	if len(b.fs.created) != 0 {
		return fmt.Errorf("expected no directory, got %v", b.fs.created)
	}
	return nil
}

func theFormatSelectorShouldBe(selector string) error {
	b := getBatchContext()
	if b.err != nil {
		return fmt.Errorf("unexpected error: %v", b.err)
	}
	if len(b.engine.selectors) == 0 {
		return fmt.Errorf("nothing was fetched")
	}
	if got := b.engine.selectors[0]; got != selector {
		return fmt.Errorf("selector = %q, want %q", got, selector)
	}
	return nil
}

func theOutputShouldContain(text string) error {
	b := getBatchContext()
	if !strings.Contains(b.output.String(), text) {
		return fmt.Errorf("output does not contain %q:\n%s", text, b.output.String())
	}
	return nil
}

func theOutputShouldNotContain(text string) error {
	b := getBatchContext()
	if strings.Contains(b.output.String(), text) {
		return fmt.Errorf("output unexpectedly contains %q:\n%s", text, b.output.String())
	}
	return nil
}

func iShouldReceiveAnInvalidQualityError() error {
	b := getBatchContext()
	if !errors.Is(b.err, media.ErrInvalidQuality) {
		return fmt.Errorf("expected invalid quality error, got %v", b.err)
	}
	return nil
}

func splitList(list string) []string {
	var out []string
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

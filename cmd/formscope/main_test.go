package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/entrhq/formscope/pkg/audit"
	appconfig "github.com/entrhq/formscope/pkg/config"
	"github.com/entrhq/formscope/pkg/logging"
	"github.com/entrhq/formscope/pkg/overlay"
	"github.com/entrhq/formscope/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logging.Logger {
	return logging.NewWriterLogger("main-test", io.Discard)
}

func TestNewAuditSource_Sample(t *testing.T) {
	source, err := newAuditSource(appconfig.AuditConfig{}, testLogger())
	require.NoError(t, err)

	details, err := source(context.Background())
	require.NoError(t, err)
	assert.Equal(t, audit.MockedDetails(), details)
}

func TestNewAuditSource_FileWithSuppression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	content := `score: 55
results:
  - type: error
    name: input-has-label
    title: Inputs need a label
  - type: warning
    name: experimental-check
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	source, err := newAuditSource(appconfig.AuditConfig{
		ResultsFile: path,
		Suppress:    []string{"experimental-*"},
	}, testLogger())
	require.NoError(t, err)

	details, err := source(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 55.0, details.Score)
	require.Len(t, details.Results, 1)
	assert.Equal(t, "input-has-label", details.Results[0].Name)

	// The file is re-read on every run.
	require.NoError(t, os.WriteFile(path, []byte("score: 90\nresults: []\n"), 0644))
	details, err = source(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 90.0, details.Score)
	assert.Empty(t, details.Results)
}

func TestNewAuditSource_Errors(t *testing.T) {
	source, err := newAuditSource(appconfig.AuditConfig{
		ResultsFile: filepath.Join(t.TempDir(), "missing.json"),
	}, testLogger())
	require.NoError(t, err)

	_, err = source(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = source(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFlags(t *testing.T) {
	assert.Error(t, (&Flags{}).validate())
	assert.NoError(t, (&Flags{URL: "https://example.com"}).validate())
	assert.Error(t, (&Flags{URL: "https://example.com", ResultsFile: "/does/not/exist.json"}).validate())

	cfg := appconfig.Default()
	cfg.Browser.Headless = true
	f := &Flags{Route: "/details.html", ResultsFile: "a.json", set: map[string]bool{}}
	f.applyTo(cfg)
	assert.Equal(t, appconfig.Default().Audit.StartRoute, cfg.Audit.StartRoute, "-route is delivered as a navigation")
	assert.Equal(t, "a.json", cfg.Audit.ResultsFile)
	assert.True(t, cfg.Browser.Headless, "headless stays as configured unless the flag is given")

	f.set["headless"] = true
	f.applyTo(cfg)
	assert.False(t, cfg.Browser.Headless)
}

func TestOpenLogger_FallbackIsSilent(t *testing.T) {
	var stderr bytes.Buffer
	var fallback bytes.Buffer
	open := func(component string) (*logging.Logger, error) {
		return logging.NewWriterLogger(component, &fallback), errors.New("read-only file system")
	}

	logger := openLogger("formscope", &stderr, open)
	require.NotNil(t, logger)
	assert.Contains(t, stderr.String(), "read-only file system")

	stderr.Reset()
	logger.Infof("written while the view owns the terminal")
	logger.Warnf("also dropped")
	assert.Empty(t, stderr.String())
	assert.Empty(t, fallback.String(), "the stderr fallback must not be used")
	assert.Empty(t, logger.LogPath())
}

func TestOpenLogger_Success(t *testing.T) {
	var stderr bytes.Buffer
	want := testLogger()
	got := openLogger("formscope", &stderr, func(string) (*logging.Logger, error) { return want, nil })
	assert.Same(t, want, got)
	assert.Empty(t, stderr.String())
}

type hideRecorder struct {
	release chan struct{}
	hidden  []overlay.Type
}

func (h *hideRecorder) OnAuditRequest(ctx context.Context) error { return nil }
func (h *hideRecorder) OnAuditDetails(ctx context.Context, details audit.Details) error {
	return nil
}
func (h *hideRecorder) OnHighlightRequest(ctx context.Context, e types.Event) error { return nil }
func (h *hideRecorder) OnHideRequest(ctx context.Context, t overlay.Type) error {
	<-h.release
	h.hidden = append(h.hidden, t)
	return nil
}

func TestDrainHost_AppliesQueuedHides(t *testing.T) {
	channels := types.NewChannels(4)
	h := &hideRecorder{release: make(chan struct{})}
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		channels.Serve(ctx, h, nil)
	}()

	// What the view queues on quit.
	require.True(t, channels.Send(ctx, types.NewHideEvent(overlay.TypeHover)))
	require.True(t, channels.Send(ctx, types.NewHideEvent(overlay.TypeClick)))

	// Let the handler proceed only once the drain has started.
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(h.release)
	}()

	require.True(t, drainHost(channels, done, 2*time.Second))
	assert.Equal(t, []overlay.Type{overlay.TypeHover, overlay.TypeClick}, h.hidden)
}

func TestDrainHost_Timeout(t *testing.T) {
	channels := types.NewChannels(1)
	done := make(chan struct{})
	assert.False(t, drainHost(channels, done, 10*time.Millisecond))
}

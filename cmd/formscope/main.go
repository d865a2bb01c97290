// Package main provides the formscope terminal application: it opens a page
// in a Playwright-driven browser, shows the form audit results for it and
// highlights the elements each finding refers to.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	appconfig "github.com/entrhq/formscope/pkg/config"
	"github.com/entrhq/formscope/pkg/executor/tui"
	"github.com/entrhq/formscope/pkg/logging"
	"github.com/entrhq/formscope/pkg/overlay"
	"github.com/entrhq/formscope/pkg/tools/browser"
	"github.com/entrhq/formscope/pkg/types"
)

const (
	version     = "0.1.0"   // Version of formscope
	sessionName = "inspect" // Browser session hosting the audited page

	// hostDrainTimeout bounds how long exit waits for queued page requests
	hostDrainTimeout = 2 * time.Second
)

// Flags holds the command line configuration
type Flags struct {
	ConfigPath  string
	URL         string
	ResultsFile string
	Route       string
	Headless    bool
	ShowVersion bool

	// set records which flags were given explicitly
	set map[string]bool
}

func main() {
	flags := parseFlags()

	if flags.ShowVersion {
		fmt.Printf("formscope v%s\n", version)
		return
	}

	if err := flags.validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, flags); err != nil {
		cancel()
		log.Fatalf("Application error: %v", err)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *Flags {
	flags := &Flags{set: make(map[string]bool)}

	flag.StringVar(&flags.ConfigPath, "config", "", "Path to the configuration file (default: ~/.formscope/config.yaml)")
	flag.StringVar(&flags.URL, "url", "", "URL of the page to inspect")
	flag.StringVar(&flags.ResultsFile, "results", "", "Audit results file (JSON or YAML); built-in sample results when empty")
	flag.StringVar(&flags.Route, "route", "", "View to open: /recommendations.html, /mistakes.html or /details.html")
	flag.BoolVar(&flags.Headless, "headless", false, "Run the browser without a window")
	flag.BoolVar(&flags.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "formscope - form audit results in the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: formscope -url <page> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  %s  Directory for log files\n", logging.EnvLogDir)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  formscope -url https://example.com/signup\n")
		fmt.Fprintf(os.Stderr, "  formscope -url https://example.com/signup -results audit.json -route /mistakes.html\n")
	}

	flag.Parse()
	flag.Visit(func(f *flag.Flag) { flags.set[f.Name] = true })
	return flags
}

// validate checks that the flags are usable
func (f *Flags) validate() error {
	if f.URL == "" {
		return fmt.Errorf("a page URL is required (use -url)")
	}
	if f.ResultsFile != "" {
		if _, err := os.Stat(f.ResultsFile); err != nil {
			return fmt.Errorf("results file error: %w", err)
		}
	}
	return nil
}

// applyTo overrides file configuration with explicitly given flags. -route
// is not applied here; run hands it to the view as a navigation.
func (f *Flags) applyTo(cfg *appconfig.Config) {
	if f.ResultsFile != "" {
		cfg.Audit.ResultsFile = f.ResultsFile
	}
	if f.set["headless"] {
		cfg.Browser.Headless = f.Headless
	}
}

// run wires the browser host and the results view and blocks until the
// view exits
func run(ctx context.Context, flags *Flags) error {
	cfg, err := appconfig.Load(flags.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	flags.applyTo(cfg)

	logger := openLogger("formscope", os.Stderr, logging.NewLogger)
	defer logger.Close()
	if level, err := logging.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	logger.Infof("formscope v%s starting, url=%s", version, flags.URL)

	source, err := newAuditSource(cfg.Audit, logger)
	if err != nil {
		return err
	}

	sessions := browser.NewSessionManager()
	if err := sessions.Initialize(); err != nil {
		return err
	}
	defer func() {
		if err := sessions.Shutdown(); err != nil {
			logger.Warnf("browser shutdown: %v", err)
		}
	}()

	session, err := sessions.StartSession(sessionName, browser.SessionOptions{
		Headless: cfg.Browser.Headless,
		Viewport: &browser.Viewport{Width: cfg.Browser.Viewport.Width, Height: cfg.Browser.Viewport.Height},
		Timeout:  cfg.Browser.Timeout,
	})
	if err != nil {
		return err
	}

	if err := session.Navigate(flags.URL, browser.NavigateOptions{WaitUntil: cfg.Browser.WaitUntil}); err != nil {
		return err
	}
	logger.Infof("page loaded: %s", session.CurrentURL)

	doc := session.Document()
	if _, err := doc.InjectStyles(cfg.Overlay.ClickID, cfg.Overlay.HoverID); err != nil {
		return fmt.Errorf("failed to inject overlay styles: %w", err)
	}

	channels := types.NewChannels(types.DefaultBufferSize)
	inspector := browser.NewInspector(browser.InspectorConfig{
		Finder: session,
		Overlays: overlay.NewManager(doc,
			overlay.WithIDs(cfg.Overlay.ClickID, cfg.Overlay.HoverID),
			overlay.WithScrollPadding(cfg.Overlay.ScrollPadding),
			overlay.WithSmoothScroll(cfg.SmoothScrollEnabled()),
		),
		Source:   source,
		Channels: channels,
		Logger:   logger,
	})

	hostCtx, stopHost := context.WithCancel(ctx)
	defer stopHost()
	hostDone := make(chan struct{})
	go func() {
		defer close(hostDone)
		inspector.Run(hostCtx)
	}()

	executor := tui.NewExecutor(channels, logger, cfg.Audit.StartRoute, flags.URL)
	if flags.Route != "" && !executor.Navigate(ctx, flags.Route) {
		return ctx.Err()
	}
	runErr := executor.Run(ctx)

	// The view queues hide requests on exit; they must reach the page
	// before the browser is shut down.
	if !drainHost(channels, hostDone, hostDrainTimeout) {
		logger.Warnf("page host still busy after %s, shutting down", hostDrainTimeout)
	}
	stopHost()
	return runErr
}

// openLogger opens the file logger. When that fails the warning goes to
// warn and a silent logger is returned, since the view owns the terminal.
func openLogger(component string, warn io.Writer, open func(string) (*logging.Logger, error)) *logging.Logger {
	logger, err := open(component)
	if err == nil {
		return logger
	}
	if logger != nil {
		logger.Close()
	}
	fmt.Fprintf(warn, "Warning: file logging disabled: %v\n", err)
	return logging.NewWriterLogger(component, io.Discard)
}

// drainHost ends the request stream and waits up to timeout for the host
// loop signalled by done to finish the queued requests.
func drainHost(channels *types.Channels, done <-chan struct{}, timeout time.Duration) bool {
	channels.Close()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

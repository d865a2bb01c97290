package main

import (
	"context"
	"fmt"

	"github.com/entrhq/formscope/pkg/audit"
	appconfig "github.com/entrhq/formscope/pkg/config"
	"github.com/entrhq/formscope/pkg/logging"
	"github.com/entrhq/formscope/pkg/tools/browser"
)

// newAuditSource returns the producer of audit runs. Results are read from
// the configured file on every run so a reload picks up a rewritten file;
// without one the built-in sample results are served.
func newAuditSource(cfg appconfig.AuditConfig, logger *logging.Logger) (browser.AuditSource, error) {
	suppressor, err := audit.NewSuppressor(cfg.Suppress)
	if err != nil {
		return nil, err
	}

	path := cfg.ResultsFile
	if path == "" {
		logger.Infof("no results file configured, serving sample results")
	}

	return func(ctx context.Context) (audit.Details, error) {
		if err := ctx.Err(); err != nil {
			return audit.Details{}, err
		}
		if path == "" {
			return suppressor.Apply(audit.MockedDetails()), nil
		}
		details, err := audit.LoadDetails(path)
		if err != nil {
			return audit.Details{}, fmt.Errorf("failed to load results: %w", err)
		}
		return suppressor.Apply(details), nil
	}, nil
}

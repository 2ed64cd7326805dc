package slog

import (
	"log/slog"

	"github.com/fwojciec/sigstub"
)

// WarningReporter logs page warnings as they are produced.
type WarningReporter struct {
	logger *slog.Logger
}

// NewWarningReporter creates a new WarningReporter.
func NewWarningReporter(logger *slog.Logger) *WarningReporter {
	return &WarningReporter{logger: logger}
}

// Report logs each warning at warn level.
func (r *WarningReporter) Report(ws sigstub.Warnings) {
	for _, w := range ws {
		r.logger.Warn(w.Message, "page", w.Page, "kind", string(w.Kind))
	}
}

// ReportError logs a page failure.
func (r *WarningReporter) ReportError(page string, err error) {
	r.logger.Error("page failed",
		"page", page,
		"code", sigstub.ErrorCode(err),
		"err", err,
	)
}

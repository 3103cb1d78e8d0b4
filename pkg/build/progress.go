package build

import "log/slog"

// ProgressReporter is the progress callback interface for a build:
// invoked once per document before its work begins, and once on final
// success or failure. Implementations must be safe to call from the thread
// driving the build -- Build never invokes one concurrently.
type ProgressReporter interface {
	OnTick(index, total int, title string)
	OnWarning(message string)
	OnSucceed()
	OnFail()
}

// NopReporter discards every callback. It is the default when a caller does
// not need build progress.
type NopReporter struct{}

func (NopReporter) OnTick(int, int, string) {}
func (NopReporter) OnWarning(string)         {}
func (NopReporter) OnSucceed()               {}
func (NopReporter) OnFail()                  {}

// SlogReporter logs progress through a structured logger, the way the rest
// of this module reports build and request lifecycle events.
type SlogReporter struct {
	Logger *slog.Logger
}

// NewSlogReporter returns a SlogReporter; a nil logger falls back to
// slog.Default().
func NewSlogReporter(logger *slog.Logger) SlogReporter {
	if logger == nil {
		logger = slog.Default()
	}

	return SlogReporter{Logger: logger}
}

func (r SlogReporter) OnTick(index, total int, title string) {
	r.Logger.Debug("indexing document", "index", index, "total", total, "title", title)
}

func (r SlogReporter) OnWarning(message string) {
	r.Logger.Warn("build warning", "message", message)
}

func (r SlogReporter) OnSucceed() {
	r.Logger.Info("build succeeded")
}

func (r SlogReporter) OnFail() {
	r.Logger.Error("build failed")
}

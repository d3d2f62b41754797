package metrics

import "time"

// Recorder defines observability hooks for block dispatching and document conversion.
type Recorder interface {
	IncBlock(blockType string, fallback bool)
	IncDiagnostic(blockType string)
	ObserveGeneratorDuration(blockType string, d time.Duration)
	ObserveDocumentDuration(d time.Duration, success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncBlock(string, bool)                          {}
func (NoopRecorder) IncDiagnostic(string)                           {}
func (NoopRecorder) ObserveGeneratorDuration(string, time.Duration) {}
func (NoopRecorder) ObserveDocumentDuration(time.Duration, bool)    {}

package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	blocks            *prom.CounterVec
	diagnostics       *prom.CounterVec
	generatorDuration *prom.HistogramVec
	documentDuration  *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers the conversion metrics on reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		blocks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdblocks",
			Name:      "blocks_total",
			Help:      "Custom blocks dispatched, by type and whether the fallback generator was used",
		}, []string{"type", "fallback"}),
		diagnostics: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdblocks",
			Name:      "diagnostics_total",
			Help:      "Parameter binding diagnostics by block type",
		}, []string{"type"}),
		generatorDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "mdblocks",
			Name:      "generator_duration_seconds",
			Help:      "Duration of generator invocations",
			Buckets:   prom.DefBuckets,
		}, []string{"type"}),
		documentDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "mdblocks",
			Name:      "document_duration_seconds",
			Help:      "Duration of whole document conversions",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
	}
	reg.MustRegister(pr.blocks, pr.diagnostics, pr.generatorDuration, pr.documentDuration)
	return pr
}

func (p *PrometheusRecorder) IncBlock(blockType string, fallback bool) {
	if p == nil || p.blocks == nil {
		return
	}
	fb := "false"
	if fallback {
		fb = "true"
	}
	p.blocks.WithLabelValues(blockType, fb).Inc()
}

func (p *PrometheusRecorder) IncDiagnostic(blockType string) {
	if p == nil || p.diagnostics == nil {
		return
	}
	p.diagnostics.WithLabelValues(blockType).Inc()
}

func (p *PrometheusRecorder) ObserveGeneratorDuration(blockType string, d time.Duration) {
	if p == nil || p.generatorDuration == nil {
		return
	}
	p.generatorDuration.WithLabelValues(blockType).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveDocumentDuration(d time.Duration, success bool) {
	if p == nil || p.documentDuration == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.documentDuration.WithLabelValues(res).Observe(d.Seconds())
}

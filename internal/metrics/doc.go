// Package metrics provides conversion metrics for mdblocks.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never needs nil checks. The
// PrometheusRecorder is activated by the CLI when metrics are enabled in the
// configuration, and HTTPHandler exposes it for scraping.
package metrics

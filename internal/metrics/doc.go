// Package metrics provides build metrics for mdsite.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	gen := site.NewGenerator(cfg, site.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The preview server registers a PrometheusRecorder and exposes it through
// HTTPHandler on /metrics.
package metrics

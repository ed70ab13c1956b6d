// Package observability carries instrumentation events out of the
// evaluation pipeline without tying it to a backend.
//
// The pipeline and cache report through two hook interfaces,
// [PipelineHooks] and [CacheHooks], looked up on every event with
// [Pipeline] and [Cache]. Both default to no-ops. A program installs its
// own implementations once at startup:
//
//	counters := &observability.Counters{}
//	metrics := observability.NewMetrics()
//	observability.SetPipelineHooks(observability.MultiPipelineHooks{counters, metrics})
//	observability.SetCacheHooks(observability.MultiCacheHooks{counters, metrics})
//
// [Counters] tallies events in memory for end-of-run summaries. [Metrics]
// exports Prometheus series and can be written as a textfile-collector
// file with [Metrics.WriteFile].
package observability

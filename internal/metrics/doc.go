// Package metrics records post-build pipeline metrics.
//
// Components receive a Recorder and never check whether metrics are enabled:
// NoopRecorder is the default, and PrometheusRecorder is swapped in when a
// textfile output is configured. Because the tool is a short-lived batch job,
// metrics are not scraped over HTTP; they are written once at the end of the run
// in the node-exporter textfile format.
package metrics

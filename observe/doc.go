// Package observe exposes cache statistics through OpenTelemetry and Prometheus.
//
// It is a pure instrumentation library: it reads counters from a StatsSource,
// traces and times load functions, and writes structured logs. It never
// changes what a cache returns.
package observe

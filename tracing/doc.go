// Package tracing integrates OpenTelemetry with the monitor so that every
// consumed engine notification can be observed as a span. Instrumentation is
// kept in a separate package so that hosts which do not require tracing can
// exclude it from their build.
package tracing

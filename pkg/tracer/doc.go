// Package tracer provides distributed tracing built on OpenTelemetry.
//
// It wraps the SDK tracer provider behind a small API: StartSpan for new
// spans, RecordErrorOnSpan for failures, SetAttributes for span metadata,
// and GetCarrier/SetCarrierOnContext for W3C trace-context propagation
// across service boundaries.
package tracer

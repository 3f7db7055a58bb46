// Package observe wires logging, metrics, and tracing together.
//
// An Observer owns the telemetry providers for the process. Handlers
// and the service layer take the narrow Logger, Metrics, and Tracer
// interfaces from it rather than the OpenTelemetry APIs directly, so
// tests can run against no-op implementations and exporters stay a
// deployment decision.
package observe

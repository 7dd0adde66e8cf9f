// Package trace is the structured event log of rxlint.
//
// Every interesting step of a lint run (driver, pass, file, literal) can be
// wrapped into a Span; spans emit begin/end events to a Tracer. Tracing is
// off by default and costs one interface call per span when disabled.
//
// # Usage
//
//	rxlint check --trace=- --trace-level=detail ./src
//	rxlint check --trace=run.ndjson --trace-level=debug ./src
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory, dumped on failure
//   - MultiTracer: fans events out to several tracers
//
// # Levels and scopes
//
// Levels (off, error, phase, detail, debug) select which scopes are emitted:
// phase shows driver and pass spans, detail adds per-file spans, debug adds
// per-literal spans.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeFile, "lint:"+path)
//	defer span.End("")
package trace

// Package trace records spans and instant events of the ctfmt tools.
//
// Enable it from the command line:
//
//	ctfmt check --trace=- --trace-level=detail templates.toml
//
// Tracers:
//
//   - Nop: disabled tracing, no allocations
//   - StreamTracer: writes each event as it happens
//   - Buffer: keeps the last N events for a dump at exit
//   - LogTracer: forwards events to a logrus logger (--verbose)
//   - Tee: fans out to several of the above
//
// Scopes, from coarse to fine: ScopeDriver (a CLI command), ScopeManifest
// (one manifest file), ScopeTemplate (one template compile) and ScopeField
// (one replacement field). The level picks how deep events are kept.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeTemplate, name)
//	defer span.End("")
//
// Spans opened with Start nest: the text format indents them by depth.
package trace

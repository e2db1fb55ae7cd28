// Package diag defines the diagnostic model shared by the class engine
// and the manifest toolchain.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by classification, relationship checks, cast
//     verification, manifest loading and code generation.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Model correction hints as structured suggestions the CLI can render
//     next to the finding.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt;
// orchestration lives in internal/pipeline and the CLI layer.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary subject – the file and/or class the finding is about.
//   - Notes – optional secondary subjects/messages for additional context.
//   - Hints – optional Hint records suggesting the likely correction.
//
// Notes should be used sparingly: each note must add new context (e.g. "base
// declared here") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Producers should use a diag.Reporter to decouple emission from storage.
// The classifier, for example, constructs a ReportBuilder via
// NewReportBuilder (or the helper functions ReportError/ReportWarning/
// ReportInfo) and chains WithNote / WithHint before calling Emit.
//
// When no additional metadata is needed, producers may call
// Reporter.Report(...) directly. For convenience, diag.BagReporter
// aggregates diagnostics into a Bag, which supports sorting, deduplication
// and merging.
//
// Keep the data model deterministic: any new fields should avoid side
// effects, so the CLI and future tooling can safely serialise diagnostics
// for caching and testing.
package diag

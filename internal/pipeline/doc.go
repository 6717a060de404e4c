// Package pipeline orchestrates the full document chunking sequence:
// split into chunks, generate metadata, aggregate statistics, and
// persist the result.
//
// A Pipeline is safe for concurrent use. Per-call configuration
// overrides are merged and validated before any work starts, so a bad
// override never produces partial output.
package pipeline

// Package metadata synthesizes per-chunk metadata from chunk text.
//
// Structural fields (word, sentence and paragraph counts, headings, code
// block / table / list flags) are pure functions over the content, built
// on the same markdown scanners the boundary detector uses, so a feature
// the detector protected is always a feature the metadata reports.
//
// Semantic fields (summary, topics, entities) come from an injected
// enrichment capability and only when smart boundaries are enabled.
// Enrichment is best-effort by contract: any failure, timeout or absent
// capability leaves the semantic fields unset and never propagates past
// this package. Batch application runs enrichment with a small bounded
// concurrency while preserving chunk order.
package metadata

// Package types provides shared type definitions for the DocChunk MCP server.
//
// This package defines the domain types used across the chunking pipeline:
// configuration, chunks, boundaries and aggregated statistics.
//
// # Configuration
//
// ChunkingConfig is built once from defaults plus optional overrides and is
// validated at construction. It is never mutated afterwards:
//
//	cfg, err := types.NewConfig(&types.ConfigOverrides{
//	    MaxChunkSize:      ptr(4000),
//	    OverlapPercentage: ptr(15),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// EffectiveBudget (MaxChunkSize - MetadataOverhead) is the real per-chunk
// content ceiling; a non-positive budget is rejected at construction.
//
// # Chunks
//
// DocumentChunk is one bounded segment of a source document, with character
// offsets into the original text and the region shared with its neighbors:
//
//	chunk := types.DocumentChunk{
//	    ID:         types.NewChunkID(docID, 0),
//	    DocumentID: docID,
//	    Content:    text[0:4000],
//	    StartChar:  0,
//	    EndChar:    4000,
//	}
//
// ChunkMetadata carries structural counts (words, sentences, paragraphs,
// headings), feature flags (code blocks, tables, lists), optional semantic
// fields filled by enrichment, and navigation links to neighbor chunks.
//
// # Boundaries
//
// ChunkBoundary scores a candidate split point. Confidence reflects how
// structurally meaningful the cut is: section (1.0) > paragraph (0.8) >
// sentence (0.6) > forced (0.0).
//
// # Invariants
//
// For every chunk except possibly a final whole-document chunk,
// len(Content) <= cfg.EffectiveBudget(). Chunk indices are contiguous from
// zero and every chunk's TotalChunks equals the produced list length.
package types

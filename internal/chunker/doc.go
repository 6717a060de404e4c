// Package chunker implements the chunk assembly loop: it walks a document
// end to end, cutting at detected boundaries and linking consecutive
// chunks through a configurable overlap.
//
// # Basic Usage
//
//	cfg, _ := types.NewConfig(nil)
//	eng, err := chunker.New(cfg, markdown.DefaultPatterns(), logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	chunks := eng.ChunkDocument(docID, content)
//
// # Assembly Loop
//
// A single cursor advances through the document. Each iteration targets
// cursor + effectiveBudget, asks the boundary detector for the best cut
// near that target, emits the chunk, and restarts the cursor at
// end - overlapLength so consecutive chunks share a trailing region.
// Documents that fit inside the effective budget are emitted as one
// verbatim chunk without running the loop.
//
// Chunks are buffered and indexed in a second pass, so every chunk's
// TotalChunks reflects the exact final count and neighbor IDs are wired
// in both directions.
//
// # Overlap Rules
//
// The first chunk has no leading overlap and the last chunk no trailing
// overlap. When a boundary was forced by a protected region the overlap
// start is not pulled back inside that region; the overlap shrinks
// instead, possibly to zero, rather than reopening an unmatched fence.
//
// Chunking one document is sequential: each boundary depends on the
// previous chunk's end. Independent documents can be chunked in parallel;
// the engine holds no per-document state.
package chunker

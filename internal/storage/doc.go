// Package storage provides SQLite-based persistence for chunked documents.
//
// The storage layer manages:
//   - Document records (source, content hash, chunk counts)
//   - Chunks with their spans, overlap markers, and metadata
//   - Schema migrations
//
// # Database Schema
//
// Tables:
//   - documents: One row per chunked document (id, source, SHA-256 hash)
//   - chunks: One row per chunk, keyed by the chunk's deterministic ID,
//     unique on (document_id, idx)
//   - schema_version: Applied migration versions
//
// Structural metadata columns (word/sentence/paragraph counts, content
// flags) are stored per chunk; heading lists and semantic annotations
// are serialized as JSON text columns. Position fields that can be
// derived from the chunk row itself are reconstructed on read.
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStorage("~/.docchunk/chunks.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	err = store.SaveDocument(ctx, &storage.Document{
//	    ID:        docID,
//	    Source:    "guide.md",
//	    CharCount: len(content),
//	})
//	err = store.SaveChunks(ctx, docID, chunks)
//
// SaveChunks replaces a document's chunk set atomically: the previous
// set stays intact if any insert fails.
//
// # Build Modes
//
// Two SQLite drivers are supported through build tags:
//   - cgosqlite: github.com/mattn/go-sqlite3 (CGO, fastest)
//   - default: modernc.org/sqlite (pure Go, no C compiler needed)
//
// Both share the same schema and behave identically at this layer.
package storage

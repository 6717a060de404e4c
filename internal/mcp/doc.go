// Package mcp implements the Model Context Protocol server exposing the
// document chunking pipeline.
//
// # Tools
//
// chunk_document splits a document into chunks:
//
//	{
//	  "content": "# Guide\n\n...",
//	  "document_id": "guide-v2",
//	  "max_chunk_size": 4000,
//	  "overlap_percentage": 15
//	}
//
// The response carries the document ID, per-chunk spans and overlap
// markers, and aggregate statistics. Pass include_content to get the
// full chunk text back.
//
// get_document returns a stored document's record and chunk spans:
//
//	{ "document_id": "guide-v2" }
//
// get_chunk_stats aggregates statistics over a document's stored chunks.
// get_status reports store-wide counts and database health.
//
// # Error Codes
//
// Tool failures use JSON-RPC style codes:
//
//	-32602  invalid parameters
//	-32603  internal error
//	-32001  document not found
//	-32002  chunk not found
//	-32003  invalid configuration overrides
//	-32004  empty content
//
// # Transport
//
// The server speaks MCP over stdio. stdout is reserved for the protocol;
// all logging goes to stderr.
package mcp

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// chunkDocumentTool returns the tool definition for chunk_document
func chunkDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_document",
		Description: "Split a document into size-bounded chunks with structural boundaries, overlap, and metadata",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Document text to chunk",
				},
				"document_id": map[string]interface{}{
					"type":        "string",
					"description": "Stable document identifier; generated when omitted",
				},
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Origin path or label for the document (informational)",
				},
				"max_chunk_size": map[string]interface{}{
					"type":        "integer",
					"description": "Upper bound on chunk length in characters, including metadata overhead",
					"default":     10000,
				},
				"min_chunk_size": map[string]interface{}{
					"type":        "integer",
					"description": "Soft lower bound on chunk length; the final chunk may fall below it",
					"default":     100,
				},
				"overlap_percentage": map[string]interface{}{
					"type":        "integer",
					"description": "Percentage of each chunk shared with its successor (0-100)",
					"default":     10,
					"minimum":     0,
					"maximum":     100,
				},
				"use_smart_boundaries": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, enrich chunks with summaries, topics, and entities via the configured provider",
					"default":     false,
				},
				"preserve_structure": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, never split inside code fences or tables",
					"default":     true,
				},
				"metadata_overhead": map[string]interface{}{
					"type":        "integer",
					"description": "Characters reserved per chunk for metadata",
					"default":     200,
				},
				"include_content": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, include full chunk text in the response",
					"default":     false,
				},
			},
			Required: []string{"content"},
		},
	}
}

// getDocumentTool returns the tool definition for get_document
func getDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_document",
		Description: "Fetch a chunked document's record and its chunk spans",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"document_id": map[string]interface{}{
					"type":        "string",
					"description": "Document identifier returned by chunk_document",
				},
				"include_content": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, include full chunk text and metadata in the response",
					"default":     false,
				},
			},
			Required: []string{"document_id"},
		},
	}
}

// getChunkStatsTool returns the tool definition for get_chunk_stats
func getChunkStatsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_chunk_stats",
		Description: "Aggregate statistics over a document's stored chunks",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"document_id": map[string]interface{}{
					"type":        "string",
					"description": "Document identifier returned by chunk_document",
				},
			},
			Required: []string{"document_id"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query chunk store statistics and health",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

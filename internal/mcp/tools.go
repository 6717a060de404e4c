package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/docchunk-mcp/internal/pipeline"
	"github.com/dshills/docchunk-mcp/internal/stats"
	"github.com/dshills/docchunk-mcp/internal/storage"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams    = -32602 // Invalid method parameters
	ErrorCodeInternalError    = -32603 // Internal JSON-RPC error
	ErrorCodeDocumentNotFound = -32001 // Document ID not present in the store
	ErrorCodeChunkNotFound    = -32002 // Chunk ID not present in the store
	ErrorCodeInvalidConfig    = -32003 // Configuration overrides failed validation
	ErrorCodeEmptyContent     = -32004 // Content parameter is missing
)

// handleChunkDocument handles the chunk_document tool invocation
func (s *Server) handleChunkDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	raw, present := args["content"]
	if !present {
		return nil, newMCPError(ErrorCodeEmptyContent, "content parameter is required", map[string]interface{}{
			"param":  "content",
			"reason": "missing",
		})
	}
	content, ok := raw.(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "content must be a string", map[string]interface{}{
			"param":  "content",
			"reason": "wrong type",
		})
	}
	// An explicitly empty document is valid input and yields zero chunks

	doc := pipeline.Document{
		ID:      getStringDefault(args, "document_id", ""),
		Source:  getStringDefault(args, "source", ""),
		Content: content,
	}

	overrides := overridesFromArgs(args)
	includeContent := getBoolDefault(args, "include_content", false)

	result, err := s.pipeline.Process(ctx, doc, overrides)
	if err != nil {
		if errors.Is(err, types.ErrInvalidConfig) {
			return nil, newMCPError(ErrorCodeInvalidConfig, "invalid configuration", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil, newMCPError(ErrorCodeInternalError, "chunking failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	chunks := make([]map[string]interface{}, len(result.Chunks))
	for i, c := range result.Chunks {
		entry := map[string]interface{}{
			"id":         c.ID,
			"index":      c.Index,
			"start_char": c.StartChar,
			"end_char":   c.EndChar,
			"size":       len(c.Content),
			"word_count": c.Metadata.WordCount,
		}
		if c.HasOverlapStart() {
			entry["overlap_start"] = c.OverlapStart
		}
		if c.HasOverlapEnd() {
			entry["overlap_end"] = c.OverlapEnd
		}
		if c.Metadata.Summary != "" {
			entry["summary"] = c.Metadata.Summary
		}
		if includeContent {
			entry["content"] = c.Content
		}
		chunks[i] = entry
	}

	response := map[string]interface{}{
		"document_id":  result.DocumentID,
		"total_chunks": len(result.Chunks),
		"chunks":       chunks,
		"stats":        result.Stats,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetDocument handles the get_document tool invocation
func (s *Server) handleGetDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	documentID, ok := args["document_id"].(string)
	if !ok || documentID == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "document_id parameter is required", map[string]interface{}{
			"param":  "document_id",
			"reason": "missing or empty",
		})
	}

	doc, err := s.storage.GetDocument(ctx, documentID)
	if err == storage.ErrNotFound {
		return nil, newMCPError(ErrorCodeDocumentNotFound, "document not found", map[string]interface{}{
			"document_id": documentID,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get document", map[string]interface{}{
			"error": err.Error(),
		})
	}

	chunks, err := s.storage.ListChunks(ctx, documentID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list chunks", map[string]interface{}{
			"error": err.Error(),
		})
	}

	includeContent := getBoolDefault(args, "include_content", false)
	spans := make([]map[string]interface{}, len(chunks))
	for i, c := range chunks {
		entry := map[string]interface{}{
			"id":         c.ID,
			"index":      c.Index,
			"start_char": c.StartChar,
			"end_char":   c.EndChar,
			"size":       len(c.Content),
		}
		if includeContent {
			entry["content"] = c.Content
			entry["metadata"] = c.Metadata
		}
		spans[i] = entry
	}

	response := map[string]interface{}{
		"document": map[string]interface{}{
			"id":          doc.ID,
			"source":      doc.Source,
			"char_count":  doc.CharCount,
			"chunk_count": doc.ChunkCount,
			"chunked_at":  doc.ChunkedAt.Format("2006-01-02T15:04:05Z07:00"),
		},
		"chunks": spans,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetChunkStats handles the get_chunk_stats tool invocation
func (s *Server) handleGetChunkStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	documentID, ok := args["document_id"].(string)
	if !ok || documentID == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "document_id parameter is required", map[string]interface{}{
			"param":  "document_id",
			"reason": "missing or empty",
		})
	}

	if _, err := s.storage.GetDocument(ctx, documentID); err != nil {
		if err == storage.ErrNotFound {
			return nil, newMCPError(ErrorCodeDocumentNotFound, "document not found", map[string]interface{}{
				"document_id": documentID,
			})
		}
		return nil, newMCPError(ErrorCodeInternalError, "failed to get document", map[string]interface{}{
			"error": err.Error(),
		})
	}

	chunks, err := s.storage.ListChunks(ctx, documentID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list chunks", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"document_id": documentID,
		"stats":       stats.Aggregate(chunks),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := s.storage.Status(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"documents_count":     status.DocumentsCount,
		"chunks_count":        status.ChunksCount,
		"database_size_mb":    fmt.Sprintf("%.2f", status.SizeMB),
		"database_accessible": status.DatabaseAccessible,
	}
	if !status.LastChunkedAt.IsZero() {
		response["last_chunked_at"] = status.LastChunkedAt.Format("2006-01-02T15:04:05Z07:00")
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// overridesFromArgs collects optional chunking parameters from tool
// arguments. Absent keys keep the server's base configuration.
func overridesFromArgs(args map[string]interface{}) *types.ConfigOverrides {
	var overrides types.ConfigOverrides
	set := false

	if v, ok := intArg(args, "max_chunk_size"); ok {
		overrides.MaxChunkSize = &v
		set = true
	}
	if v, ok := intArg(args, "min_chunk_size"); ok {
		overrides.MinChunkSize = &v
		set = true
	}
	if v, ok := intArg(args, "overlap_percentage"); ok {
		overrides.OverlapPercentage = &v
		set = true
	}
	if v, ok := args["use_smart_boundaries"].(bool); ok {
		overrides.UseSmartBoundaries = &v
		set = true
	}
	if v, ok := args["preserve_structure"].(bool); ok {
		overrides.PreserveStructure = &v
		set = true
	}
	if v, ok := intArg(args, "metadata_overhead"); ok {
		overrides.MetadataOverhead = &v
		set = true
	}

	if !set {
		return nil
	}
	return &overrides
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// intArg extracts an integer parameter, reporting whether it was present
func intArg(args map[string]interface{}, key string) (int, bool) {
	if val, ok := args[key].(float64); ok {
		return int(val), true
	}
	if val, ok := args[key].(int); ok {
		return val, true
	}
	return 0, false
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docchunk-mcp/internal/enricher"
)

func setupTestServer(t *testing.T) *Server {
	t.Setenv(enricher.EnvProvider, enricher.ProviderNoop)

	server, err := NewServer(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.storage.Close() })
	return server
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func decodeResult(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &decoded))
	return decoded
}

func TestNewServer(t *testing.T) {
	server := setupTestServer(t)

	assert.NotNil(t, server.mcp)
	assert.NotNil(t, server.storage)
	assert.NotNil(t, server.pipeline)
}

func TestChunkDocument(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	result, err := server.handleChunkDocument(ctx, callRequest("chunk_document", map[string]interface{}{
		"content":     "# Title\n\nA short document with a couple of sentences. Nothing fancy.",
		"document_id": "doc-1",
	}))
	require.NoError(t, err)

	response := decodeResult(t, result)
	assert.Equal(t, "doc-1", response["document_id"])
	assert.Equal(t, float64(1), response["total_chunks"])

	chunks := response["chunks"].([]interface{})
	require.Len(t, chunks, 1)
	first := chunks[0].(map[string]interface{})
	assert.NotEmpty(t, first["id"])
	assert.Equal(t, float64(0), first["index"])
	assert.NotContains(t, first, "content", "content omitted by default")

	stats := response["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_chunks"])
}

func TestChunkDocument_GeneratesID(t *testing.T) {
	server := setupTestServer(t)

	result, err := server.handleChunkDocument(context.Background(), callRequest("chunk_document", map[string]interface{}{
		"content": "Some text.",
	}))
	require.NoError(t, err)

	response := decodeResult(t, result)
	assert.NotEmpty(t, response["document_id"])
}

func TestChunkDocument_IncludeContent(t *testing.T) {
	server := setupTestServer(t)

	result, err := server.handleChunkDocument(context.Background(), callRequest("chunk_document", map[string]interface{}{
		"content":         "Some text.",
		"document_id":     "doc-1",
		"include_content": true,
	}))
	require.NoError(t, err)

	response := decodeResult(t, result)
	chunks := response["chunks"].([]interface{})
	first := chunks[0].(map[string]interface{})
	assert.Equal(t, "Some text.", first["content"])
}

func TestChunkDocument_Overrides(t *testing.T) {
	server := setupTestServer(t)

	content := strings.Repeat("A sentence for the test. ", 80) // 2000 chars
	result, err := server.handleChunkDocument(context.Background(), callRequest("chunk_document", map[string]interface{}{
		"content":           content,
		"document_id":       "doc-1",
		"max_chunk_size":    400,
		"metadata_overhead": 100,
	}))
	require.NoError(t, err)

	response := decodeResult(t, result)
	assert.Greater(t, response["total_chunks"], float64(1))
}

func TestChunkDocument_MissingContent(t *testing.T) {
	server := setupTestServer(t)

	_, err := server.handleChunkDocument(context.Background(), callRequest("chunk_document", map[string]interface{}{}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeEmptyContent, mcpErr.Code)
}

func TestChunkDocument_ExplicitEmptyContent(t *testing.T) {
	server := setupTestServer(t)

	// An explicitly empty document is valid and chunks to nothing, the
	// same as calling the pipeline directly
	result, err := server.handleChunkDocument(context.Background(), callRequest("chunk_document", map[string]interface{}{
		"content":     "",
		"document_id": "doc-empty",
	}))
	require.NoError(t, err)

	response := decodeResult(t, result)
	assert.Equal(t, float64(0), response["total_chunks"])
	assert.Empty(t, response["chunks"])
}

func TestChunkDocument_NonStringContent(t *testing.T) {
	server := setupTestServer(t)

	_, err := server.handleChunkDocument(context.Background(), callRequest("chunk_document", map[string]interface{}{
		"content": 42,
	}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestChunkDocument_InvalidOverride(t *testing.T) {
	server := setupTestServer(t)

	_, err := server.handleChunkDocument(context.Background(), callRequest("chunk_document", map[string]interface{}{
		"content":        "Some text.",
		"max_chunk_size": -1,
	}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidConfig, mcpErr.Code)
}

func TestGetDocument(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, err := server.handleChunkDocument(ctx, callRequest("chunk_document", map[string]interface{}{
		"content":     "Stored text for retrieval.",
		"document_id": "doc-1",
		"source":      "notes.md",
	}))
	require.NoError(t, err)

	result, err := server.handleGetDocument(ctx, callRequest("get_document", map[string]interface{}{
		"document_id": "doc-1",
	}))
	require.NoError(t, err)

	response := decodeResult(t, result)
	doc := response["document"].(map[string]interface{})
	assert.Equal(t, "doc-1", doc["id"])
	assert.Equal(t, "notes.md", doc["source"])
	assert.Equal(t, float64(1), doc["chunk_count"])

	chunks := response["chunks"].([]interface{})
	require.Len(t, chunks, 1)
}

func TestGetDocument_NotFound(t *testing.T) {
	server := setupTestServer(t)

	_, err := server.handleGetDocument(context.Background(), callRequest("get_document", map[string]interface{}{
		"document_id": "missing",
	}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeDocumentNotFound, mcpErr.Code)
}

func TestGetDocument_MissingParam(t *testing.T) {
	server := setupTestServer(t)

	_, err := server.handleGetDocument(context.Background(), callRequest("get_document", map[string]interface{}{}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestGetChunkStats(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	content := strings.Repeat("Another sentence here. ", 100)
	_, err := server.handleChunkDocument(ctx, callRequest("chunk_document", map[string]interface{}{
		"content":           content,
		"document_id":       "doc-1",
		"max_chunk_size":    600,
		"metadata_overhead": 100,
	}))
	require.NoError(t, err)

	result, err := server.handleGetChunkStats(ctx, callRequest("get_chunk_stats", map[string]interface{}{
		"document_id": "doc-1",
	}))
	require.NoError(t, err)

	response := decodeResult(t, result)
	assert.Equal(t, "doc-1", response["document_id"])

	stats := response["stats"].(map[string]interface{})
	assert.Greater(t, stats["total_chunks"], float64(1))
	assert.Greater(t, stats["average_chunk_size"], float64(0))
}

func TestGetChunkStats_NotFound(t *testing.T) {
	server := setupTestServer(t)

	_, err := server.handleGetChunkStats(context.Background(), callRequest("get_chunk_stats", map[string]interface{}{
		"document_id": "missing",
	}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeDocumentNotFound, mcpErr.Code)
}

func TestGetStatus(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	result, err := server.handleGetStatus(ctx, callRequest("get_status", map[string]interface{}{}))
	require.NoError(t, err)

	response := decodeResult(t, result)
	assert.Equal(t, float64(0), response["documents_count"])
	assert.Equal(t, true, response["database_accessible"])

	_, err = server.handleChunkDocument(ctx, callRequest("chunk_document", map[string]interface{}{
		"content":     "Text.",
		"document_id": "doc-1",
	}))
	require.NoError(t, err)

	result, err = server.handleGetStatus(ctx, callRequest("get_status", map[string]interface{}{}))
	require.NoError(t, err)

	response = decodeResult(t, result)
	assert.Equal(t, float64(1), response["documents_count"])
	assert.Equal(t, float64(1), response["chunks_count"])
	assert.Contains(t, response, "last_chunked_at")
}

func TestMCPError_Message(t *testing.T) {
	err := newMCPError(ErrorCodeInvalidParams, "bad input", nil)
	assert.Equal(t, "MCP error -32602: bad input", err.Error())
}

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docchunk-mcp/internal/storage"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

func newTestPipeline(t *testing.T, store storage.Storage) *Pipeline {
	p, err := New(types.DefaultConfig(), store, nil, nil)
	require.NoError(t, err)
	return p
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.MaxChunkSize = -1

	_, err := New(cfg, nil, nil, nil)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestProcess_GeneratesDocumentID(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.Process(context.Background(), Document{Content: "Short text."}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, result.DocumentID)
	require.Len(t, result.Chunks, 1)
	assert.Equal(t, result.DocumentID, result.Chunks[0].DocumentID)
}

func TestProcess_KeepsProvidedID(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.Process(context.Background(), Document{ID: "doc-42", Content: "Short text."}, nil)
	require.NoError(t, err)
	assert.Equal(t, "doc-42", result.DocumentID)
}

func TestProcess_EmptyDocument(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.Process(context.Background(), Document{ID: "doc", Content: ""}, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Chunks)
	assert.Zero(t, result.Stats.TotalChunks)
}

func TestProcess_WhitespaceOnlyDocument(t *testing.T) {
	p := newTestPipeline(t, nil)

	// Whitespace-only content is still content and chunks normally
	result, err := p.Process(context.Background(), Document{ID: "doc", Content: "  \n\t "}, nil)
	require.NoError(t, err)
	require.Len(t, result.Chunks, 1)
	assert.Equal(t, "  \n\t ", result.Chunks[0].Content)
	assert.Equal(t, 1, result.Stats.TotalChunks)
}

func TestProcess_FillsMetadataAndStats(t *testing.T) {
	p := newTestPipeline(t, nil)

	content := "# Guide\n\nFirst paragraph of the guide. More detail follows here.\n"
	result, err := p.Process(context.Background(), Document{ID: "doc", Content: content}, nil)
	require.NoError(t, err)
	require.Len(t, result.Chunks, 1)

	md := result.Chunks[0].Metadata
	assert.Greater(t, md.WordCount, 0)
	require.Len(t, md.Headings, 1)
	assert.Equal(t, "Guide", md.Headings[0].Text)

	assert.Equal(t, 1, result.Stats.TotalChunks)
	assert.Equal(t, 1, result.Stats.HeadingCount)
	assert.Equal(t, float64(len(content)), result.Stats.AverageChunkSize)
}

func TestProcess_OverrideApplies(t *testing.T) {
	p := newTestPipeline(t, nil)

	maxSize := 300
	overhead := 100
	overrides := &types.ConfigOverrides{MaxChunkSize: &maxSize, MetadataOverhead: &overhead}

	content := strings.Repeat("Sentence goes here. ", 100) // 2000 chars
	result, err := p.Process(context.Background(), Document{ID: "doc", Content: content}, nil)
	require.NoError(t, err)
	assert.Len(t, result.Chunks, 1, "default budget holds the whole document")

	result, err = p.Process(context.Background(), Document{ID: "doc", Content: content}, overrides)
	require.NoError(t, err)
	assert.Greater(t, len(result.Chunks), 1, "reduced budget forces splitting")
	for _, c := range result.Chunks {
		assert.LessOrEqual(t, len(c.Content), maxSize-overhead)
	}
}

func TestProcess_InvalidOverride(t *testing.T) {
	p := newTestPipeline(t, nil)

	bad := -5
	_, err := p.Process(context.Background(), Document{ID: "doc", Content: "text"},
		&types.ConfigOverrides{MaxChunkSize: &bad})
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestProcess_Persists(t *testing.T) {
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer store.Close()

	p := newTestPipeline(t, store)
	ctx := context.Background()

	content := strings.Repeat("Stored sentence here. ", 30)
	result, err := p.Process(ctx, Document{ID: "doc-1", Source: "a.md", Content: content}, nil)
	require.NoError(t, err)

	doc, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "a.md", doc.Source)
	assert.Equal(t, len(content), doc.CharCount)
	assert.Equal(t, len(result.Chunks), doc.ChunkCount)

	stored, err := store.ListChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Len(t, stored, len(result.Chunks))
}

func TestProcessAll(t *testing.T) {
	p := newTestPipeline(t, nil)

	docs := make([]Document, 8)
	for i := range docs {
		docs[i] = Document{
			ID:      fmt.Sprintf("doc-%d", i),
			Content: fmt.Sprintf("Document %d content with several words.", i),
		}
	}

	results, err := p.ProcessAll(context.Background(), docs, nil)
	require.NoError(t, err)
	require.Len(t, results, len(docs))

	for i, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, docs[i].ID, r.DocumentID, "results keep input order")
	}
}

func TestProcessAll_FirstErrorWins(t *testing.T) {
	p := newTestPipeline(t, nil)

	bad := -5
	docs := []Document{{ID: "a", Content: "text"}, {ID: "b", Content: "text"}}
	_, err := p.ProcessAll(context.Background(), docs, &types.ConfigOverrides{MaxChunkSize: &bad})
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}

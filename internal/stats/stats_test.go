package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	assert.Equal(t, types.ChunkingStats{}, s)

	s = Aggregate([]types.DocumentChunk{})
	assert.Equal(t, types.ChunkingStats{}, s)
}

func TestAggregate(t *testing.T) {
	chunks := []types.DocumentChunk{
		{
			Content: "aaaa",
			Metadata: types.ChunkMetadata{
				Headings:      []types.Heading{{Level: 1, Text: "T"}, {Level: 2, Text: "S"}},
				HasCodeBlocks: true,
				HasLists:      true,
			},
		},
		{
			Content: "bbbbbbbb",
			Metadata: types.ChunkMetadata{
				OverlapWithPrevious: 2,
				HasTables:           true,
			},
		},
		{
			Content: "cc",
			Metadata: types.ChunkMetadata{
				OverlapWithPrevious: 4,
			},
		},
	}

	s := Aggregate(chunks)

	assert.Equal(t, 3, s.TotalChunks)
	assert.InDelta(t, 14.0/3.0, s.AverageChunkSize, 1e-9)
	assert.Equal(t, 2, s.MinChunkSize)
	assert.Equal(t, 8, s.MaxChunkSize)
	assert.Equal(t, 6, s.TotalOverlap)
	assert.InDelta(t, 2.0, s.AverageOverlap, 1e-9)
	assert.Equal(t, 2, s.HeadingCount)
	assert.Equal(t, 1, s.CodeBlockCount)
	assert.Equal(t, 1, s.TableCount)
	assert.Equal(t, 1, s.ListCount)
}

func TestAggregate_SingleChunk(t *testing.T) {
	s := Aggregate([]types.DocumentChunk{{Content: "hello"}})

	assert.Equal(t, 1, s.TotalChunks)
	assert.Equal(t, 5, s.MinChunkSize)
	assert.Equal(t, 5, s.MaxChunkSize)
	assert.InDelta(t, 5.0, s.AverageChunkSize, 1e-9)
	assert.Zero(t, s.TotalOverlap)
}

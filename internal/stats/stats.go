// Package stats aggregates a chunk list into corpus-level statistics for
// observability and test tooling: size distribution, overlap efficiency
// and structural feature counts.
package stats

import "github.com/dshills/docchunk-mcp/pkg/types"

// Aggregate rolls up a chunk list. An empty input returns an all-zero
// struct; there is no division by zero and no error path.
func Aggregate(chunks []types.DocumentChunk) types.ChunkingStats {
	s := types.ChunkingStats{TotalChunks: len(chunks)}
	if len(chunks) == 0 {
		return s
	}

	totalSize := 0
	s.MinChunkSize = len(chunks[0].Content)

	for _, c := range chunks {
		size := len(c.Content)
		totalSize += size
		if size < s.MinChunkSize {
			s.MinChunkSize = size
		}
		if size > s.MaxChunkSize {
			s.MaxChunkSize = size
		}

		s.TotalOverlap += c.Metadata.OverlapWithPrevious
		s.HeadingCount += len(c.Metadata.Headings)
		if c.Metadata.HasCodeBlocks {
			s.CodeBlockCount++
		}
		if c.Metadata.HasTables {
			s.TableCount++
		}
		if c.Metadata.HasLists {
			s.ListCount++
		}
	}

	s.AverageChunkSize = float64(totalSize) / float64(len(chunks))
	s.AverageOverlap = float64(s.TotalOverlap) / float64(len(chunks))
	return s
}

package types

// ChunkingStats is the corpus-level roll-up over a chunk list. All fields
// are zero for an empty chunk list.
type ChunkingStats struct {
	TotalChunks      int     `json:"total_chunks"`
	AverageChunkSize float64 `json:"average_chunk_size"`
	MinChunkSize     int     `json:"min_chunk_size"`
	MaxChunkSize     int     `json:"max_chunk_size"`
	TotalOverlap     int     `json:"total_overlap"`
	AverageOverlap   float64 `json:"average_overlap"`
	HeadingCount     int     `json:"heading_count"`
	CodeBlockCount   int     `json:"code_block_count"`
	TableCount       int     `json:"table_count"`
	ListCount        int     `json:"list_count"`
}

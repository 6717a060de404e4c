package types

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Heading is a markdown heading found inside a chunk.
type Heading struct {
	Level int    `json:"level"` // 1-6, the number of leading '#'
	Text  string `json:"text"`
}

// ChunkMetadata carries the structural, statistical and optional semantic
// annotations computed for a chunk.
type ChunkMetadata struct {
	// Position
	DocumentID  string `json:"document_id"`
	ChunkIndex  int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
	StartPos    int    `json:"start_position"`
	EndPos      int    `json:"end_position"`

	// Content counts
	WordCount      int `json:"word_count"`
	CharacterCount int `json:"character_count"`
	SentenceCount  int `json:"sentence_count"`
	ParagraphCount int `json:"paragraph_count"`

	// Structural flags
	Headings      []Heading `json:"headings,omitempty"`
	HasCodeBlocks bool      `json:"has_code_blocks"`
	HasTables     bool      `json:"has_tables"`
	HasLists      bool      `json:"has_lists"`

	// Semantic fields, set only when enrichment succeeded
	Summary  string   `json:"summary,omitempty"`
	Topics   []string `json:"topics,omitempty"`
	Entities []string `json:"entities,omitempty"`

	// Navigation
	PrevChunkID         string `json:"previous_chunk_id,omitempty"`
	NextChunkID         string `json:"next_chunk_id,omitempty"`
	OverlapWithPrevious int    `json:"overlap_with_previous,omitempty"`
	OverlapWithNext     int    `json:"overlap_with_next,omitempty"`
}

// DocumentChunk is one bounded, overlapping segment of a source document.
// Chunks are created in a single pass and immutable thereafter.
type DocumentChunk struct {
	ID         string
	DocumentID string
	Content    string
	Index      int // 0-based, contiguous

	// Offsets into the source document; the span is [StartChar, EndChar).
	StartChar int
	EndChar   int

	// OverlapStart/OverlapEnd mark the region shared with a neighbor.
	// -1 means absent (first chunk has no leading overlap, last chunk no
	// trailing overlap).
	OverlapStart int
	OverlapEnd   int

	Metadata ChunkMetadata
}

// NewChunkID derives the deterministic chunk identifier for a document
// position. The same document and index always produce the same ID, which
// keeps repeated chunking runs byte-identical.
func NewChunkID(documentID string, index int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", documentID, index)))
	return hex.EncodeToString(sum[:16])
}

// HasOverlapStart reports whether the chunk shares a leading region with
// its predecessor.
func (c *DocumentChunk) HasOverlapStart() bool { return c.OverlapStart >= 0 }

// HasOverlapEnd reports whether the chunk shares a trailing region with
// its successor.
func (c *DocumentChunk) HasOverlapEnd() bool { return c.OverlapEnd >= 0 }

// Validate performs basic integrity checks on the chunk.
func (c *DocumentChunk) Validate() error {
	if c.ID == "" {
		return ErrMissingChunkID
	}
	if c.DocumentID == "" {
		return ErrMissingDocumentID
	}
	if c.Content == "" {
		return ErrEmptyContent
	}
	if c.StartChar < 0 || c.EndChar < c.StartChar {
		return fmt.Errorf("%w: span [%d, %d)", ErrInvalidSpan, c.StartChar, c.EndChar)
	}
	if c.Index < 0 {
		return fmt.Errorf("%w: index %d", ErrInvalidSpan, c.Index)
	}
	return nil
}

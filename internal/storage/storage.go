package storage

import (
	"context"
	"time"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// Storage defines the interface for persisting chunked documents
type Storage interface {
	// Document operations
	SaveDocument(ctx context.Context, doc *Document) error
	GetDocument(ctx context.Context, documentID string) (*Document, error)
	ListDocuments(ctx context.Context) ([]*Document, error)
	DeleteDocument(ctx context.Context, documentID string) error

	// Chunk operations
	SaveChunks(ctx context.Context, documentID string, chunks []types.DocumentChunk) error
	ListChunks(ctx context.Context, documentID string) ([]types.DocumentChunk, error)
	GetChunk(ctx context.Context, chunkID string) (*types.DocumentChunk, error)

	// Status operations
	Status(ctx context.Context) (*StoreStatus, error)

	// Database operations
	Close() error
}

// Document represents a chunked document's record. Content itself is not
// retained; chunks carry the text and the content hash detects drift.
type Document struct {
	ID          string
	Source      string
	ContentHash [32]byte
	CharCount   int
	ChunkCount  int
	ChunkedAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StoreStatus contains statistics about the chunk store
type StoreStatus struct {
	DocumentsCount     int
	ChunksCount        int
	SizeMB             float64
	DatabaseAccessible bool
	LastChunkedAt      time.Time
}

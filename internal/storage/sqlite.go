package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite benefits from single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply migrations
	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Document operations

// saveDocumentWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) saveDocumentWithQuerier(ctx context.Context, q querier, doc *Document) error {
	query := `
		INSERT INTO documents (id, source, content_hash, char_count, chunk_count, chunked_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			content_hash = excluded.content_hash,
			char_count = excluded.char_count,
			chunk_count = excluded.chunk_count,
			chunked_at = excluded.chunked_at,
			updated_at = excluded.updated_at
	`
	now := time.Now()
	if doc.ChunkedAt.IsZero() {
		doc.ChunkedAt = now
	}
	_, err := q.ExecContext(ctx, query,
		doc.ID, doc.Source, doc.ContentHash[:], doc.CharCount,
		doc.ChunkCount, doc.ChunkedAt, now, now)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	doc.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) SaveDocument(ctx context.Context, doc *Document) error {
	return s.saveDocumentWithQuerier(ctx, s.db, doc)
}

func scanDocument(row *sql.Row) (*Document, error) {
	var doc Document
	var hash []byte
	var source sql.NullString
	var chunkedAt sql.NullTime
	err := row.Scan(
		&doc.ID, &source, &hash, &doc.CharCount, &doc.ChunkCount,
		&chunkedAt, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	doc.Source = source.String
	copy(doc.ContentHash[:], hash)
	if chunkedAt.Valid {
		doc.ChunkedAt = chunkedAt.Time
	}
	return &doc, nil
}

func (s *SQLiteStorage) GetDocument(ctx context.Context, documentID string) (*Document, error) {
	query := `
		SELECT id, source, content_hash, char_count, chunk_count, chunked_at, created_at, updated_at
		FROM documents
		WHERE id = ?
	`
	return scanDocument(s.db.QueryRowContext(ctx, query, documentID))
}

func (s *SQLiteStorage) ListDocuments(ctx context.Context) ([]*Document, error) {
	query := `
		SELECT id, source, content_hash, char_count, chunk_count, chunked_at, created_at, updated_at
		FROM documents
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []*Document
	for rows.Next() {
		var doc Document
		var hash []byte
		var source sql.NullString
		var chunkedAt sql.NullTime
		if err := rows.Scan(
			&doc.ID, &source, &hash, &doc.CharCount, &doc.ChunkCount,
			&chunkedAt, &doc.CreatedAt, &doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		doc.Source = source.String
		copy(doc.ContentHash[:], hash)
		if chunkedAt.Valid {
			doc.ChunkedAt = chunkedAt.Time
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

func (s *SQLiteStorage) DeleteDocument(ctx context.Context, documentID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Chunk operations

// SaveChunks replaces a document's chunk set transactionally. Either the
// full new set lands or the previous set remains intact.
func (s *SQLiteStorage) SaveChunks(ctx context.Context, documentID string, chunks []types.DocumentChunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("failed to clear chunks: %w", err)
	}

	for i := range chunks {
		if err := s.insertChunkWithQuerier(ctx, tx, &chunks[i]); err != nil {
			return err
		}
	}

	query := `UPDATE documents SET chunk_count = ?, chunked_at = ?, updated_at = ? WHERE id = ?`
	now := time.Now()
	if _, err := tx.ExecContext(ctx, query, len(chunks), now, now, documentID); err != nil {
		return fmt.Errorf("failed to update document chunk count: %w", err)
	}

	return tx.Commit()
}

// insertChunkWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) insertChunkWithQuerier(ctx context.Context, q querier, chunk *types.DocumentChunk) error {
	headings, err := encodeJSON(chunk.Metadata.Headings)
	if err != nil {
		return fmt.Errorf("failed to encode headings: %w", err)
	}
	topics, err := encodeJSON(chunk.Metadata.Topics)
	if err != nil {
		return fmt.Errorf("failed to encode topics: %w", err)
	}
	entities, err := encodeJSON(chunk.Metadata.Entities)
	if err != nil {
		return fmt.Errorf("failed to encode entities: %w", err)
	}

	query := `
		INSERT INTO chunks (
			id, document_id, idx, content, start_char, end_char,
			overlap_start, overlap_end,
			word_count, sentence_count, paragraph_count,
			has_code_blocks, has_tables, has_lists,
			headings_json, summary, topics_json, entities_json,
			prev_chunk_id, next_chunk_id, overlap_with_previous, overlap_with_next,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	md := &chunk.Metadata
	_, err = q.ExecContext(ctx, query,
		chunk.ID, chunk.DocumentID, chunk.Index, chunk.Content,
		chunk.StartChar, chunk.EndChar, chunk.OverlapStart, chunk.OverlapEnd,
		md.WordCount, md.SentenceCount, md.ParagraphCount,
		md.HasCodeBlocks, md.HasTables, md.HasLists,
		headings, md.Summary, topics, entities,
		md.PrevChunkID, md.NextChunkID, md.OverlapWithPrevious, md.OverlapWithNext,
		time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert chunk %s: %w", chunk.ID, err)
	}
	return nil
}

const chunkColumns = `
	id, document_id, idx, content, start_char, end_char,
	overlap_start, overlap_end,
	word_count, sentence_count, paragraph_count,
	has_code_blocks, has_tables, has_lists,
	headings_json, summary, topics_json, entities_json,
	prev_chunk_id, next_chunk_id, overlap_with_previous, overlap_with_next
`

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChunk(row rowScanner) (*types.DocumentChunk, error) {
	var chunk types.DocumentChunk
	md := &chunk.Metadata
	var headings, topics, entities, summary, prevID, nextID sql.NullString
	err := row.Scan(
		&chunk.ID, &chunk.DocumentID, &chunk.Index, &chunk.Content,
		&chunk.StartChar, &chunk.EndChar, &chunk.OverlapStart, &chunk.OverlapEnd,
		&md.WordCount, &md.SentenceCount, &md.ParagraphCount,
		&md.HasCodeBlocks, &md.HasTables, &md.HasLists,
		&headings, &summary, &topics, &entities,
		&prevID, &nextID, &md.OverlapWithPrevious, &md.OverlapWithNext,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := decodeJSON(headings, &md.Headings); err != nil {
		return nil, fmt.Errorf("failed to decode headings: %w", err)
	}
	if err := decodeJSON(topics, &md.Topics); err != nil {
		return nil, fmt.Errorf("failed to decode topics: %w", err)
	}
	if err := decodeJSON(entities, &md.Entities); err != nil {
		return nil, fmt.Errorf("failed to decode entities: %w", err)
	}
	md.Summary = summary.String
	md.PrevChunkID = prevID.String
	md.NextChunkID = nextID.String

	// Position metadata is derivable and not stored per row
	md.DocumentID = chunk.DocumentID
	md.ChunkIndex = chunk.Index
	md.StartPos = chunk.StartChar
	md.EndPos = chunk.EndChar
	md.CharacterCount = len(chunk.Content)

	return &chunk, nil
}

func (s *SQLiteStorage) ListChunks(ctx context.Context, documentID string) ([]types.DocumentChunk, error) {
	query := "SELECT " + chunkColumns + " FROM chunks WHERE document_id = ? ORDER BY idx"
	rows, err := s.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chunks []types.DocumentChunk
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range chunks {
		chunks[i].Metadata.TotalChunks = len(chunks)
	}
	return chunks, nil
}

func (s *SQLiteStorage) GetChunk(ctx context.Context, chunkID string) (*types.DocumentChunk, error) {
	query := "SELECT " + chunkColumns + " FROM chunks WHERE id = ?"
	chunk, err := scanChunk(s.db.QueryRowContext(ctx, query, chunkID))
	if err != nil {
		return nil, err
	}

	var total int
	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks WHERE document_id = ?", chunk.DocumentID).Scan(&total)
	if err != nil {
		return nil, err
	}
	chunk.Metadata.TotalChunks = total
	return chunk, nil
}

// Status operations

func (s *SQLiteStorage) Status(ctx context.Context) (*StoreStatus, error) {
	status := &StoreStatus{}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&status.DocumentsCount); err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&status.ChunksCount); err != nil {
		return nil, fmt.Errorf("failed to count chunks: %w", err)
	}

	var lastChunked sql.NullTime
	err := s.db.QueryRowContext(ctx,
		"SELECT chunked_at FROM documents WHERE chunked_at IS NOT NULL ORDER BY chunked_at DESC LIMIT 1").Scan(&lastChunked)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to read last chunked time: %w", err)
	}
	if lastChunked.Valid {
		status.LastChunkedAt = lastChunked.Time
	}

	var pageCount, pageSize int64
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err == nil {
		if err := s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err == nil {
			status.SizeMB = float64(pageCount*pageSize) / (1024 * 1024)
		}
	}

	status.DatabaseAccessible = true
	return status, nil
}

func encodeJSON(v interface{}) (sql.NullString, error) {
	switch val := v.(type) {
	case []types.Heading:
		if len(val) == 0 {
			return sql.NullString{}, nil
		}
	case []string:
		if len(val) == 0 {
			return sql.NullString{}, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeJSON(src sql.NullString, dst interface{}) error {
	if !src.Valid || src.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(src.String), dst)
}

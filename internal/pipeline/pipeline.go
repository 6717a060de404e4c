package pipeline

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/docchunk-mcp/internal/chunker"
	"github.com/dshills/docchunk-mcp/internal/enricher"
	"github.com/dshills/docchunk-mcp/internal/markdown"
	"github.com/dshills/docchunk-mcp/internal/metadata"
	"github.com/dshills/docchunk-mcp/internal/stats"
	"github.com/dshills/docchunk-mcp/internal/storage"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

// MaxParallelDocuments bounds concurrent document processing in ProcessAll.
const MaxParallelDocuments = 4

// Document is the pipeline's input unit.
type Document struct {
	ID      string // generated when empty
	Source  string // origin path or label, informational
	Content string
}

// Result carries everything produced for one document.
type Result struct {
	DocumentID string
	Chunks     []types.DocumentChunk
	Stats      types.ChunkingStats
}

// Pipeline runs the full chunk, annotate, persist sequence for documents.
// Storage is optional; with a nil store the pipeline is a pure transform.
type Pipeline struct {
	cfg    types.ChunkingConfig
	pats   *markdown.Patterns
	store  storage.Storage
	enr    enricher.Enricher
	logger *log.Logger
}

// New creates a Pipeline with the given base configuration. store and enr
// may be nil.
func New(cfg types.ChunkingConfig, store storage.Storage, enr enricher.Enricher, logger *log.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		cfg:    cfg,
		pats:   markdown.DefaultPatterns(),
		store:  store,
		enr:    enr,
		logger: logger,
	}, nil
}

// Config returns the pipeline's base configuration.
func (p *Pipeline) Config() types.ChunkingConfig { return p.cfg }

// Process chunks one document, fills metadata, and persists the result
// when a store is configured. overrides adjust the base configuration for
// this call only; nil keeps the base.
func (p *Pipeline) Process(ctx context.Context, doc Document, overrides *types.ConfigOverrides) (*Result, error) {
	cfg, err := p.cfg.With(overrides)
	if err != nil {
		return nil, err
	}

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	engine, err := chunker.New(cfg, p.pats, p.logger)
	if err != nil {
		return nil, err
	}

	chunks := engine.ChunkDocument(doc.ID, doc.Content)

	gen := metadata.NewGenerator(p.pats, p.enr, cfg.UseSmartBoundaries, p.logger)
	gen.Apply(ctx, chunks)

	result := &Result{
		DocumentID: doc.ID,
		Chunks:     chunks,
		Stats:      stats.Aggregate(chunks),
	}

	if p.store != nil {
		if err := p.persist(ctx, doc, chunks); err != nil {
			return nil, err
		}
	}

	p.logger.Info("document processed",
		"document_id", doc.ID, "chars", len(doc.Content), "chunks", len(chunks))
	return result, nil
}

// ProcessAll runs independent documents in parallel. Results keep input
// order. The first failure cancels the remaining work.
func (p *Pipeline) ProcessAll(ctx context.Context, docs []Document, overrides *types.ConfigOverrides) ([]*Result, error) {
	results := make([]*Result, len(docs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(MaxParallelDocuments)
	for i := range docs {
		eg.Go(func() error {
			result, err := p.Process(ctx, docs[i], overrides)
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pipeline) persist(ctx context.Context, doc Document, chunks []types.DocumentChunk) error {
	record := &storage.Document{
		ID:          doc.ID,
		Source:      doc.Source,
		ContentHash: sha256.Sum256([]byte(doc.Content)),
		CharCount:   len(doc.Content),
		ChunkCount:  len(chunks),
	}
	if err := p.store.SaveDocument(ctx, record); err != nil {
		return fmt.Errorf("failed to persist document: %w", err)
	}
	if err := p.store.SaveChunks(ctx, doc.ID, chunks); err != nil {
		return fmt.Errorf("failed to persist chunks: %w", err)
	}
	return nil
}

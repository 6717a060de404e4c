package metadata

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/docchunk-mcp/internal/enricher"
	"github.com/dshills/docchunk-mcp/internal/markdown"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

// MaxInFlightEnrichments bounds concurrent enrichment calls per chunk set.
const MaxInFlightEnrichments = 4

// Generator computes per-chunk metadata: structural counts and flags as
// pure functions over the chunk text, plus optional semantic enrichment
// through an injected capability.
type Generator struct {
	pats     *markdown.Patterns
	enricher enricher.Enricher
	smart    bool
	logger   *log.Logger
}

// NewGenerator creates a Generator. enr may be nil or the no-op provider;
// either way enrichment is skipped silently. smart mirrors the
// UseSmartBoundaries configuration flag.
func NewGenerator(pats *markdown.Patterns, enr enricher.Enricher, smart bool, logger *log.Logger) *Generator {
	if pats == nil {
		pats = markdown.DefaultPatterns()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{pats: pats, enricher: enr, smart: smart, logger: logger}
}

// Structural fills the pure, deterministic metadata fields for content.
// Position and navigation fields already present are left untouched.
func (g *Generator) Structural(md *types.ChunkMetadata, content string) {
	md.WordCount = g.pats.WordCount(content)
	md.CharacterCount = len(content)
	md.SentenceCount = g.pats.SentenceCount(content)
	md.ParagraphCount = g.pats.ParagraphCount(content)

	if marks := g.pats.Headings(content); len(marks) > 0 {
		md.Headings = make([]types.Heading, len(marks))
		for i, m := range marks {
			md.Headings[i] = types.Heading{Level: m.Level, Text: m.Text}
		}
	}

	md.HasCodeBlocks = g.pats.HasCodeBlock(content)
	md.HasTables = g.pats.HasTable(content)
	md.HasLists = g.pats.HasList(content)
}

// Generate fills all metadata for a single chunk, including enrichment
// when enabled. Enrichment failure degrades this one chunk and is never
// returned as an error.
func (g *Generator) Generate(ctx context.Context, chunk *types.DocumentChunk) {
	g.Structural(&chunk.Metadata, chunk.Content)
	g.enrich(ctx, chunk)
}

// Apply fills metadata for every chunk in the slice. Structural fields
// are computed inline; enrichment calls run with bounded concurrency and
// each result lands in its own chunk's slot, so output order never
// depends on completion order.
func (g *Generator) Apply(ctx context.Context, chunks []types.DocumentChunk) {
	for i := range chunks {
		g.Structural(&chunks[i].Metadata, chunks[i].Content)
	}

	if !g.enrichmentEnabled() {
		return
	}

	var eg errgroup.Group
	eg.SetLimit(MaxInFlightEnrichments)
	for i := range chunks {
		eg.Go(func() error {
			g.enrich(ctx, &chunks[i])
			return nil
		})
	}
	// Goroutines never return errors; degradation happens per chunk
	_ = eg.Wait()
}

func (g *Generator) enrichmentEnabled() bool {
	return g.smart && g.enricher != nil && g.enricher.Provider() != enricher.ProviderNoop
}

// enrich performs the best-effort semantic annotation of one chunk.
func (g *Generator) enrich(ctx context.Context, chunk *types.DocumentChunk) {
	if !g.enrichmentEnabled() {
		return
	}

	result, err := g.enricher.Enrich(ctx, chunk.Content)
	if err != nil {
		if errors.Is(err, enricher.ErrNotConfigured) {
			return
		}
		// Degrade this chunk only; chunk production is unaffected
		g.logger.Warn("enrichment degraded",
			"document_id", chunk.DocumentID, "chunk_index", chunk.Index, "err", err)
		return
	}

	chunk.Metadata.Summary = result.Summary
	chunk.Metadata.Topics = result.Topics
	chunk.Metadata.Entities = result.Entities
}

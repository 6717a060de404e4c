package chunker

import (
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/dshills/docchunk-mcp/internal/boundary"
	"github.com/dshills/docchunk-mcp/internal/markdown"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

// Engine partitions documents into bounded, overlapping chunks. An Engine
// is immutable after construction and safe for concurrent use across
// independent documents.
type Engine struct {
	cfg          types.ChunkingConfig
	pats         *markdown.Patterns
	searchWindow int
	logger       *log.Logger
}

// New creates an Engine for the given configuration. Invalid configuration
// is a construction-time error, never clamped.
func New(cfg types.ChunkingConfig, pats *markdown.Patterns, logger *log.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if pats == nil {
		pats = markdown.DefaultPatterns()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		cfg:          cfg,
		pats:         pats,
		searchWindow: types.DefaultSearchWindow,
		logger:       logger,
	}, nil
}

// Config returns the engine's resolved configuration.
func (e *Engine) Config() types.ChunkingConfig { return e.cfg }

// span is a half-open [start, end) slice of the document.
type span struct {
	start int
	end   int
}

// ChunkDocument splits content into an ordered, gap-free (modulo overlap)
// chunk sequence. Empty content yields zero chunks; any non-empty content
// within the effective budget, whitespace included, yields exactly one
// chunk holding the document verbatim.
func (e *Engine) ChunkDocument(documentID, content string) []types.DocumentChunk {
	if content == "" {
		return nil
	}

	budget := e.cfg.EffectiveBudget()
	if len(content) <= budget {
		return e.assemble(documentID, content, []span{{start: 0, end: len(content)}})
	}

	detector := boundary.NewDetector(content, e.pats, e.cfg.PreserveStructure)

	var spans []span
	start := 0
	for start < len(content) {
		if len(content)-start <= budget {
			spans = append(spans, span{start: start, end: len(content)})
			break
		}

		target := start + budget
		b := detector.FindBoundary(target, e.searchWindow)
		if b.IsForced() && b.Confidence == 0 {
			// Structural ambiguity: a long run of undifferentiated text
			// with no natural boundary in the window. Observability only.
			e.logger.Warn("forced boundary in undifferentiated text",
				"document_id", documentID, "position", b.Position)
		}

		end := b.Position
		if end > len(content) {
			end = len(content)
		}
		if end <= start {
			// A candidate at or before the cursor would stall the loop
			end = boundary.SnapToRuneStart(content, target)
			if end > len(content) {
				end = len(content)
			}
			if end <= start {
				// Budget smaller than the rune at the cursor
				_, size := utf8.DecodeRuneInString(content[start:])
				end = start + size
			}
		}
		spans = append(spans, span{start: start, end: end})
		start = e.nextStart(detector, content, start, end)
	}

	if last := spans[len(spans)-1]; last.end-last.start < e.cfg.MinChunkSize {
		e.logger.Warn("trailing chunk below minimum size",
			"document_id", documentID, "size", last.end-last.start,
			"min_chunk_size", e.cfg.MinChunkSize)
	}

	return e.assemble(documentID, content, spans)
}

// nextStart applies the overlap to find where the successor chunk begins.
// The overlap start is never pulled back inside a protected region: that
// would reopen an unmatched fence, so the overlap shrinks instead,
// possibly to zero.
func (e *Engine) nextStart(detector *boundary.Detector, content string, prevStart, prevEnd int) int {
	next, _ := Overlap(prevStart, prevEnd, e.cfg.OverlapPercentage)
	next = boundary.SnapToRuneStart(content, next)
	if r, ok := detector.ProtectedRegionAt(next); ok {
		if r.End <= prevEnd {
			next = r.End
		} else {
			next = prevEnd
		}
	}
	if next <= prevStart {
		next = prevEnd
	}
	return next
}

// assemble turns spans into DocumentChunks with indices, deterministic
// IDs, overlap markers and the position/navigation metadata. Counts and
// semantic fields are filled later by the metadata generator; assembling
// after the full walk keeps TotalChunks exact rather than approximate.
func (e *Engine) assemble(documentID, content string, spans []span) []types.DocumentChunk {
	total := len(spans)
	chunks := make([]types.DocumentChunk, total)

	for i, s := range spans {
		chunks[i] = types.DocumentChunk{
			ID:           types.NewChunkID(documentID, i),
			DocumentID:   documentID,
			Content:      content[s.start:s.end],
			Index:        i,
			StartChar:    s.start,
			EndChar:      s.end,
			OverlapStart: -1,
			OverlapEnd:   -1,
			Metadata: types.ChunkMetadata{
				DocumentID:  documentID,
				ChunkIndex:  i,
				TotalChunks: total,
				StartPos:    s.start,
				EndPos:      s.end,
			},
		}
	}

	for i := range chunks {
		if i > 0 {
			prev := &chunks[i-1]
			lead := prev.EndChar - chunks[i].StartChar
			if lead > 0 {
				chunks[i].OverlapStart = chunks[i].StartChar
				chunks[i].Metadata.OverlapWithPrevious = lead
				prev.OverlapEnd = prev.EndChar
				prev.Metadata.OverlapWithNext = lead
			}
			chunks[i].Metadata.PrevChunkID = prev.ID
			prev.Metadata.NextChunkID = chunks[i].ID
		}
	}

	return chunks
}

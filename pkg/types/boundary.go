package types

// BoundaryKind classifies how structurally meaningful a split point is.
type BoundaryKind string

const (
	BoundarySection   BoundaryKind = "section"
	BoundaryParagraph BoundaryKind = "paragraph"
	BoundarySentence  BoundaryKind = "sentence"
	BoundaryForced    BoundaryKind = "forced"
)

// Boundary confidence weights. Section headings outrank paragraph breaks,
// which outrank sentence ends; a forced cut carries no confidence.
const (
	ConfidenceSection   = 1.0
	ConfidenceParagraph = 0.8
	ConfidenceSentence  = 0.6
	ConfidenceForced    = 0.0
)

// ChunkBoundary is a candidate character offset at which one chunk ends
// and the next begins.
type ChunkBoundary struct {
	Position   int
	Kind       BoundaryKind
	Confidence float64 // in [0, 1]
}

// IsForced reports whether the boundary was not chosen from natural
// candidates: either a protected-region cut (confidence 1) or a fallback
// cut at the target position (confidence 0).
func (b ChunkBoundary) IsForced() bool { return b.Kind == BoundaryForced }

package boundary

import (
	"sort"
	"unicode/utf8"

	"github.com/dshills/docchunk-mcp/internal/markdown"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

// DefaultSearchWindow bounds how far from the target position the natural
// boundary search looks, in characters.
const DefaultSearchWindow = types.DefaultSearchWindow

// Detector finds chunk boundaries in a single document. It scans the
// document once at construction (protected regions plus all natural
// boundary candidates) so that FindBoundary stays a pure lookup over
// immutable state. A Detector is safe for concurrent use.
type Detector struct {
	text    string
	length  int
	regions []markdown.Region

	sections   []int
	paragraphs []int
	sentences  []int
}

// NewDetector scans text and builds a detector for it. When
// preserveStructure is false, protected regions are ignored and only
// natural boundaries apply.
func NewDetector(text string, pats *markdown.Patterns, preserveStructure bool) *Detector {
	d := &Detector{text: text, length: len(text)}

	if preserveStructure {
		d.regions = append(d.regions, pats.FenceRegions(text)...)
		d.regions = append(d.regions, pats.TableRegions(text)...)
		sort.Slice(d.regions, func(i, j int) bool {
			return d.regions[i].Start < d.regions[j].Start
		})
	}

	for _, h := range pats.Headings(text) {
		d.sections = append(d.sections, h.Offset)
	}
	d.paragraphs = pats.ParagraphBreaks(text)
	d.sentences = pats.SentenceEnds(text)

	return d
}

// ProtectedRegionAt returns the protected region strictly containing pos,
// if any. When nested or overlapping regions contain pos, the one
// extending furthest wins, so a forced boundary never lands inside
// another region.
func (d *Detector) ProtectedRegionAt(pos int) (markdown.Region, bool) {
	var best markdown.Region
	found := false
	for _, r := range d.regions {
		if r.Start > pos {
			break
		}
		if r.Contains(pos) && (!found || r.End > best.End) {
			best = r
			found = true
		}
	}
	return best, found
}

// FindBoundary finds the best place to end the current chunk near target.
//
// A protected region containing the target always wins: the boundary is
// forced to the region end with confidence 1. Otherwise candidates within
// [target-window, target+window] are scored as confidence*1000 minus the
// distance to target, highest score wins, exact ties going to the
// earliest candidate in scan order. With no usable candidate the boundary
// falls back to the target itself with confidence 0.
func (d *Detector) FindBoundary(target, window int) types.ChunkBoundary {
	if window <= 0 {
		window = DefaultSearchWindow
	}
	if target > d.length {
		target = d.length
	}

	if r, ok := d.ProtectedRegionAt(target); ok {
		end := r.End
		if end > d.length {
			end = d.length
		}
		return types.ChunkBoundary{Position: end, Kind: types.BoundaryForced, Confidence: 1.0}
	}

	lo := target - window
	if lo < 0 {
		lo = 0
	}
	hi := target + window
	if hi > d.length {
		hi = d.length
	}

	// Natural candidates and region ends come from line- and
	// ASCII-anchored scans, so only the raw target offset can split a
	// multibyte rune.
	forced := SnapToRuneStart(d.text, target)

	best := types.ChunkBoundary{Position: forced, Kind: types.BoundaryForced, Confidence: types.ConfidenceForced}
	bestScore := 0.0
	found := false

	consider := func(pos int, kind types.BoundaryKind, confidence float64) {
		if pos < lo || pos > hi {
			return
		}
		// A natural candidate strictly inside a protected region would
		// split the region even though the target sits outside it.
		if _, protected := d.ProtectedRegionAt(pos); protected {
			return
		}
		score := confidence*1000 - abs(pos-target)
		if !found || score > bestScore {
			best = types.ChunkBoundary{Position: pos, Kind: kind, Confidence: confidence}
			bestScore = score
			found = true
		}
	}

	for _, pos := range inRange(d.sections, lo, hi) {
		consider(pos, types.BoundarySection, types.ConfidenceSection)
	}
	for _, pos := range inRange(d.paragraphs, lo, hi) {
		consider(pos, types.BoundaryParagraph, types.ConfidenceParagraph)
	}
	for _, pos := range inRange(d.sentences, lo, hi) {
		consider(pos, types.BoundarySentence, types.ConfidenceSentence)
	}

	if !found || best.Position > target+window {
		return types.ChunkBoundary{Position: forced, Kind: types.BoundaryForced, Confidence: types.ConfidenceForced}
	}
	return best
}

// SnapToRuneStart moves pos back to the start of the rune it falls
// inside, so a byte-offset boundary never splits a multibyte character.
// Positions at rune starts, 0, or len(text) are returned unchanged.
func SnapToRuneStart(text string, pos int) int {
	for pos > 0 && pos < len(text) && !utf8.RuneStart(text[pos]) {
		pos--
	}
	return pos
}

// inRange returns the slice of sorted positions falling within [lo, hi].
func inRange(positions []int, lo, hi int) []int {
	start := sort.SearchInts(positions, lo)
	end := sort.SearchInts(positions, hi+1)
	return positions[start:end]
}

func abs(n int) float64 {
	if n < 0 {
		n = -n
	}
	return float64(n)
}

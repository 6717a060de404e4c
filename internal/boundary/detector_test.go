package boundary

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docchunk-mcp/internal/markdown"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

func newDetector(text string) *Detector {
	return NewDetector(text, markdown.DefaultPatterns(), true)
}

func TestFindBoundary_SectionPreferred(t *testing.T) {
	// A sentence boundary sits nearby, but the heading must win
	text := "text. more words here\n## Heading\nmore text after the heading"
	d := newDetector(text)

	headingPos := strings.Index(text, "## Heading")
	b := d.FindBoundary(headingPos+5, 200)

	assert.Equal(t, types.BoundarySection, b.Kind)
	assert.Equal(t, headingPos, b.Position)
	assert.InDelta(t, 1.0, b.Confidence, 1e-9)
}

func TestFindBoundary_ParagraphOverSentence(t *testing.T) {
	text := "First sentence. Second sentence.\n\nNew paragraph starts here and runs on"
	d := newDetector(text)

	paraPos := strings.Index(text, "New paragraph")
	b := d.FindBoundary(paraPos+3, 200)

	assert.Equal(t, types.BoundaryParagraph, b.Kind)
	assert.Equal(t, paraPos, b.Position)
	assert.InDelta(t, 0.8, b.Confidence, 1e-9)
}

func TestFindBoundary_SentenceFallback(t *testing.T) {
	text := "Alpha beta gamma. Delta epsilon zeta eta theta iota kappa"
	d := newDetector(text)

	sentencePos := strings.Index(text, ".") + 1
	b := d.FindBoundary(sentencePos+10, 200)

	assert.Equal(t, types.BoundarySentence, b.Kind)
	assert.Equal(t, sentencePos, b.Position)
	assert.InDelta(t, 0.6, b.Confidence, 1e-9)
}

func TestFindBoundary_ForcedInsideCodeFence(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Intro paragraph before the code.\n\n```go\n")
	for i := 0; i < 20; i++ {
		sb.WriteString("fmt.Println(\"line\")\n")
	}
	sb.WriteString("```\nText after the fence continues here.\n")
	text := sb.String()

	d := newDetector(text)
	fenceEnd := strings.Index(text, "Text after")

	// Target in the middle of the fence body
	target := strings.Index(text, "```go") + 100
	b := d.FindBoundary(target, 200)

	assert.Equal(t, types.BoundaryForced, b.Kind)
	assert.InDelta(t, 1.0, b.Confidence, 1e-9)
	assert.Equal(t, fenceEnd, b.Position)
}

func TestFindBoundary_ForcedInsideTable(t *testing.T) {
	text := "before\n\n| h1 | h2 |\n|----|----|\n| a  | b  |\n| c  | d  |\nafter the table\n"
	d := newDetector(text)

	target := strings.Index(text, "| a")
	b := d.FindBoundary(target+2, 200)

	assert.Equal(t, types.BoundaryForced, b.Kind)
	assert.InDelta(t, 1.0, b.Confidence, 1e-9)
	assert.Equal(t, strings.Index(text, "after"), b.Position)
}

func TestFindBoundary_StructureDisabled(t *testing.T) {
	text := "before\n\n```\ncode. body text here\n```\n\nafter\n"
	d := NewDetector(text, markdown.DefaultPatterns(), false)

	target := strings.Index(text, "body")
	b := d.FindBoundary(target, 200)

	// Without structure preservation the fence does not force anything;
	// the nearest natural boundary wins instead
	assert.Equal(t, types.BoundaryParagraph, b.Kind)
	assert.Equal(t, strings.Index(text, "```"), b.Position)
}

func TestFindBoundary_NoCandidates(t *testing.T) {
	text := strings.Repeat("x", 2000)
	d := newDetector(text)

	b := d.FindBoundary(1000, 200)

	assert.Equal(t, types.BoundaryForced, b.Kind)
	assert.Equal(t, 1000, b.Position)
	assert.Zero(t, b.Confidence)
}

func TestFindBoundary_WindowExcludesFarCandidates(t *testing.T) {
	// The only sentence end is 500 chars before the target, outside a
	// 200-char window
	text := "Short. " + strings.Repeat("y", 1500)
	d := newDetector(text)

	b := d.FindBoundary(700, 200)

	assert.Equal(t, types.BoundaryForced, b.Kind)
	assert.Equal(t, 700, b.Position)
	assert.Zero(t, b.Confidence)
}

func TestFindBoundary_TargetPastEnd(t *testing.T) {
	text := "Tiny text."
	d := newDetector(text)

	b := d.FindBoundary(5000, 200)
	assert.LessOrEqual(t, b.Position, len(text))
}

func TestFindBoundary_Deterministic(t *testing.T) {
	text := "One sentence. Another one.\n\n## Head\n\nMore. Text. Here.\n\n```\nfence\n```\ntail"
	d := newDetector(text)

	for _, target := range []int{5, 15, 25, 35, 45, 60} {
		first := d.FindBoundary(target, 200)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, d.FindBoundary(target, 200))
		}
	}
}

func TestProtectedRegionAt(t *testing.T) {
	text := "aa\n```\ncode\n```\nbb\n"
	d := newDetector(text)

	inside := strings.Index(text, "code")
	r, ok := d.ProtectedRegionAt(inside)
	require.True(t, ok)
	assert.Equal(t, markdown.RegionCodeFence, r.Kind)

	_, ok = d.ProtectedRegionAt(0)
	assert.False(t, ok)
}

func TestSnapToRuneStart(t *testing.T) {
	text := "aéb"

	tests := []struct {
		name string
		pos  int
		want int
	}{
		{"start", 0, 0},
		{"rune start", 1, 1},
		{"mid rune", 2, 1},
		{"after rune", 3, 3},
		{"end", len(text), len(text)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SnapToRuneStart(text, tt.pos))
		})
	}
}

func TestFindBoundary_ForcedSnapsMidRune(t *testing.T) {
	// No natural boundaries anywhere, so the target offset itself becomes
	// the forced position; an odd target lands inside a two-byte rune
	text := strings.Repeat("é", 100)
	d := newDetector(text)

	b := d.FindBoundary(101, 50)

	assert.Equal(t, types.BoundaryForced, b.Kind)
	assert.Equal(t, 100, b.Position)
	assert.True(t, utf8.RuneStart(text[b.Position]))
}

package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFenceRegions_Paired(t *testing.T) {
	pats := DefaultPatterns()

	text := "intro\n```go\nfunc main() {}\n```\noutro\n"
	regions := pats.FenceRegions(text)

	require.Len(t, regions, 1)
	assert.Equal(t, RegionCodeFence, regions[0].Kind)
	assert.Equal(t, strings.Index(text, "```go"), regions[0].Start)
	// Region ends just past the closing fence line, newline included
	assert.Equal(t, strings.Index(text, "outro"), regions[0].End)
}

func TestFenceRegions_Unclosed(t *testing.T) {
	pats := DefaultPatterns()

	text := "before\n```\nnever closed"
	regions := pats.FenceRegions(text)

	require.Len(t, regions, 1)
	assert.Equal(t, len(text), regions[0].End)
}

func TestFenceRegions_Multiple(t *testing.T) {
	pats := DefaultPatterns()

	text := "```\na\n```\nmiddle\n```\nb\n```\n"
	regions := pats.FenceRegions(text)

	require.Len(t, regions, 2)
	assert.Less(t, regions[0].End, regions[1].Start)
}

func TestFenceRegions_None(t *testing.T) {
	pats := DefaultPatterns()
	assert.Empty(t, pats.FenceRegions("plain text, no fences"))
}

func TestTableRegions(t *testing.T) {
	pats := DefaultPatterns()

	text := "before\n| a | b |\n|---|---|\n| 1 | 2 |\nafter\n"
	regions := pats.TableRegions(text)

	require.Len(t, regions, 1)
	assert.Equal(t, RegionTable, regions[0].Kind)
	assert.Equal(t, strings.Index(text, "| a"), regions[0].Start)
	assert.Equal(t, strings.Index(text, "after"), regions[0].End)
}

func TestTableRegions_SingleRowIgnored(t *testing.T) {
	pats := DefaultPatterns()

	// A lone pipe-delimited line is not a table
	text := "text with | pipe | row |\nbut only one line\n"
	assert.Empty(t, pats.TableRegions("| a | b |\nplain\n"))
	assert.Empty(t, pats.TableRegions(text))
}

func TestRegionContains(t *testing.T) {
	r := Region{Start: 10, End: 20}

	assert.False(t, r.Contains(10), "start edge is a legal split point")
	assert.False(t, r.Contains(20), "end edge is a legal split point")
	assert.True(t, r.Contains(11))
	assert.True(t, r.Contains(19))
	assert.False(t, r.Contains(5))
}

func TestHeadings(t *testing.T) {
	pats := DefaultPatterns()

	text := "# Title\n\nbody\n\n### Sub Section\nmore\n"
	heads := pats.Headings(text)

	require.Len(t, heads, 2)
	assert.Equal(t, 1, heads[0].Level)
	assert.Equal(t, "Title", heads[0].Text)
	assert.Equal(t, 0, heads[0].Offset)
	assert.Equal(t, 3, heads[1].Level)
	assert.Equal(t, "Sub Section", heads[1].Text)
	assert.Equal(t, strings.Index(text, "### "), heads[1].Offset)
}

func TestHeadings_RequiresSpaceAfterHashes(t *testing.T) {
	pats := DefaultPatterns()
	assert.Empty(t, pats.Headings("#hashtag but not a heading\n"))
	assert.Empty(t, pats.Headings("####### seven hashes is not a heading\n"))
}

func TestParagraphBreaks(t *testing.T) {
	pats := DefaultPatterns()

	text := "first paragraph.\n\nsecond paragraph.\n\nthird."
	breaks := pats.ParagraphBreaks(text)

	require.Len(t, breaks, 2)
	assert.Equal(t, strings.Index(text, "second"), breaks[0])
	assert.Equal(t, strings.Index(text, "third"), breaks[1])
}

func TestSentenceEnds(t *testing.T) {
	pats := DefaultPatterns()

	text := "One. Two! Three? Four"
	ends := pats.SentenceEnds(text)

	require.Len(t, ends, 3)
	// Offset is right after the punctuation mark
	assert.Equal(t, strings.Index(text, ".")+1, ends[0])
	assert.Equal(t, strings.Index(text, "!")+1, ends[1])
	assert.Equal(t, strings.Index(text, "?")+1, ends[2])
}

func TestSentenceEnds_RequiresWhitespace(t *testing.T) {
	pats := DefaultPatterns()
	assert.Empty(t, pats.SentenceEnds("version 1.2.3rc4"))
}

func TestStructuralFlags(t *testing.T) {
	pats := DefaultPatterns()

	assert.True(t, pats.HasCodeBlock("```\nx\n```"))
	assert.False(t, pats.HasCodeBlock("plain"))

	assert.True(t, pats.HasTable("| a | b |\n| 1 | 2 |\n"))
	assert.False(t, pats.HasTable("plain"))

	assert.True(t, pats.HasList("- item one\n- item two\n"))
	assert.True(t, pats.HasList("1. first\n2. second\n"))
	assert.True(t, pats.HasList("* starred\n"))
	assert.False(t, pats.HasList("no list here\n"))
	assert.False(t, pats.HasList("2 + 2 * 3 = 8\n"))
}

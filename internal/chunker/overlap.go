package chunker

import "math"

// OverlapLength computes the configured overlap length for a chunk span,
// round((spanLen * percentage) / 100), clamped to [0, spanLen].
func OverlapLength(spanLen, percentage int) int {
	if spanLen <= 0 || percentage <= 0 {
		return 0
	}
	length := int(math.Round(float64(spanLen) * float64(percentage) / 100.0))
	if length < 0 {
		length = 0
	}
	if length > spanLen {
		length = spanLen
	}
	return length
}

// Overlap computes the region shared between a chunk spanning
// [prevStart, prevEnd) and its successor: [overlapStart, overlapEnd) with
// overlapEnd = prevEnd. The successor begins at overlapStart.
func Overlap(prevStart, prevEnd, percentage int) (overlapStart, overlapEnd int) {
	length := OverlapLength(prevEnd-prevStart, percentage)
	return prevEnd - length, prevEnd
}

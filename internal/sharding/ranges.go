package sharding

import (
	"fmt"
	"math"
)

// Range is a half-open index interval [Start, End) over an ordered file list.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Partition divides [0, length) into n contiguous ranges with evenly
// interpolated boundaries. Boundary i sits at round(length*i/n), so ranges
// differ in size by at most one element and the final boundary is exactly
// length. n must be at least 1; length may be zero, in which case every range
// is empty.
func Partition(length, n int) ([]Range, error) {
	if n < 1 {
		return nil, fmt.Errorf("partition count must be at least 1, got %d", n)
	}
	if length < 0 {
		return nil, fmt.Errorf("partition length must be non-negative, got %d", length)
	}

	ranges := make([]Range, n)
	prev := 0
	for i := 1; i <= n; i++ {
		boundary := int(math.Round(float64(length) * float64(i) / float64(n)))
		ranges[i-1] = Range{Start: prev, End: boundary}
		prev = boundary
	}
	return ranges, nil
}

// Subdivide partitions r into n contiguous sub-ranges using the same
// interpolation rule as Partition, offset by r.Start.
func Subdivide(r Range, n int) ([]Range, error) {
	inner, err := Partition(r.Len(), n)
	if err != nil {
		return nil, err
	}
	for i := range inner {
		inner[i].Start += r.Start
		inner[i].End += r.Start
	}
	return inner, nil
}

package interval

import (
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func New(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

func (iv Interval) Empty() bool {
	return !iv.End.After(iv.Start)
}

func (iv Interval) Duration() time.Duration {
	if iv.Empty() {
		return 0
	}
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether the two ranges share any instant.
// Touching ranges ([09:00,10:00) and [10:00,11:00)) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether other lies entirely inside iv.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

// Intersect returns the common part of both ranges and false when there is none.
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	start := iv.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := iv.End
	if other.End.Before(end) {
		end = other.End
	}
	out := Interval{Start: start, End: end}
	if out.Empty() {
		return Interval{}, false
	}
	return out, true
}

// Union merges overlapping and touching ranges and returns them ordered by start.
// Empty ranges are dropped. The input slice is not modified.
func Union(ivs []Interval) []Interval {
	sorted := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if !iv.Empty() {
			sorted = append(sorted, iv)
		}
	}
	if len(sorted) == 0 {
		return []Interval{}
	}

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	out := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &out[len(out)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// Subtract removes every cut range from base. A cut covering a whole range
// drops it, a partial cut trims it and an interior cut splits it in two.
func Subtract(base []Interval, cuts []Interval) []Interval {
	remaining := Union(base)
	for _, cut := range Union(cuts) {
		next := make([]Interval, 0, len(remaining)+1)
		for _, iv := range remaining {
			if !iv.Overlaps(cut) {
				next = append(next, iv)
				continue
			}
			if iv.Start.Before(cut.Start) {
				next = append(next, Interval{Start: iv.Start, End: cut.Start})
			}
			if cut.End.Before(iv.End) {
				next = append(next, Interval{Start: cut.End, End: iv.End})
			}
		}
		remaining = next
	}
	return remaining
}

// ContainedBy reports whether target fits entirely inside one of the ranges.
func ContainedBy(ivs []Interval, target Interval) bool {
	for _, iv := range ivs {
		if iv.Contains(target) {
			return true
		}
	}
	return false
}

// OverlapsAny reports whether target overlaps at least one of the ranges.
func OverlapsAny(ivs []Interval, target Interval) bool {
	for _, iv := range ivs {
		if iv.Overlaps(target) {
			return true
		}
	}
	return false
}

package finance

import "sort"

// Band is one {min, max, value} row of a lookup grid. Value is a leasing
// coefficient or a commission rate percentage depending on the table.
type Band struct {
	Min   int64
	Max   int64
	Value float64
}

// RangeTable is a sorted list of bands with a closest-match lookup. It backs
// both leaser coefficient grids and commission rate tiers.
type RangeTable struct {
	bands []Band
}

// NewRangeTable copies and sorts the bands by Min ascending.
func NewRangeTable(bands []Band) *RangeTable {
	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })
	return &RangeTable{bands: sorted}
}

// Empty reports whether the table has no bands at all.
func (t *RangeTable) Empty() bool {
	return len(t.bands) == 0
}

// Lookup returns the value of the first band containing amount.
func (t *RangeTable) Lookup(amount int64) (float64, bool) {
	for _, b := range t.bands {
		if amount >= b.Min && amount <= b.Max {
			return b.Value, true
		}
	}
	return 0, false
}

// HighestValue returns the largest band value, used as the overflow fallback
// when an amount exceeds every band. Ties break to the first band found.
func (t *RangeTable) HighestValue() (float64, bool) {
	if len(t.bands) == 0 {
		return 0, false
	}
	best := t.bands[0].Value
	for _, b := range t.bands[1:] {
		if b.Value > best {
			best = b.Value
		}
	}
	return best, true
}

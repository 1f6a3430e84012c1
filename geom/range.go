package geom

// Range is a closed 1-D interval along one axis.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Degenerate ranges (Min >= Max) carry no length and are never kept.
func (r Range) Degenerate() bool {
	return r.Min >= r.Max
}

func (r Range) Len() float64 {
	if r.Degenerate() {
		return 0
	}
	return r.Max - r.Min
}

// Overlaps is the point-free overlap test against [lo, hi]: touching at a
// single coordinate does not count.
func (r Range) Overlaps(lo, hi float64) bool {
	return r.Min < hi && lo < r.Max
}

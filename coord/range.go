package coord

// Range is the min/max excursion observed on a single axis.
// The zero value is undefined until the first Observe call.
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Defined bool    `json:"defined"`
}

// Observe widens the range to include v. The first value observed
// defines both bounds.
func (r Range) Observe(v float64) Range {
	if !r.Defined {
		return Range{Min: v, Max: v, Defined: true}
	}
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

// Union widens the range to cover b.
func (r Range) Union(b Range) Range {
	if !b.Defined {
		return r
	}
	return r.Observe(b.Min).Observe(b.Max)
}

// Span is the total distance between the bounds.
func (r Range) Span() float64 {
	if !r.Defined {
		return 0
	}
	return r.Max - r.Min
}

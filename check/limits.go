package check

// Limits are the advisory thresholds the checks compare against.
// Machine envelopes vary, so exceeding them warns rather than fails.
type Limits struct {
	// MaxTravel is the largest coordinate magnitude, in mm, that
	// is considered within a typical machine envelope.
	MaxTravel float64

	// MaxFeed is the feed rate, in mm/min, above which a warning
	// is raised.
	MaxFeed float64
}

// DefaultLimits returns the stock thresholds: 1000mm travel,
// 10000 mm/min feed.
func DefaultLimits() Limits {
	return Limits{
		MaxTravel: 1000,
		MaxFeed:   10000,
	}
}

package location

// RatingSummary is the mean comment rating of a location.
type RatingSummary struct {
	Average float64
	Count   int
}

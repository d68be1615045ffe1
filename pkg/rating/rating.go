// Package rating maps in-handler processing time to a coarse connection
// speed tier.
//
// This is a proxy metric: it measures how long the server spent handling the
// request, not network round-trip or throughput. The tiers are deliberately
// wide and the thresholds fixed.
package rating

import "time"

// Rating is one of six ordered speed tiers.
type Rating struct {
	Speed          string
	Score          int
	Emoji          string
	Recommendation string
}

var tiers = []struct {
	below  time.Duration
	rating Rating
}{
	{50 * time.Millisecond, Rating{"SUPER FAST", 100, "🚀", "Excellent — suitable for gaming, video calls and 4K streaming."}},
	{100 * time.Millisecond, Rating{"VERY FAST", 90, "⚡", "Great connection — handles streaming and calls without issues."}},
	{200 * time.Millisecond, Rating{"FAST", 75, "✨", "Good connection — fine for everyday browsing and HD video."}},
	{400 * time.Millisecond, Rating{"NORMAL", 60, "👌", "Average — browsing is fine, video may buffer occasionally."}},
	{800 * time.Millisecond, Rating{"SLOW", 40, "🐢", "Slow — expect delays; close background downloads if possible."}},
}

var slowest = Rating{"VERY SLOW", 20, "🐌", "Very slow — check your connection or move closer to your router."}

// FromElapsed buckets an elapsed duration into its tier. Boundaries are
// strict upper bounds: 49ms rates SUPER FAST, 50ms rates VERY FAST.
func FromElapsed(elapsed time.Duration) Rating {
	for _, t := range tiers {
		if elapsed < t.below {
			return t.rating
		}
	}
	return slowest
}

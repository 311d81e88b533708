package searcher

import "math"

// uct scores a child for selection: q + C*sqrt(ln(N)/n). An unvisited child
// scores +Inf once its parent has been visited more than once, so every
// sibling is tried before any is exploited. On the parent's first visit
// (ln(N) = 0) it scores q.
func uct(q float64, visits int, lnN float64) float64 {
	if visits == 0 {
		if lnN > 0 {
			return math.Inf(1)
		}
		return q
	}
	return q + C*math.Sqrt(lnN/float64(visits))
}

package neural

// Stance thresholds on the value head's scalar score. Below the defensive
// floor a bot should hold ships back; above the winning line it can press.
const (
	DefensiveScore = 0.35
	WinningScore   = 0.65
)

// ValueToScalar blends a value head's [win, draw, loss] probabilities into a
// single score in [0,1] from the viewer's perspective. A draw counts as half
// a win, matching the adjudication used in self-play.
func ValueToScalar(v [3]float32) float32 {
	return v[0] + 0.5*v[1]
}

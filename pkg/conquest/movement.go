package conquest

import "math"

// HazardChance is the per-leg probability that an in-transit fleet is
// destroyed outright. Losses are all-or-nothing; there are no partial hits.
const HazardChance = 0.02

// CumulativeLossChance returns the probability of losing a fleet at least
// once over a journey of d legs, each leg rolling independently at
// HazardChance. Planning aid only; actual movement rolls per leg.
func CumulativeLossChance(d int) float64 {
	if d <= 0 {
		return 0
	}
	return 1 - math.Pow(1-HazardChance, float64(d))
}

// processMovement advances every in-flight fleet one leg, in fleet creation
// order. Each fleet independently survives its hazard roll or is removed
// whole. Fleets that finish their journey merge into the destination's
// stationed count and mark it visited for their owner.
func processMovement(w *World) ([]HyperspaceLossEvent, []ArrivalEvent) {
	var losses []HyperspaceLossEvent
	var arrivals []ArrivalEvent

	survivors := w.Fleets[:0]
	for _, f := range w.Fleets {
		if w.rng.Float64() < HazardChance {
			losses = append(losses, HyperspaceLossEvent{
				Turn:    w.Turn,
				FleetID: f.ID,
				Owner:   f.Owner,
				Ships:   f.Ships,
				From:    f.From,
				To:      f.To,
			})
			w.logger.Debug().
				Str("player", string(f.Owner)).
				Int("fleet", f.ID).
				Int("ships", f.Ships).
				Str("to", f.To).
				Msg("fleet lost in hyperspace")
			continue
		}

		if f.Remaining > 0 {
			f.Remaining--
		}
		if f.Remaining > 0 {
			survivors = append(survivors, f)
			continue
		}

		dest := w.SystemByID(f.To)
		dest.AddShips(f.Owner, f.Ships)
		w.Player(f.Owner).Visited[f.To] = true
		arrivals = append(arrivals, ArrivalEvent{
			Turn:    w.Turn,
			FleetID: f.ID,
			Owner:   f.Owner,
			Ships:   f.Ships,
			From:    f.From,
			To:      f.To,
		})
	}
	w.Fleets = survivors
	return losses, arrivals
}

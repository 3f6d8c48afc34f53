package conquest

import "fmt"

// validateOrders checks one player's batch against the live world and returns
// the orders that may execute plus the per-order rejections. Individually bad
// orders are dropped one by one; over-committing an origin (the batch asking
// for more ships than are stationed there) drops every order from that origin
// with a single error, since there is no principled way to pick which of them
// the player wanted most.
func validateOrders(w *World, p Player, orders []Order) ([]Order, []*OrderError) {
	var errs []*OrderError
	var sound []Order
	for _, o := range orders {
		if msg := checkOrder(w, p, o); msg != "" {
			errs = append(errs, &OrderError{Player: p, Order: o, Message: msg})
			continue
		}
		sound = append(sound, o)
	}

	requested := make(map[string]int)
	for _, o := range sound {
		requested[o.From] += o.Ships
	}
	over := make(map[string]bool)
	for _, o := range sound {
		if over[o.From] {
			continue
		}
		if have := w.SystemByID(o.From).Ships(p); requested[o.From] > have {
			over[o.From] = true
			errs = append(errs, &OrderError{
				Player: p,
				Order:  o,
				Message: fmt.Sprintf("%d ships ordered from %s but only %d stationed",
					requested[o.From], o.From, have),
			})
		}
	}
	if len(over) == 0 {
		return sound, errs
	}

	valid := sound[:0]
	for _, o := range sound {
		if !over[o.From] {
			valid = append(valid, o)
		}
	}
	return valid, errs
}

// checkOrder returns a rejection message for a single order, or "" if it is
// acceptable on its own (batch-level over-commitment is checked separately).
func checkOrder(w *World, p Player, o Order) string {
	from := w.SystemByID(o.From)
	if from == nil {
		return fmt.Sprintf("unknown origin system %q", o.From)
	}
	if w.SystemByID(o.To) == nil {
		return fmt.Sprintf("unknown destination system %q", o.To)
	}
	if from.Owner != p {
		return fmt.Sprintf("origin %s is not under your control", o.From)
	}
	if o.Ships <= 0 {
		return fmt.Sprintf("ship count must be positive, got %d", o.Ships)
	}
	return ""
}

// applyOrder deducts ships from the origin and launches a fleet. The order
// must already have passed validation.
func (w *World) applyOrder(p Player, o Order) *Fleet {
	from := w.SystemByID(o.From)
	to := w.SystemByID(o.To)
	from.AddShips(p, -o.Ships)

	f := &Fleet{
		ID:        w.nextFleetID,
		Owner:     p,
		Ships:     o.Ships,
		From:      o.From,
		To:        o.To,
		Remaining: Dist(from.Pos, to.Pos),
		Rationale: o.Rationale,
	}
	w.nextFleetID++
	w.Fleets = append(w.Fleets, f)

	w.logger.Debug().
		Str("player", string(p)).
		Str("from", o.From).
		Str("to", o.To).
		Int("ships", o.Ships).
		Int("distance", f.Remaining).
		Msg("fleet launched")
	return f
}

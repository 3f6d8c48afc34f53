package conquest

// RebellionChance is the probability that an under-garrisoned captured
// system rises up on a given turn.
const RebellionChance = 0.5

// processRebellion rolls for uprisings, in system ID order, at every
// player-held system garrisoned below its base resource value. Home systems
// never roll; they are immune regardless of garrison. Rebels spawn equal to
// the resource value and fight the garrison with the standard formula, the
// garrison defending. Rebel win or tie reverts the system to neutral control
// with the rebel survivors as its garrison.
//
// Rebellion runs entirely before production each turn, so a garrison that is
// only adequate counting this turn's production still counts as exposed.
func processRebellion(w *World) []RebellionEvent {
	var events []RebellionEvent
	for _, sys := range w.Systems {
		if sys.Owner == Neutral || w.IsHome(sys.ID) {
			continue
		}
		garrison := sys.Ships(sys.Owner)
		if garrison >= sys.Resource {
			continue
		}
		if w.rng.Float64() >= RebellionChance {
			continue
		}

		owner := sys.Owner
		rebels := sys.Resource
		rebelsLeft, garrisonLeft := resolveCombat(rebels, garrison)

		ev := RebellionEvent{
			Turn:           w.Turn,
			System:         sys.ID,
			Owner:          owner,
			GarrisonBefore: garrison,
			Rebels:         rebels,
		}
		if garrisonLeft > 0 {
			// Garrison held; the system stays in play and still produces.
			sys.SetShips(owner, garrisonLeft)
			ev.GarrisonAfter = garrisonLeft
			ev.Suppressed = true
		} else {
			sys.SetShips(owner, 0)
			sys.Owner = Neutral
			sys.Garrison = rebelsLeft
			ev.GarrisonAfter = rebelsLeft
		}
		events = append(events, ev)

		w.logger.Debug().
			Str("system", sys.ID).
			Str("owner", string(owner)).
			Int("garrison", garrison).
			Int("rebels", rebels).
			Bool("suppressed", ev.Suppressed).
			Msg("rebellion")
	}
	return events
}

// processProduction adds ships at every system still under player control:
// the home production constant at homes, the base resource value elsewhere.
func processProduction(w *World) {
	for _, sys := range w.Systems {
		if sys.Owner == Neutral {
			continue
		}
		if w.IsHome(sys.ID) {
			sys.AddShips(sys.Owner, HomeProduction)
		} else {
			sys.AddShips(sys.Owner, sys.Resource)
		}
	}
}

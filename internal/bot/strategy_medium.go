package bot

import (
	"github.com/freeeve/quiet-conquest/pkg/conquest"
)

// ExpansionStrategy grabs the most valuable reachable neutral systems as fast
// as production allows. It is fully deterministic: the same view always
// produces the same orders, which makes it a stable baseline opponent.
type ExpansionStrategy struct{}

func (ExpansionStrategy) Name() string { return "medium" }

func (ExpansionStrategy) Orders(v *conquest.PlayerView, p conquest.Player) []conquest.Order {
	free := spareShips(v, p)
	if len(free) == 0 {
		return nil
	}

	// Systems an in-flight fleet is already headed for.
	inbound := make(map[string]bool, len(v.Fleets))
	for i := range v.Fleets {
		inbound[v.Fleets[i].To] = true
	}

	opp := p.Opponent()
	claimed := make(map[string]bool)
	var orders []conquest.Order
	for i := range v.Systems {
		src := &v.Systems[i]
		budget := free[src.ID]
		if budget < 1 {
			continue
		}

		// Best unclaimed target this source can afford to take.
		var best *conquest.SystemView
		var bestScore float64
		for j := range v.Systems {
			dst := &v.Systems[j]
			if dst.ID == src.ID || dst.Owner == p || inbound[dst.ID] || claimed[dst.ID] {
				continue
			}
			if dst.Owner == opp {
				// Expansion only; picking fights is the tactical bot's job.
				continue
			}
			need := garrisonEstimate(dst) + 1
			if need > budget {
				continue
			}
			value := 1.5 // unknown systems are worth a look
			if dst.Known {
				value = float64(dst.Resource)
			}
			score := value / float64(1+Distance(src.Pos, dst.Pos))
			if best == nil || score > bestScore {
				best, bestScore = dst, score
			}
		}
		if best == nil {
			continue
		}
		orders = append(orders, conquest.Order{
			From:      src.ID,
			To:        best.ID,
			Ships:     garrisonEstimate(best) + 1,
			Rationale: "expand",
		})
		claimed[best.ID] = true
	}
	return orders
}

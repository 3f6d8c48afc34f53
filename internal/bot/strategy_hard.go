package bot

import (
	"sort"

	"github.com/freeeve/quiet-conquest/pkg/conquest"
)

// reinforceThreshold is the home-front threat level above which the tactical
// bot starts pulling spare ships back instead of spending them on attacks.
const reinforceThreshold = 3.0

// candidateMove is one scored option for a single origin system.
type candidateMove struct {
	from  string
	to    string
	ships int
	score float64
	tag   string
}

// TacticalStrategy scores every (origin, target) pair it can afford, then
// greedily commits the best ones: probes to chart unknown systems, sized
// assaults on known enemy holdings, expansion to neutrals, and consolidation
// toward whichever owned system is under the most pressure.
type TacticalStrategy struct{}

func (TacticalStrategy) Name() string { return "hard" }

func (TacticalStrategy) Orders(v *conquest.PlayerView, p conquest.Player) []conquest.Order {
	budget := spareShips(v, p)
	if len(budget) == 0 {
		return nil
	}

	inbound := make(map[string]bool, len(v.Fleets))
	for i := range v.Fleets {
		inbound[v.Fleets[i].To] = true
	}

	var cands []candidateMove
	for i := range v.Systems {
		src := &v.Systems[i]
		if budget[src.ID] < 1 {
			continue
		}
		for j := range v.Systems {
			dst := &v.Systems[j]
			if dst.ID == src.ID || dst.Owner == p || inbound[dst.ID] {
				continue
			}
			d := Distance(src.Pos, dst.Pos)
			survival := 1 - conquest.CumulativeLossChance(d)

			var c candidateMove
			switch {
			case !dst.Known:
				// One ship buys chart data and a permanent view of the
				// system, even if it dies on arrival.
				c = candidateMove{from: src.ID, to: dst.ID, ships: 1, score: 2.0, tag: "probe"}
			case dst.Owner == conquest.Neutral:
				c = candidateMove{
					from:  src.ID,
					to:    dst.ID,
					ships: shipsToTake(dst.Garrison, dst.Resource),
					score: 3.0 * float64(dst.Resource),
					tag:   "expand",
				}
			default:
				c = candidateMove{
					from:  src.ID,
					to:    dst.ID,
					ships: shipsToTake(dst.Theirs, dst.Resource),
					score: 3.0*float64(dst.Resource) + 2.0,
					tag:   "assault",
				}
				if dst.Resource == conquest.HomeResource {
					// Neutral resource values top out below the home
					// value, so a full-value enemy system is their home.
					c.score += 10.0
				}
			}
			if c.ships > budget[src.ID] {
				continue
			}
			c.score = c.score*survival/float64(1+d) + botFloat64()*0.25
			cands = append(cands, c)
		}
	}

	// Shuffle before the stable sort so equally scored candidates do not
	// always resolve in board order.
	botShuffle(len(cands), func(i, j int) { cands[i], cands[j] = cands[j], cands[i] })
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })

	taken := make(map[string]bool)
	var orders []conquest.Order
	for _, c := range cands {
		if taken[c.to] || c.ships > budget[c.from] {
			continue
		}
		budget[c.from] -= c.ships
		taken[c.to] = true
		orders = append(orders, conquest.Order{From: c.from, To: c.to, Ships: c.ships, Rationale: c.tag})
	}

	// Consolidation: when one of our systems is under real pressure, route
	// leftover ships there instead of leaving them idle.
	var hot *conquest.SystemView
	var hotThreat float64
	for i := range v.Systems {
		sv := &v.Systems[i]
		if sv.Owner != p {
			continue
		}
		if t := SystemThreat(v, sv); t > hotThreat {
			hot, hotThreat = sv, t
		}
	}
	if hot != nil && hotThreat > reinforceThreshold {
		for i := range v.Systems {
			src := &v.Systems[i]
			left := budget[src.ID]
			if left < 2 || src.ID == hot.ID {
				continue
			}
			orders = append(orders, conquest.Order{From: src.ID, To: hot.ID, Ships: left, Rationale: "reinforce"})
			budget[src.ID] = 0
		}
	}

	return orders
}

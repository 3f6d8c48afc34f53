package bot

import (
	"github.com/freeeve/quiet-conquest/pkg/conquest"
)

// Strategy generates one player's order batch for the current turn. The view
// is the only input: strategies see exactly what a player would.
type Strategy interface {
	Name() string
	Orders(v *conquest.PlayerView, p conquest.Player) []conquest.Order
}

// GonnxModelPath is the directory containing policy.onnx and value.onnx used
// by the "neural" difficulty. Set this at startup (e.g. from an environment
// variable) before creating strategies.
var GonnxModelPath string

// StrategyForDifficulty returns the appropriate strategy for a bot difficulty level.
func StrategyForDifficulty(difficulty string) Strategy {
	switch difficulty {
	case "hold":
		return &HoldStrategy{}
	case "medium":
		return &ExpansionStrategy{}
	case "hard":
		return &TacticalStrategy{}
	case "neural", "gonnx":
		return newGonnxOrFallback()
	default:
		return &RandomStrategy{}
	}
}

// --- HoldStrategy ---

// HoldStrategy never launches a fleet. Useful as a punching bag in tests and
// as a baseline opponent.
type HoldStrategy struct{}

func (HoldStrategy) Name() string { return "hold" }

func (HoldStrategy) Orders(_ *conquest.PlayerView, _ conquest.Player) []conquest.Order {
	return nil
}

// --- RandomStrategy ---

// RandomStrategy launches random but legal fleets: every batch it emits
// respects the per-origin ship budget, so the engine accepts all of it.
type RandomStrategy struct{}

func (RandomStrategy) Name() string { return "easy" }

func (RandomStrategy) Orders(v *conquest.PlayerView, p conquest.Player) []conquest.Order {
	var orders []conquest.Order
	committed := make(map[string]int)
	for i := range v.Systems {
		sys := &v.Systems[i]
		if sys.Owner != p {
			continue
		}
		free := sys.Mine - committed[sys.ID]
		if free < 2 {
			continue
		}
		if botFloat64() < 0.4 {
			continue
		}

		// Shuffle destinations and take the first that is not already ours.
		perm := botPerm(len(v.Systems))
		for _, idx := range perm {
			dst := &v.Systems[idx]
			if dst.ID == sys.ID || dst.Owner == p {
				continue
			}
			// Leave at least one ship stationed.
			ships := 1 + botIntn(free-1)
			orders = append(orders, conquest.Order{
				From:      sys.ID,
				To:        dst.ID,
				Ships:     ships,
				Rationale: "probe",
			})
			committed[sys.ID] += ships
			break
		}
	}
	return orders
}

package conquest

import (
	"errors"
	"fmt"
)

// ErrGameOver is returned when ExecuteTurn is called on a decided world.
var ErrGameOver = errors.New("game already decided")

// TurnResult aggregates everything one ExecuteTurn call produced.
type TurnResult struct {
	Turn        int
	Events      EventLog
	OrderErrors map[Player][]*OrderError
	Outcome     Outcome
}

// ExecuteTurn runs one full turn in fixed phase order: validate and apply
// orders, movement, combat, victory check, rebellion, production. No phase is
// ever skipped or reordered. Rejected orders are reported on the result, not
// as an error; the error return is reserved for structural problems that end
// the game instance. The caller must not mutate the world while a turn is in
// progress.
func (w *World) ExecuteTurn(orders map[Player][]Order) (*TurnResult, error) {
	if w.Outcome.Decided() {
		return nil, fmt.Errorf("turn %d: %w (%s)", w.Turn, ErrGameOver, w.Outcome)
	}

	w.Turn++
	res := &TurnResult{
		Turn:        w.Turn,
		OrderErrors: make(map[Player][]*OrderError),
	}

	for _, p := range AllPlayers() {
		valid, errs := validateOrders(w, p, orders[p])
		if len(errs) > 0 {
			res.OrderErrors[p] = errs
			for _, e := range errs {
				w.logger.Debug().Str("player", string(p)).Str("order", e.Order.Describe()).
					Str("reason", e.Message).Msg("order rejected")
			}
		}
		for _, o := range valid {
			w.applyOrder(p, o)
		}
	}

	losses, arrivals := processMovement(w)
	combats := processCombat(w, arrivals)

	outcome, err := checkVictory(w)
	if err != nil {
		return nil, err
	}
	w.Outcome = outcome
	if outcome.Decided() {
		w.logger.Info().Int("turn", w.Turn).Str("outcome", string(outcome)).Msg("game decided")
	}

	rebellions := processRebellion(w)
	processProduction(w)

	res.Events = EventLog{
		Combat:     combats,
		Hyperspace: losses,
		Arrivals:   arrivals,
		Rebellions: rebellions,
	}
	res.Outcome = outcome

	w.LastTurn = res.Events
	w.History.append(res.Events)
	return res, nil
}

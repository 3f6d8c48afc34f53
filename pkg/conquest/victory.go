package conquest

import "fmt"

// checkVictory inspects home ownership after combat. Capturing the
// opponent's home wins the game; both homes falling in the same turn is a
// draw. The check is a pure function of current ownership and is idempotent.
func checkVictory(w *World) (Outcome, error) {
	homeA := w.Home(PlayerA)
	homeB := w.Home(PlayerB)
	if homeA == nil || homeB == nil {
		return OutcomeOpen, fmt.Errorf("conquest: world is missing a home system (alpha=%v beta=%v)",
			homeA != nil, homeB != nil)
	}

	aWins := homeB.Owner == PlayerA
	bWins := homeA.Owner == PlayerB
	switch {
	case aWins && bWins:
		return OutcomeDraw, nil
	case aWins:
		return OutcomeFor(PlayerA), nil
	case bWins:
		return OutcomeFor(PlayerB), nil
	}
	return OutcomeOpen, nil
}

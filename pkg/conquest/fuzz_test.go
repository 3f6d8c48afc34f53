package conquest

import (
	"math/rand"
	"testing"
)

// FuzzExecuteTurn verifies turn resolution never panics and keeps force
// accounting consistent under random order streams.
func FuzzExecuteTurn(f *testing.F) {
	f.Add(int64(42), uint8(8))
	f.Add(int64(123456), uint8(20))
	f.Add(int64(0), uint8(3))
	f.Add(int64(-7), uint8(30))

	f.Fuzz(func(t *testing.T, seed int64, turns uint8) {
		w, err := GenerateMap(seed)
		if err != nil {
			t.Fatal(err)
		}
		rng := rand.New(rand.NewSource(seed ^ int64(turns)))

		for i := 0; i < int(turns%32); i++ {
			if w.Outcome.Decided() {
				break
			}
			if _, err := w.ExecuteTurn(randomOrders(rng, w)); err != nil {
				t.Fatal(err)
			}
			checkForceAccounting(t, w)
		}
	})
}

// randomOrders builds an order batch from whatever each player currently
// holds, mixed with deliberately bad orders the validator must absorb.
func randomOrders(rng *rand.Rand, w *World) map[Player][]Order {
	orders := make(map[Player][]Order)
	for _, p := range AllPlayers() {
		var batch []Order
		for _, sys := range w.SystemsOf(p) {
			if sys.Ships(p) == 0 || rng.Intn(2) == 0 {
				continue
			}
			to := w.Systems[rng.Intn(len(w.Systems))]
			batch = append(batch, Order{
				From:  sys.ID,
				To:    to.ID,
				Ships: rng.Intn(sys.Ships(p)*2) + 1, // sometimes over-committed
			})
		}
		if rng.Intn(4) == 0 {
			batch = append(batch, Order{From: "?", To: "!", Ships: -1})
		}
		orders[p] = batch
	}
	return orders
}

func checkForceAccounting(t *testing.T, w *World) {
	t.Helper()
	for _, sys := range w.Systems {
		if sys.Garrison < 0 || sys.ShipsA < 0 || sys.ShipsB < 0 {
			t.Fatalf("negative forces at %s: %+v", sys.ID, sys)
		}
		if sys.ShipsA > 0 && sys.ShipsB > 0 {
			t.Fatalf("both players stationed at %s after resolution: %+v", sys.ID, sys)
		}
		if sys.Owner != Neutral && sys.Garrison != 0 {
			t.Fatalf("player-held %s still has a neutral garrison of %d", sys.ID, sys.Garrison)
		}
		if sys.Owner == Neutral && (sys.ShipsA > 0 || sys.ShipsB > 0) {
			t.Fatalf("neutral %s holds stationed ships: %+v", sys.ID, sys)
		}
	}
	for _, fl := range w.Fleets {
		if fl.Ships <= 0 {
			t.Fatalf("empty fleet in flight: %+v", fl)
		}
		if fl.Remaining < 0 {
			t.Fatalf("fleet overshot its destination: %+v", fl)
		}
	}
}

// FuzzDecodeCFEN verifies the decoder never panics and that anything it
// accepts re-encodes to a stable canonical form.
func FuzzDecodeCFEN(f *testing.F) {
	f.Add(fixtureCFEN)
	f.Add("0o/7/A0.0.4a0.10.0,R11.9.4b0.0.10/a6.AR.3/aA.A,bR.R")
	f.Add("")
	f.Add("////")
	f.Add("0o/0/-/-/-")
	f.Add("12d/-3/A0.0.4n2.0.0/-/aA.,bA.")

	f.Fuzz(func(t *testing.T, s string) {
		w, err := DecodeCFEN(s)
		if err != nil {
			return
		}
		canonical := EncodeCFEN(w)
		again, err := DecodeCFEN(canonical)
		if err != nil {
			t.Fatalf("canonical form rejected: %v\n%s", err, canonical)
		}
		if EncodeCFEN(again) != canonical {
			t.Fatalf("canonical encode is not a fixed point:\n%s\n%s", canonical, EncodeCFEN(again))
		}
	})
}

package conquest

import "testing"

func TestView_UnvisitedSystemsStayHidden(t *testing.T) {
	w := testWorld(1)
	v := w.View(PlayerA)

	if len(v.Systems) != 5 {
		t.Fatalf("chart should list every system, got %d", len(v.Systems))
	}
	for _, id := range []string{"F", "K", "M", "R"} {
		sv := v.System(id)
		if sv == nil {
			t.Fatalf("system %s missing from view", id)
		}
		if sv.Known {
			t.Errorf("%s should be hidden", id)
		}
		if sv.Owner != Neutral || sv.Resource != 0 || sv.Garrison != 0 || sv.Mine != 0 || sv.Theirs != 0 {
			t.Errorf("%s leaks state while hidden: %+v", id, sv)
		}
		// Chart data is public even for hidden systems.
		if sv.Name == "" || !sv.Pos.InBounds() {
			t.Errorf("%s should keep its public chart data: %+v", id, sv)
		}
	}
}

func TestView_HomeIsKnownFromTheStart(t *testing.T) {
	w := testWorld(1)
	sv := w.View(PlayerA).System("A")
	if !sv.Known {
		t.Fatal("own home should be visible")
	}
	if sv.Owner != PlayerA || sv.Resource != HomeResource || sv.Mine != 10 {
		t.Errorf("home view fields: %+v", sv)
	}
}

func TestView_ReadsLiveState(t *testing.T) {
	w := testWorld(1)
	w.Player(PlayerA).Visited["K"] = true

	if got := w.View(PlayerA).System("K").Garrison; got != 3 {
		t.Fatalf("garrison: got %d, want 3", got)
	}

	// No snapshotting: a later view sees later truth.
	w.SystemByID("K").Garrison = 7
	if got := w.View(PlayerA).System("K").Garrison; got != 7 {
		t.Errorf("view should track the live world, got %d", got)
	}
}

func TestView_OwnershipImpliesKnowledge(t *testing.T) {
	w := testWorld(1)
	f := w.SystemByID("F")
	f.Owner = PlayerA
	f.Garrison = 0
	f.ShipsA = 4

	sv := w.View(PlayerA).System("F")
	if !sv.Known {
		t.Fatal("owned systems are always visible")
	}
	if sv.Mine != 4 || sv.Theirs != 0 {
		t.Errorf("stationed counts: %+v", sv)
	}
}

func TestView_OnlyOwnFleetsListed(t *testing.T) {
	w := testWorld(1)
	launch(w, PlayerA, 3, "A", "K", 5)
	launch(w, PlayerB, 6, "R", "K", 6)

	va := w.View(PlayerA)
	if len(va.Fleets) != 1 {
		t.Fatalf("alpha should see 1 fleet, got %d", len(va.Fleets))
	}
	fv := va.Fleets[0]
	if fv.Ships != 3 || fv.From != "A" || fv.To != "K" || fv.Remaining != 5 {
		t.Errorf("fleet view fields: %+v", fv)
	}

	vb := w.View(PlayerB)
	if len(vb.Fleets) != 1 || vb.Fleets[0].Ships != 6 {
		t.Errorf("beta should see only its own fleet: %+v", vb.Fleets)
	}
}

func TestView_ArrivalGrantsLastingVisibility(t *testing.T) {
	w := testWorld(1)
	launch(w, PlayerA, 5, "A", "F", 1)

	if _, err := w.ExecuteTurn(nil); err != nil {
		t.Fatal(err)
	}

	sv := w.View(PlayerA).System("F")
	if !sv.Known {
		t.Fatal("arrival should reveal the system")
	}
	// 5 attackers beat the garrison of 2 losing 1, then the captured
	// system produces its resource value of 2.
	if sv.Owner != PlayerA || sv.Mine != 6 || sv.Garrison != 0 {
		t.Errorf("post-capture view: %+v", sv)
	}
}

func TestView_Meta(t *testing.T) {
	w := testWorld(1)
	w.Turn = 4
	w.Outcome = OutcomeFor(PlayerB)

	v := w.View(PlayerA)
	if v.Player != PlayerA || v.Turn != 4 || v.Outcome != OutcomeFor(PlayerB) || v.Home != "A" {
		t.Errorf("view meta: %+v", v)
	}
	if v.System("Z") != nil {
		t.Error("unknown id should return nil")
	}
}

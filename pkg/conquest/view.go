package conquest

// SystemView is what one player can see of a system. Position and name are
// public chart data; everything else is withheld until the system is known.
type SystemView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Pos   Coord  `json:"pos"`
	Known bool   `json:"known"`

	// Populated only when Known.
	Owner    Player `json:"owner,omitempty"`
	Resource int    `json:"resource,omitempty"`
	Garrison int    `json:"garrison,omitempty"`
	Mine     int    `json:"mine,omitempty"`   // viewer's stationed ships
	Theirs   int    `json:"theirs,omitempty"` // opponent's stationed ships
}

// FleetView describes one of the viewer's own in-flight fleets. Enemy fleets
// are never visible.
type FleetView struct {
	ID        int    `json:"id"`
	Ships     int    `json:"ships"`
	From      string `json:"from"`
	To        string `json:"to"`
	Remaining int    `json:"remaining"`
}

// PlayerView is the fog-of-war-filtered picture of the world for one player.
// Knowledge is gated only by the visited set: once a player's fleet has
// reached a system, its live state stays readable forever. Views read
// current truth at call time; nothing is snapshotted.
type PlayerView struct {
	Player  Player       `json:"player"`
	Turn    int          `json:"turn"`
	Outcome Outcome      `json:"outcome,omitempty"`
	Home    string       `json:"home"`
	Systems []SystemView `json:"systems"` // all systems in ID order
	Fleets  []FleetView  `json:"fleets,omitempty"`
}

// View computes p's current view of the world.
func (w *World) View(p Player) *PlayerView {
	ps := w.Player(p)
	v := &PlayerView{
		Player:  p,
		Turn:    w.Turn,
		Outcome: w.Outcome,
		Systems: make([]SystemView, 0, len(w.Systems)),
	}
	if ps != nil {
		v.Home = ps.Home
	}

	for _, sys := range w.Systems {
		sv := SystemView{
			ID:   sys.ID,
			Name: sys.Name,
			Pos:  sys.Pos,
		}
		if ps != nil && (ps.Visited[sys.ID] || sys.Owner == p) {
			sv.Known = true
			sv.Owner = sys.Owner
			sv.Resource = sys.Resource
			sv.Garrison = sys.Garrison
			sv.Mine = sys.Ships(p)
			sv.Theirs = sys.Ships(p.Opponent())
		}
		v.Systems = append(v.Systems, sv)
	}

	for _, f := range w.Fleets {
		if f.Owner != p {
			continue
		}
		v.Fleets = append(v.Fleets, FleetView{
			ID:        f.ID,
			Ships:     f.Ships,
			From:      f.From,
			To:        f.To,
			Remaining: f.Remaining,
		})
	}
	return v
}

// System returns the view entry for the given system id, or nil.
func (v *PlayerView) System(id string) *SystemView {
	for i := range v.Systems {
		if v.Systems[i].ID == id {
			return &v.Systems[i]
		}
	}
	return nil
}

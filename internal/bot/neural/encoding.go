package neural

import "github.com/freeeve/quiet-conquest/pkg/conquest"

// Normalization divisors. Ship counts have no hard cap, so they are scaled
// against a typical mid-game stack rather than a true maximum.
const (
	shipNorm     = 20.0
	garrisonNorm = 10.0
	maxDist      = conquest.GridWidth - 1
)

// EncodeView encodes a player's view into a flat [NumSystems*NumFeatures]
// float32 array (row-major), indexed by SystemIndex. Fog is preserved: the
// row of an unknown system stays zero apart from the viewer's own
// inbound-fleet channels, so the network never sees hidden state.
func EncodeView(v *conquest.PlayerView) []float32 {
	t := make([]float32, NumSystems*NumFeatures)
	opp := v.Player.Opponent()

	for i := range v.Systems {
		sv := &v.Systems[i]
		idx := SystemIndex(sv.ID)
		if idx < 0 || !sv.Known {
			continue
		}
		base := idx * NumFeatures
		t[base+FeatKnown] = 1
		switch sv.Owner {
		case v.Player:
			t[base+FeatOwner] = 1
		case opp:
			t[base+FeatOwner+1] = 1
		default:
			t[base+FeatOwner+2] = 1
		}
		t[base+FeatResource] = float32(sv.Resource) / float32(conquest.HomeResource)
		t[base+FeatGarrison] = float32(sv.Garrison) / garrisonNorm
		t[base+FeatMine] = float32(sv.Mine) / shipNorm
		t[base+FeatTheirs] = float32(sv.Theirs) / shipNorm
		t[base+FeatPos] = float32(sv.Pos.X) / float32(conquest.GridWidth-1)
		t[base+FeatPos+1] = float32(sv.Pos.Y) / float32(conquest.GridHeight-1)
		if sv.ID == v.Home {
			t[base+FeatHome] = 1
		}
	}

	// Own in-flight fleets land in the destination row whether or not the
	// destination itself has been visited yet.
	for i := range v.Fleets {
		f := &v.Fleets[i]
		idx := SystemIndex(f.To)
		if idx < 0 {
			continue
		}
		base := idx * NumFeatures
		t[base+FeatInbound] += float32(f.Ships) / shipNorm
		eta := 1 - float32(f.Remaining)/maxDist
		if eta > t[base+FeatInboundETA] {
			t[base+FeatInboundETA] = eta
		}
	}

	return t
}

// BuildDistanceMatrix returns the flat [NumSystems*NumSystems] matrix of
// travel distances between system positions, scaled by the board's maximum
// distance. Positions are public chart data, so both viewers produce the
// same matrix for a given board.
func BuildDistanceMatrix(v *conquest.PlayerView) []float32 {
	m := make([]float32, NumSystems*NumSystems)
	for i := range v.Systems {
		ai := SystemIndex(v.Systems[i].ID)
		if ai < 0 {
			continue
		}
		for j := range v.Systems {
			bi := SystemIndex(v.Systems[j].ID)
			if bi < 0 {
				continue
			}
			m[ai*NumSystems+bi] = float32(conquest.Dist(v.Systems[i].Pos, v.Systems[j].Pos)) / maxDist
		}
	}
	return m
}

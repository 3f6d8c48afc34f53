package neural

import "github.com/freeeve/quiet-conquest/pkg/conquest"

// NumSystems is the total number of systems on a generated board: two homes
// plus the fixed neutral count.
const NumSystems = 2 + conquest.NeutralSystemCount

// NumFeatures is the number of features per system in the board tensor.
const NumFeatures = 13

// NumPlayers is the number of players.
const NumPlayers = 2

// Feature offset constants. All features are viewer-relative so one network
// plays either side.
const (
	FeatKnown      = 0  // 1 when the system is visible to the viewer
	FeatOwner      = 1  // [1:4] owner one-hot: viewer, opponent, neutral
	FeatResource   = 4  // resource value / home resource value
	FeatGarrison   = 5  // neutral garrison / garrisonNorm
	FeatMine       = 6  // viewer's stationed ships / shipNorm
	FeatTheirs     = 7  // opponent's stationed ships / shipNorm
	FeatPos        = 8  // [8:10] grid position, x and y scaled to [0,1]
	FeatHome       = 10 // 1 when this is the viewer's home
	FeatInbound    = 11 // viewer's inbound fleet ships / shipNorm
	FeatInboundETA = 12 // soonest inbound arrival, scaled by max distance
)

// PolicySize is the flattened from->to logit count of the policy head:
// index = fromIndex*NumSystems + toIndex.
const PolicySize = NumSystems * NumSystems

// SystemIndex maps a system identifier to its tensor row (0..17), or -1 for
// anything that is not a valid identifier. Identifiers are the single letters
// A through R, so the row is just the letter's offset.
func SystemIndex(id string) int {
	if len(id) != 1 || id[0] < 'A' || id[0] > 'A'+NumSystems-1 {
		return -1
	}
	return int(id[0] - 'A')
}

// SystemID is the inverse of SystemIndex.
func SystemID(idx int) string {
	if idx < 0 || idx >= NumSystems {
		return ""
	}
	return string(rune('A' + idx))
}

// PlayerIndex maps a player to its model input index, or -1 for neutral.
func PlayerIndex(p conquest.Player) int {
	switch p {
	case conquest.PlayerA:
		return 0
	case conquest.PlayerB:
		return 1
	default:
		return -1
	}
}

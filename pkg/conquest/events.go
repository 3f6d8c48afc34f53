package conquest

// CombatEvent records one resolved engagement. A system can produce two in a
// single turn when player-versus-player combat precedes a garrison fight.
type CombatEvent struct {
	Turn          int    `json:"turn"`
	System        string `json:"system"`
	Attacker      Player `json:"attacker"`
	Defender      Player `json:"defender,omitempty"` // Neutral when fighting the garrison
	AttackerShips int    `json:"attacker_ships"`     // pre-battle
	DefenderShips int    `json:"defender_ships"`     // pre-battle
	AttackerLoss  int    `json:"attacker_loss"`
	DefenderLoss  int    `json:"defender_loss"`
	Winner        Player `json:"winner,omitempty"` // Neutral on mutual destruction
	OwnerBefore   Player `json:"owner_before,omitempty"`
	OwnerAfter    Player `json:"owner_after,omitempty"`
	Simultaneous  bool   `json:"simultaneous"` // both players' fleets arrived this turn
}

// HyperspaceLossEvent records an in-transit fleet destroyed by a hazard roll.
type HyperspaceLossEvent struct {
	Turn    int    `json:"turn"`
	FleetID int    `json:"fleet_id"`
	Owner   Player `json:"owner"`
	Ships   int    `json:"ships"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// ArrivalEvent records a fleet merging into its destination.
type ArrivalEvent struct {
	Turn    int    `json:"turn"`
	FleetID int    `json:"fleet_id"`
	Owner   Player `json:"owner"`
	Ships   int    `json:"ships"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// RebellionEvent records an uprising roll that fired at an under-garrisoned
// system. Suppressed is true when the garrison beat the rebels back.
type RebellionEvent struct {
	Turn           int    `json:"turn"`
	System         string `json:"system"`
	Owner          Player `json:"owner"`
	GarrisonBefore int    `json:"garrison_before"`
	GarrisonAfter  int    `json:"garrison_after"` // survivors, rebel or loyal depending on outcome
	Rebels         int    `json:"rebels"`
	Suppressed     bool   `json:"suppressed"`
}

// EventLog groups the per-turn event streams exposed to external consumers.
type EventLog struct {
	Combat     []CombatEvent         `json:"combat,omitempty"`
	Hyperspace []HyperspaceLossEvent `json:"hyperspace,omitempty"`
	Arrivals   []ArrivalEvent        `json:"arrivals,omitempty"`
	Rebellions []RebellionEvent      `json:"rebellions,omitempty"`
}

func (l *EventLog) append(other EventLog) {
	l.Combat = append(l.Combat, other.Combat...)
	l.Hyperspace = append(l.Hyperspace, other.Hyperspace...)
	l.Arrivals = append(l.Arrivals, other.Arrivals...)
	l.Rebellions = append(l.Rebellions, other.Rebellions...)
}

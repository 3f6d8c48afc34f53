package conquest

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// Player identifies one of the two sides. The zero value doubles as "no
// controller" for systems and as "nobody" wherever a player is optional.
type Player string

const (
	PlayerA Player = "alpha"
	PlayerB Player = "beta"
	Neutral Player = ""
)

// AllPlayers returns both players in canonical iteration order.
func AllPlayers() []Player {
	return []Player{PlayerA, PlayerB}
}

// Opponent returns the other player, or Neutral for Neutral.
func (p Player) Opponent() Player {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return Neutral
}

// Outcome is the terminal result of a game. The zero value means the game is
// still in progress.
type Outcome string

const (
	OutcomeOpen Outcome = ""
	OutcomeDraw Outcome = "draw"
)

// OutcomeFor returns the outcome recording a win for p.
func OutcomeFor(p Player) Outcome {
	return Outcome(p)
}

// Victor returns the winning player, or Neutral when the game is open or drawn.
func (o Outcome) Victor() Player {
	switch o {
	case Outcome(PlayerA):
		return PlayerA
	case Outcome(PlayerB):
		return PlayerB
	}
	return Neutral
}

// Decided reports whether the game has ended.
func (o Outcome) Decided() bool {
	return o != OutcomeOpen
}

// System is a star on the grid. While Owner is Neutral the system is defended
// by Garrison; once a player controls it, their stationed ships defend it and
// Garrison is zero.
type System struct {
	ID       string // single letter, A through R
	Name     string
	Pos      Coord
	Resource int // base resource value, ships produced per turn when controlled
	Owner    Player
	Garrison int // neutral defenders, meaningful only while Owner is Neutral
	ShipsA   int // ships stationed by PlayerA
	ShipsB   int // ships stationed by PlayerB
}

// Ships returns the stationed ship count for p.
func (s *System) Ships(p Player) int {
	switch p {
	case PlayerA:
		return s.ShipsA
	case PlayerB:
		return s.ShipsB
	}
	return 0
}

// SetShips overwrites the stationed ship count for p.
func (s *System) SetShips(p Player, n int) {
	switch p {
	case PlayerA:
		s.ShipsA = n
	case PlayerB:
		s.ShipsB = n
	}
}

// AddShips adjusts the stationed ship count for p by delta.
func (s *System) AddShips(p Player, delta int) {
	s.SetShips(p, s.Ships(p)+delta)
}

// Fleet is a group of ships in transit between two systems. It exists from
// order acceptance until it arrives or is lost to a hazard roll.
type Fleet struct {
	ID        int
	Owner     Player
	Ships     int
	From      string
	To        string
	Remaining int    // travel legs left before arrival
	Rationale string // free-text tag carried over from the order
}

// PlayerState is the per-player persistent knowledge attached to the world.
type PlayerState struct {
	ID      Player
	Home    string          // home system id
	Visited map[string]bool // every system this player's fleets have reached
}

// World is the complete game state. It exclusively owns all systems, fleets
// and players, plus the single RNG stream that every probabilistic decision
// in a turn draws from. That stream must never be re-seeded or forked
// mid-game or replay determinism breaks.
type World struct {
	Seed    int64
	Turn    int
	Systems []*System // sorted by ID, the canonical iteration order
	Fleets  []*Fleet  // creation order
	Players map[Player]*PlayerState
	Outcome Outcome

	// History accumulates every event since turn one; LastTurn holds only the
	// most recent turn's events. Both exist for external reporting layers.
	History  EventLog
	LastTurn EventLog

	rng         *rand.Rand
	logger      zerolog.Logger
	nextFleetID int
}

// WithLogger attaches a structured logger to the world and returns it.
// Logging never influences game outcomes; the default logger discards
// everything.
func (w *World) WithLogger(l zerolog.Logger) *World {
	w.logger = l
	return w
}

// SystemByID returns the system with the given id, or nil.
func (w *World) SystemByID(id string) *System {
	for _, s := range w.Systems {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// SystemAt returns the system occupying the given cell, or nil.
func (w *World) SystemAt(pos Coord) *System {
	for _, s := range w.Systems {
		if s.Pos == pos {
			return s
		}
	}
	return nil
}

// Player returns the persistent state for p, or nil for Neutral.
func (w *World) Player(p Player) *PlayerState {
	return w.Players[p]
}

// Home returns p's home system, or nil if the reference is broken.
func (w *World) Home(p Player) *System {
	ps := w.Players[p]
	if ps == nil {
		return nil
	}
	return w.SystemByID(ps.Home)
}

// IsHome reports whether the system id is either player's home.
func (w *World) IsHome(id string) bool {
	for _, p := range AllPlayers() {
		if ps := w.Players[p]; ps != nil && ps.Home == id {
			return true
		}
	}
	return false
}

// SystemsOf returns all systems currently controlled by p, in ID order.
func (w *World) SystemsOf(p Player) []*System {
	var owned []*System
	for _, s := range w.Systems {
		if s.Owner == p {
			owned = append(owned, s)
		}
	}
	return owned
}

// FleetsOf returns p's in-flight fleets in creation order.
func (w *World) FleetsOf(p Player) []*Fleet {
	var fleets []*Fleet
	for _, f := range w.Fleets {
		if f.Owner == p {
			fleets = append(fleets, f)
		}
	}
	return fleets
}

// TotalShips returns p's ship count across stationed garrisons and fleets.
func (w *World) TotalShips(p Player) int {
	total := 0
	for _, s := range w.Systems {
		total += s.Ships(p)
	}
	for _, f := range w.Fleets {
		if f.Owner == p {
			total += f.Ships
		}
	}
	return total
}

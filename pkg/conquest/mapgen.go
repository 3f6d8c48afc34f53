package conquest

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// HomeProduction is the per-turn ship yield of a home system.
	HomeProduction = 5
	// HomeResource is a home system's base resource value.
	HomeResource = 4
	// NeutralSystemCount is the number of non-home systems on the map.
	NeutralSystemCount = 16
	// homeCornerReach bounds how far a home may sit from its grid corner.
	homeCornerReach = 3
	// maxPlacementAttempts caps the search for a free cell. Running out
	// means the board configuration itself is broken, so generation fails
	// loudly instead of retrying with a different seed.
	maxPlacementAttempts = 100
)

// systemLetters is the fixed identifier pool, shuffled per game.
const systemLetters = "ABCDEFGHIJKLMNOPQR"

// starNames maps each identifier letter to its display name.
var starNames = map[string]string{
	"A": "Altair", "B": "Bellatrix", "C": "Castor", "D": "Deneb",
	"E": "Electra", "F": "Fomalhaut", "G": "Gienah", "H": "Hadar",
	"I": "Izar", "J": "Jabbah", "K": "Kochab", "L": "Lesath",
	"M": "Mizar", "N": "Naos", "O": "Okab", "P": "Pollux",
	"Q": "Quasar", "R": "Rigel",
}

const (
	quadWidth  = GridWidth / 2
	quadHeight = GridHeight / 2
)

// quadrants are the four fixed placement regions, each receiving four
// neutral systems.
var quadrants = [4]Coord{
	{0, 0},
	{quadWidth, 0},
	{0, quadHeight},
	{quadWidth, quadHeight},
}

// Per-quadrant resource multisets. The two quadrants hosting homes carry 8
// total resource value, the outer pair 6, pulling early expansion toward the
// players' own corners.
var (
	homeQuadrantValues  = []int{1, 2, 2, 3}
	outerQuadrantValues = []int{1, 1, 2, 2}
)

// quadrantIndex returns which quadrant the cell falls in.
func quadrantIndex(c Coord) int {
	qi := 0
	if c.X >= quadWidth {
		qi++
	}
	if c.Y >= quadHeight {
		qi += 2
	}
	return qi
}

// GenerateMap builds the starting world for a game. The same seed always
// yields the same board: corner assignment, home placement, neutral system
// placement, resource shuffles and identifier shuffles all draw from the
// world's single RNG stream in a fixed order.
func GenerateMap(seed int64) (*World, error) {
	w := &World{
		Seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
		logger:  zerolog.Nop(),
		Players: make(map[Player]*PlayerState, 2),
	}

	// Homes go near opposite ends of the main diagonal; the RNG decides who
	// gets which end.
	corners := [2]Coord{{0, 0}, {GridWidth - 1, GridHeight - 1}}
	order := AllPlayers()
	if w.rng.Intn(2) == 1 {
		order[0], order[1] = order[1], order[0]
	}

	homeSys := make(map[Player]*System, 2)
	for i, p := range order {
		pos, err := placeNearCorner(w, corners[i])
		if err != nil {
			return nil, err
		}
		sys := &System{
			Pos:      pos,
			Resource: HomeResource,
			Owner:    p,
		}
		sys.SetShips(p, HomeProduction)
		w.Systems = append(w.Systems, sys)
		homeSys[p] = sys
	}

	homeQuads := map[int]bool{
		quadrantIndex(homeSys[PlayerA].Pos): true,
		quadrantIndex(homeSys[PlayerB].Pos): true,
	}
	for qi, q := range quadrants {
		vals := outerQuadrantValues
		if homeQuads[qi] {
			vals = homeQuadrantValues
		}
		rvs := append([]int(nil), vals...)
		w.rng.Shuffle(len(rvs), func(i, j int) { rvs[i], rvs[j] = rvs[j], rvs[i] })

		for _, rv := range rvs {
			pos, err := placeFree(w, q.X, q.Y, quadWidth, quadHeight)
			if err != nil {
				return nil, err
			}
			w.Systems = append(w.Systems, &System{
				Pos:      pos,
				Resource: rv,
				Owner:    Neutral,
				Garrison: rv,
			})
		}
	}

	// Identifiers are dealt in generation order, homes first.
	letters := strings.Split(systemLetters, "")
	w.rng.Shuffle(len(letters), func(i, j int) { letters[i], letters[j] = letters[j], letters[i] })
	for i, sys := range w.Systems {
		sys.ID = letters[i]
		sys.Name = starNames[sys.ID]
	}

	for _, p := range AllPlayers() {
		home := homeSys[p]
		w.Players[p] = &PlayerState{
			ID:      p,
			Home:    home.ID,
			Visited: map[string]bool{home.ID: true},
		}
	}

	sort.Slice(w.Systems, func(i, j int) bool { return w.Systems[i].ID < w.Systems[j].ID })

	w.logger.Debug().
		Int64("seed", seed).
		Str("homeAlpha", homeSys[PlayerA].ID).
		Str("homeBeta", homeSys[PlayerB].ID).
		Msg("map generated")
	return w, nil
}

// placeNearCorner picks a free cell within homeCornerReach of the given grid
// corner.
func placeNearCorner(w *World, corner Coord) (Coord, error) {
	x0, y0 := 0, 0
	if corner.X > 0 {
		x0 = GridWidth - 1 - homeCornerReach
	}
	if corner.Y > 0 {
		y0 = GridHeight - 1 - homeCornerReach
	}
	pos, err := placeFree(w, x0, y0, homeCornerReach+1, homeCornerReach+1)
	if err != nil {
		return Coord{}, fmt.Errorf("placing home near corner %s: %w", corner, err)
	}
	return pos, nil
}

// placeFree picks a uniformly random unoccupied cell with x in [x0, x0+wd)
// and y in [y0, y0+ht).
func placeFree(w *World, x0, y0, wd, ht int) (Coord, error) {
	for i := 0; i < maxPlacementAttempts; i++ {
		c := Coord{X: x0 + w.rng.Intn(wd), Y: y0 + w.rng.Intn(ht)}
		if w.SystemAt(c) == nil {
			return c, nil
		}
	}
	return Coord{}, fmt.Errorf("conquest: no free cell in %dx%d region at (%d,%d) after %d attempts",
		wd, ht, x0, y0, maxPlacementAttempts)
}

package bot

import (
	"sync"

	"github.com/freeeve/quiet-conquest/pkg/conquest"
)

// gridCells is the number of cells on the board.
const gridCells = conquest.GridWidth * conquest.GridHeight

// cellDist holds pre-computed travel distances between all cell pairs,
// flattened [cellIndex(a)*gridCells + cellIndex(b)]. The board never changes
// shape, so one table serves every generated world.
var (
	distOnce sync.Once
	cellDist []int16
)

func buildDistTable() {
	cellDist = make([]int16, gridCells*gridCells)
	for ay := 0; ay < conquest.GridHeight; ay++ {
		for ax := 0; ax < conquest.GridWidth; ax++ {
			a := conquest.Coord{X: ax, Y: ay}
			ai := cellIndex(a)
			for by := 0; by < conquest.GridHeight; by++ {
				for bx := 0; bx < conquest.GridWidth; bx++ {
					b := conquest.Coord{X: bx, Y: by}
					cellDist[ai*gridCells+cellIndex(b)] = int16(conquest.Dist(a, b))
				}
			}
		}
	}
}

func cellIndex(c conquest.Coord) int {
	return c.Y*conquest.GridWidth + c.X
}

// Distance returns the travel distance in turns between two grid positions.
func Distance(a, b conquest.Coord) int {
	distOnce.Do(buildDistTable)
	return int(cellDist[cellIndex(a)*gridCells+cellIndex(b)])
}

// Evaluate scores a position for the viewing player; positive favors the
// viewer. Material is weighted by production so holding rich systems beats
// hoarding ships on poor ones.
func Evaluate(v *conquest.PlayerView) float64 {
	opp := v.Player.Opponent()
	var score float64
	for i := range v.Systems {
		sv := &v.Systems[i]
		if !sv.Known {
			continue
		}
		switch sv.Owner {
		case v.Player:
			score += 3*float64(sv.Resource) + float64(sv.Mine)
		case opp:
			score -= 3*float64(sv.Resource) + float64(sv.Theirs)
		}
	}
	for i := range v.Fleets {
		score += float64(v.Fleets[i].Ships)
	}
	return score
}

// SystemThreat totals known enemy ships discounted by their distance from
// sys. Fog keeps unvisited enemy forces out of the sum.
func SystemThreat(v *conquest.PlayerView, sys *conquest.SystemView) float64 {
	var threat float64
	for i := range v.Systems {
		sv := &v.Systems[i]
		if sv.Theirs == 0 {
			continue
		}
		d := Distance(sys.Pos, sv.Pos)
		threat += float64(sv.Theirs) / float64(1+d)
	}
	return threat
}

// homeReserve sizes the garrison held back at the viewer's home system.
func homeReserve(v *conquest.PlayerView) int {
	home := v.System(v.Home)
	if home == nil {
		return 0
	}
	r := int(SystemThreat(v, home)) + 2
	if r < 4 {
		r = 4
	}
	return r
}

// spareShips returns the ships each owned system can commit this turn after
// holding back its rebellion floor (and the home its defense reserve).
func spareShips(v *conquest.PlayerView, p conquest.Player) map[string]int {
	free := make(map[string]int)
	for i := range v.Systems {
		sys := &v.Systems[i]
		if sys.Owner != p {
			continue
		}
		reserve := sys.Resource
		if sys.ID == v.Home {
			reserve = homeReserve(v)
		}
		if f := sys.Mine - reserve; f > 0 {
			free[sys.ID] = f
		}
	}
	return free
}

// garrisonEstimate guesses the defenders waiting at a target system.
func garrisonEstimate(sv *conquest.SystemView) int {
	if sv.Known {
		if sv.Owner == conquest.Neutral {
			return sv.Garrison
		}
		return sv.Theirs
	}
	// Unvisited systems hide their garrison; assume the top of the
	// resource range, which bounds any neutral garrison.
	return conquest.HomeResource
}

// shipsToTake returns a force that both wins the fight outright and leaves
// enough survivors to sit above the rebellion threshold afterward. The
// winner loses half the loser rounded up, so holding needs rv plus that.
func shipsToTake(defenders, rv int) int {
	win := defenders + 1
	hold := rv + (defenders+1)/2
	if hold > win {
		return hold
	}
	return win
}

package conquest

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// CFEN is a single-line canonical notation for a world position, five
// '/'-separated sections:
//
//	<turn><outcome> / <seed> / <systems> / <fleets> / <players>
//
// Systems are sorted by identifier, fleets appear in creation order and each
// player's visited letters are sorted, so equal positions always encode to
// equal strings. A CFEN is a positional snapshot taken between turns: event
// history and fleet rationale tags are not part of it, and decoding reseeds
// the RNG stream from the recorded seed rather than restoring a mid-stream
// position.

// playerToChar maps a Player to its CFEN character.
var playerToChar = map[Player]byte{
	PlayerA: 'a',
	PlayerB: 'b',
	Neutral: 'n',
}

// charToPlayer maps a CFEN character back to a Player.
var charToPlayer = map[byte]Player{
	'a': PlayerA,
	'b': PlayerB,
	'n': Neutral,
}

// outcomeToChar maps an Outcome to its CFEN character.
var outcomeToChar = map[Outcome]byte{
	OutcomeOpen:         'o',
	OutcomeFor(PlayerA): 'a',
	OutcomeFor(PlayerB): 'b',
	OutcomeDraw:         'd',
}

// charToOutcome maps a CFEN character back to an Outcome.
var charToOutcome = map[byte]Outcome{
	'o': OutcomeOpen,
	'a': OutcomeFor(PlayerA),
	'b': OutcomeFor(PlayerB),
	'd': OutcomeDraw,
}

// EncodeCFEN serializes a world position to its canonical CFEN string.
func EncodeCFEN(w *World) string {
	var b strings.Builder
	b.Grow(320)

	b.WriteString(strconv.Itoa(w.Turn))
	b.WriteByte(outcomeToChar[w.Outcome])
	b.WriteByte('/')
	b.WriteString(strconv.FormatInt(w.Seed, 10))
	b.WriteByte('/')
	encodeSystems(&b, w)
	b.WriteByte('/')
	encodeFleets(&b, w)
	b.WriteByte('/')
	encodePlayers(&b, w)

	return b.String()
}

// encodeSystems writes one entry per system in ID order:
// <id><x>.<y>.<rv><owner><garrison>.<shipsA>.<shipsB>
func encodeSystems(b *strings.Builder, w *World) {
	systems := append([]*System(nil), w.Systems...)
	sort.Slice(systems, func(i, j int) bool { return systems[i].ID < systems[j].ID })

	for i, s := range systems {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s.ID)
		b.WriteString(strconv.Itoa(s.Pos.X))
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(s.Pos.Y))
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(s.Resource))
		b.WriteByte(playerToChar[s.Owner])
		b.WriteString(strconv.Itoa(s.Garrison))
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(s.ShipsA))
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(s.ShipsB))
	}
}

// encodeFleets writes one entry per in-flight fleet in creation order:
// <owner><ships>.<from><to>.<remaining>, or "-" when none.
func encodeFleets(b *strings.Builder, w *World) {
	if len(w.Fleets) == 0 {
		b.WriteByte('-')
		return
	}
	for i, f := range w.Fleets {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(playerToChar[f.Owner])
		b.WriteString(strconv.Itoa(f.Ships))
		b.WriteByte('.')
		b.WriteString(f.From)
		b.WriteString(f.To)
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(f.Remaining))
	}
}

// encodePlayers writes one entry per player:
// <char><home>.<visited letters, sorted>
func encodePlayers(b *strings.Builder, w *World) {
	for i, p := range AllPlayers() {
		if i > 0 {
			b.WriteByte(',')
		}
		ps := w.Player(p)
		b.WriteByte(playerToChar[p])
		b.WriteString(ps.Home)
		b.WriteByte('.')
		var visited []string
		for id := range ps.Visited {
			visited = append(visited, id)
		}
		sort.Strings(visited)
		b.WriteString(strings.Join(visited, ""))
	}
}

// DecodeCFEN parses a CFEN string into a playable world. The RNG stream is
// freshly seeded from the recorded seed.
func DecodeCFEN(s string) (*World, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 5 {
		return nil, fmt.Errorf("cfen: expected 5 sections separated by '/', got %d", len(parts))
	}

	w := &World{
		Players: make(map[Player]*PlayerState, 2),
		logger:  zerolog.Nop(),
	}

	if err := decodeHeader(parts[0], w); err != nil {
		return nil, err
	}
	seed, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cfen: invalid seed %q: %w", parts[1], err)
	}
	w.Seed = seed
	w.rng = rand.New(rand.NewSource(seed))

	if err := decodeSystems(parts[2], w); err != nil {
		return nil, err
	}
	if err := decodeFleets(parts[3], w); err != nil {
		return nil, err
	}
	if err := decodePlayers(parts[4], w); err != nil {
		return nil, err
	}
	return w, nil
}

// decodeHeader parses "12o" into turn and outcome.
func decodeHeader(s string, w *World) error {
	if len(s) < 2 {
		return fmt.Errorf("cfen: header too short: %q", s)
	}
	outcome, ok := charToOutcome[s[len(s)-1]]
	if !ok {
		return fmt.Errorf("cfen: invalid outcome %q", string(s[len(s)-1]))
	}
	turn, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return fmt.Errorf("cfen: invalid turn %q: %w", s[:len(s)-1], err)
	}
	if turn < 0 {
		return fmt.Errorf("cfen: negative turn %d", turn)
	}
	w.Turn = turn
	w.Outcome = outcome
	return nil
}

// decodeSystems parses "A0.0.4n2.0.0,B11.9.4b0.0.5,...".
func decodeSystems(s string, w *World) error {
	seen := make(map[string]bool)
	for entry := range strings.SplitSeq(s, ",") {
		sys, err := parseSystemEntry(entry)
		if err != nil {
			return fmt.Errorf("cfen: system %q: %w", entry, err)
		}
		if seen[sys.ID] {
			return fmt.Errorf("cfen: duplicate system id %s", sys.ID)
		}
		if prev := w.SystemAt(sys.Pos); prev != nil {
			return fmt.Errorf("cfen: systems %s and %s share cell %s", prev.ID, sys.ID, sys.Pos)
		}
		seen[sys.ID] = true
		w.Systems = append(w.Systems, sys)
	}
	sort.Slice(w.Systems, func(i, j int) bool { return w.Systems[i].ID < w.Systems[j].ID })
	return nil
}

// parseSystemEntry parses one system like "K3.2.4a0.12.0". The single
// letter after the resource value is the owner; everything else is digits
// and dots.
func parseSystemEntry(s string) (*System, error) {
	if len(s) < 2 {
		return nil, fmt.Errorf("too short")
	}
	id := string(s[0])
	name, ok := starNames[id]
	if !ok {
		return nil, fmt.Errorf("unknown system id %q", id)
	}

	ownerAt := -1
	for i := 1; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' {
			ownerAt = i
			break
		}
	}
	if ownerAt < 0 {
		return nil, fmt.Errorf("missing owner char")
	}
	owner, ok := charToPlayer[s[ownerAt]]
	if !ok {
		return nil, fmt.Errorf("invalid owner char %q", string(s[ownerAt]))
	}

	head := strings.Split(s[1:ownerAt], ".")
	if len(head) != 3 {
		return nil, fmt.Errorf("expected x.y.rv before owner, got %q", s[1:ownerAt])
	}
	tail := strings.Split(s[ownerAt+1:], ".")
	if len(tail) != 3 {
		return nil, fmt.Errorf("expected garrison.shipsA.shipsB after owner, got %q", s[ownerAt+1:])
	}

	nums := make([]int, 0, 6)
	for _, part := range append(head, tail...) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", part, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("negative value %d", n)
		}
		nums = append(nums, n)
	}

	sys := &System{
		ID:       id,
		Name:     name,
		Pos:      Coord{X: nums[0], Y: nums[1]},
		Resource: nums[2],
		Owner:    owner,
		Garrison: nums[3],
		ShipsA:   nums[4],
		ShipsB:   nums[5],
	}
	if !sys.Pos.InBounds() {
		return nil, fmt.Errorf("position %s out of bounds", sys.Pos)
	}
	if sys.Resource < 1 || sys.Resource > 4 {
		return nil, fmt.Errorf("resource value %d out of range", sys.Resource)
	}
	return sys, nil
}

// decodeFleets parses "a6.FK.3,b2.RA.0" or "-".
func decodeFleets(s string, w *World) error {
	if s == "-" {
		return nil
	}
	for entry := range strings.SplitSeq(s, ",") {
		f, err := parseFleetEntry(entry, w)
		if err != nil {
			return fmt.Errorf("cfen: fleet %q: %w", entry, err)
		}
		f.ID = w.nextFleetID
		w.nextFleetID++
		w.Fleets = append(w.Fleets, f)
	}
	return nil
}

// parseFleetEntry parses one fleet like "a6.FK.3".
func parseFleetEntry(s string, w *World) (*Fleet, error) {
	if len(s) < 2 {
		return nil, fmt.Errorf("too short")
	}
	owner, ok := charToPlayer[s[0]]
	if !ok || owner == Neutral {
		return nil, fmt.Errorf("invalid owner char %q", string(s[0]))
	}
	parts := strings.Split(s[1:], ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("expected ships.route.remaining, got %q", s[1:])
	}
	ships, err := strconv.Atoi(parts[0])
	if err != nil || ships <= 0 {
		return nil, fmt.Errorf("invalid ship count %q", parts[0])
	}
	if len(parts[1]) != 2 {
		return nil, fmt.Errorf("invalid route %q", parts[1])
	}
	from, to := string(parts[1][0]), string(parts[1][1])
	if w.SystemByID(from) == nil {
		return nil, fmt.Errorf("unknown origin %s", from)
	}
	if w.SystemByID(to) == nil {
		return nil, fmt.Errorf("unknown destination %s", to)
	}
	remaining, err := strconv.Atoi(parts[2])
	if err != nil || remaining < 0 {
		return nil, fmt.Errorf("invalid remaining distance %q", parts[2])
	}
	return &Fleet{
		Owner:     owner,
		Ships:     ships,
		From:      from,
		To:        to,
		Remaining: remaining,
	}, nil
}

// decodePlayers parses "aK.AFK,bR.KR".
func decodePlayers(s string, w *World) error {
	for entry := range strings.SplitSeq(s, ",") {
		if len(entry) < 3 {
			return fmt.Errorf("cfen: player entry too short: %q", entry)
		}
		p, ok := charToPlayer[entry[0]]
		if !ok || p == Neutral {
			return fmt.Errorf("cfen: invalid player char %q", string(entry[0]))
		}
		if w.Players[p] != nil {
			return fmt.Errorf("cfen: duplicate player %s", p)
		}
		home := string(entry[1])
		if w.SystemByID(home) == nil {
			return fmt.Errorf("cfen: unknown home system %s for %s", home, p)
		}
		if entry[2] != '.' {
			return fmt.Errorf("cfen: malformed player entry %q", entry)
		}
		visited := make(map[string]bool)
		for _, r := range entry[3:] {
			id := string(r)
			if w.SystemByID(id) == nil {
				return fmt.Errorf("cfen: unknown visited system %s for %s", id, p)
			}
			visited[id] = true
		}
		w.Players[p] = &PlayerState{ID: p, Home: home, Visited: visited}
	}
	for _, p := range AllPlayers() {
		if w.Players[p] == nil {
			return fmt.Errorf("cfen: missing player %s", p)
		}
	}
	return nil
}

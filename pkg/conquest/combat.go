package conquest

// resolveCombat applies the deterministic combat formula: the larger force
// wins and loses half the loser's strength rounded up, the loser is wiped
// out, and equal forces annihilate each other.
func resolveCombat(attacker, defender int) (attackerLeft, defenderLeft int) {
	switch {
	case attacker > defender:
		return attacker - (defender+1)/2, 0
	case defender > attacker:
		return 0, defender - (attacker+1)/2
	default:
		return 0, 0
	}
}

// processCombat resolves every contested system in ID order. Arrivals from
// this turn's movement decide the simultaneous-arrival flag and, at neutral
// systems, force the player-versus-player fight to happen before any
// garrison fight.
func processCombat(w *World, arrivals []ArrivalEvent) []CombatEvent {
	arrivedA := make(map[string]bool)
	arrivedB := make(map[string]bool)
	for _, a := range arrivals {
		switch a.Owner {
		case PlayerA:
			arrivedA[a.To] = true
		case PlayerB:
			arrivedB[a.To] = true
		}
	}

	var events []CombatEvent
	for _, sys := range w.Systems {
		simultaneous := arrivedA[sys.ID] && arrivedB[sys.ID]
		events = append(events, resolveSystem(w, sys, simultaneous)...)
	}
	return events
}

// resolveSystem applies the combat sequencing rules to one system. At an
// owned system the non-owner attacks the owner. At a neutral system with
// both players present, player-versus-player resolves first under the fixed
// tie-break (PlayerA attacks); only a surviving player then takes on the
// garrison. A tied player fight leaves the garrison untouched.
func resolveSystem(w *World, sys *System, simultaneous bool) []CombatEvent {
	var events []CombatEvent

	if sys.Owner != Neutral {
		attacker := sys.Owner.Opponent()
		if sys.Ships(attacker) > 0 {
			events = append(events, fightPlayers(w, sys, attacker, sys.Owner, simultaneous))
		}
		return events
	}

	if sys.ShipsA > 0 && sys.ShipsB > 0 {
		events = append(events, fightPlayers(w, sys, PlayerA, PlayerB, simultaneous))
	}

	if lone := solePresence(sys); lone != Neutral {
		if sys.Garrison > 0 {
			events = append(events, fightGarrison(w, sys, lone, simultaneous))
		} else {
			// Unopposed arrival at an undefended system: capture outright.
			sys.Owner = lone
		}
	}
	return events
}

// solePresence returns the only player with ships stationed at sys, or
// Neutral when neither or both players have ships there.
func solePresence(sys *System) Player {
	switch {
	case sys.ShipsA > 0 && sys.ShipsB == 0:
		return PlayerA
	case sys.ShipsB > 0 && sys.ShipsA == 0:
		return PlayerB
	}
	return Neutral
}

// fightPlayers resolves a player-versus-player engagement at sys. Ownership
// only changes when the system had an owner going in; at a neutral system
// the garrison fight that follows decides control.
func fightPlayers(w *World, sys *System, attacker, defender Player, simultaneous bool) CombatEvent {
	att := sys.Ships(attacker)
	def := sys.Ships(defender)
	attLeft, defLeft := resolveCombat(att, def)

	ev := CombatEvent{
		Turn:          w.Turn,
		System:        sys.ID,
		Attacker:      attacker,
		Defender:      defender,
		AttackerShips: att,
		DefenderShips: def,
		AttackerLoss:  att - attLeft,
		DefenderLoss:  def - defLeft,
		OwnerBefore:   sys.Owner,
		Simultaneous:  simultaneous,
	}

	sys.SetShips(attacker, attLeft)
	sys.SetShips(defender, defLeft)
	switch {
	case attLeft > 0:
		ev.Winner = attacker
	case defLeft > 0:
		ev.Winner = defender
	}

	if sys.Owner != Neutral {
		switch {
		case attLeft > 0:
			sys.Owner = attacker
		case defLeft > 0:
			// Defender holds.
		default:
			sys.Owner = Neutral
			sys.Garrison = 0
		}
	}
	ev.OwnerAfter = sys.Owner

	logCombat(w, ev)
	return ev
}

// fightGarrison resolves a lone player against a neutral garrison.
func fightGarrison(w *World, sys *System, attacker Player, simultaneous bool) CombatEvent {
	att := sys.Ships(attacker)
	def := sys.Garrison
	attLeft, defLeft := resolveCombat(att, def)

	ev := CombatEvent{
		Turn:          w.Turn,
		System:        sys.ID,
		Attacker:      attacker,
		Defender:      Neutral,
		AttackerShips: att,
		DefenderShips: def,
		AttackerLoss:  att - attLeft,
		DefenderLoss:  def - defLeft,
		OwnerBefore:   sys.Owner,
		Simultaneous:  simultaneous,
	}

	sys.SetShips(attacker, attLeft)
	sys.Garrison = defLeft
	if attLeft > 0 {
		ev.Winner = attacker
		sys.Owner = attacker
	}
	ev.OwnerAfter = sys.Owner

	logCombat(w, ev)
	return ev
}

func logCombat(w *World, ev CombatEvent) {
	w.logger.Debug().
		Str("system", ev.System).
		Str("attacker", string(ev.Attacker)).
		Str("defender", string(ev.Defender)).
		Int("attackerShips", ev.AttackerShips).
		Int("defenderShips", ev.DefenderShips).
		Str("winner", string(ev.Winner)).
		Bool("simultaneous", ev.Simultaneous).
		Msg("combat resolved")
}

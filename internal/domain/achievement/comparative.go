package achievement

import (
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/stats"
)

// Qualifying thresholds for comparative awards. Being the leader is never
// enough on its own; the leader must also clear the bar.
const (
	goatMinWins          = 5
	hoarderMinMedals     = 5
	consistentMinEntries = 5
	hostHeroMinArranged  = 3
	decadeWindowYears    = 10
	decadeMinWins        = 3
	closerWindow         = 3
	rivalryMinMeetings   = 5
	rivalryMaxMargin     = 2
	familyMinBeatings    = 5
)

// evaluateComparative awards every rule that needs a total ordering across
// participants. order is the snapshot's stable participant order (ascending
// id); all ties resolve to the first participant in that order.
func evaluateComparative(
	snap model.Snapshot,
	all map[model.ParticipantID]stats.ParticipantStats,
	awards map[model.ParticipantID]Set,
) {
	order := make([]model.ParticipantID, 0, len(snap.Participants))
	for _, p := range snap.Participants {
		order = append(order, p.ID)
	}

	grant := func(id model.ParticipantID, a ID) {
		if awards[id] == nil {
			awards[id] = make(Set)
		}
		awards[id].Add(a)
	}

	// Single-leader rules: scan in stable order, keep the strictly best
	// eligible candidate. A later tie never displaces an earlier leader.
	if id, ok := leader(order, true, func(id model.ParticipantID) (float64, bool) {
		s := all[id]
		return float64(s.Wins), s.Wins >= goatMinWins
	}); ok {
		grant(id, Goat)
	}

	if id, ok := leader(order, true, func(id model.ParticipantID) (float64, bool) {
		s := all[id]
		return float64(s.TotalMedals()), s.TotalMedals() >= hoarderMinMedals
	}); ok {
		grant(id, MedalHoarder)
	}

	if id, ok := leader(order, false, func(id model.ParticipantID) (float64, bool) {
		s := all[id]
		return s.StdDev, s.Participations >= consistentMinEntries
	}); ok {
		grant(id, MostConsistent)
	}

	if id, ok := leader(order, true, func(id model.ParticipantID) (float64, bool) {
		s := all[id]
		return float64(s.Arrangements), s.Arrangements >= hostHeroMinArranged
	}); ok {
		grant(id, HostHero)
	}

	scored := snap.ScoredCompetitions()

	if len(scored) > 0 {
		latest := scored[len(scored)-1].Year
		cutoff := latest - decadeWindowYears + 1
		if id, ok := leader(order, true, func(id model.ParticipantID) (float64, bool) {
			wins := 0
			for _, y := range all[id].WinYears {
				if y >= cutoff {
					wins++
				}
			}
			return float64(wins), wins >= decadeMinWins
		}); ok {
			grant(id, DecadeChampion)
		}
	}

	if len(scored) >= closerWindow {
		window := scored[len(scored)-closerWindow:]
		if id, ok := leader(order, false, func(id model.ParticipantID) (float64, bool) {
			sum := 0
			for _, c := range window {
				r, ok := c.RankOf(id)
				if !ok {
					return 0, false
				}
				sum += int(r)
			}
			return float64(sum) / float64(closerWindow), true
		}); ok {
			grant(id, TheCloser)
		}
	}

	if a, b, ok := biggestRivalry(order, scored); ok {
		grant(a, BiggestRivalry)
		grant(b, BiggestRivalry)
	}

	familyFeud(snap, scored, grant)
}

// leader returns the first participant in stable order with the strictly
// best metric value among eligible candidates.
func leader(
	order []model.ParticipantID,
	higherBetter bool,
	metric func(model.ParticipantID) (value float64, eligible bool),
) (model.ParticipantID, bool) {
	var best model.ParticipantID
	var bestValue float64
	found := false
	for _, id := range order {
		v, ok := metric(id)
		if !ok {
			continue
		}
		better := v > bestValue
		if !higherBetter {
			better = v < bestValue
		}
		if !found || better {
			best, bestValue, found = id, v, true
		}
	}
	return best, found
}

// biggestRivalry scans every unordered pair: a rivalry needs at least five
// meetings and a head-to-head win margin of at most two; among qualifying
// pairs the one with the most meetings wins, first found on equal counts.
func biggestRivalry(order []model.ParticipantID, scored []model.Competition) (model.ParticipantID, model.ParticipantID, bool) {
	var bestA, bestB model.ParticipantID
	bestMeetings := 0
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			a, b := order[i], order[j]
			meetings, winsA, winsB := 0, 0, 0
			for _, c := range scored {
				ra, okA := c.RankOf(a)
				rb, okB := c.RankOf(b)
				if !okA || !okB {
					continue
				}
				meetings++
				if ra < rb {
					winsA++
				} else if rb < ra {
					winsB++
				}
			}
			if meetings < rivalryMinMeetings {
				continue
			}
			margin := winsA - winsB
			if margin < 0 {
				margin = -margin
			}
			if margin > rivalryMaxMargin {
				continue
			}
			if meetings > bestMeetings {
				bestA, bestB, bestMeetings = a, b, meetings
			}
		}
	}
	return bestA, bestB, bestMeetings > 0
}

// familyFeud groups participants by surname token and awards anyone who has
// beaten a family member (strictly lower rank in a shared competition) at
// least five times.
func familyFeud(snap model.Snapshot, scored []model.Competition, grant func(model.ParticipantID, ID)) {
	families := make(map[string][]model.Participant)
	for _, p := range snap.Participants {
		name := p.Surname()
		if name == "" {
			continue
		}
		families[name] = append(families[name], p)
	}

	for _, members := range families {
		if len(members) < 2 {
			continue
		}
		for _, winner := range members {
			for _, loser := range members {
				if winner.ID == loser.ID {
					continue
				}
				beatings := 0
				for _, c := range scored {
					rw, okW := c.RankOf(winner.ID)
					rl, okL := c.RankOf(loser.ID)
					if okW && okL && rw < rl {
						beatings++
					}
				}
				if beatings >= familyMinBeatings {
					grant(winner.ID, FamilyFeud)
				}
			}
		}
	}
}

package achievement

import (
	"github.com/okian/podium/internal/domain/model"
)

// Exact pass/fail cutoffs. These are contract values, not tunable defaults;
// the UI and the comparative rules depend on them verbatim.
const (
	goldKingMin      = 5
	goldCollectorMin = 3
	silverLiningMin  = 3
	bridesmaidMin    = 5
	medalMagnetMin   = 10
	winStreak3Min    = 3
	backToBackMin    = 2
	podiumStreak5Min = 5
	podiumStreak3Min = 3
	comebackGapYears = 3
	parityMinYears   = 4
	parityMinRatio   = 0.8
	gatekeeperMinN   = 5
	gatekeeperRatio  = 0.6
	elevatorMinPairs = 2
	elevatorDelta    = 5
	elevatorRatio    = 0.5
	chaosMinN        = 5
)

func predGoldKing(c Context) bool { return c.Stats.Gold >= goldKingMin }

func predGoldCollector(c Context) bool {
	return c.Stats.Gold >= goldCollectorMin && c.Stats.Gold < goldKingMin
}

func predSilverLining(c Context) bool {
	return c.Stats.Silver >= silverLiningMin && c.Stats.Gold == 0
}

func predBridesmaid(c Context) bool {
	return c.Stats.Silver >= bridesmaidMin && c.Stats.Gold == 0
}

func predMedalMagnet(c Context) bool { return c.Stats.TotalMedals() >= medalMagnetMin }

func predFullSet(c Context) bool {
	return c.Stats.Gold >= 1 && c.Stats.Silver >= 1 && c.Stats.Bronze >= 1
}

func predWinStreak3(c Context) bool { return c.Trend.MaxWinStreak >= winStreak3Min }

func predBackToBack(c Context) bool { return c.Trend.MaxWinStreak >= backToBackMin }

func predPodiumStreak5(c Context) bool { return c.Trend.MaxPodiumStreak >= podiumStreak5Min }

func predPodiumStreak3(c Context) bool { return c.Trend.MaxPodiumStreak >= podiumStreak3Min }

// predNeverMissed requires attendance at literally every scored competition.
// Cancelled years are not scored and therefore cannot break the record.
func predNeverMissed(c Context) bool {
	return c.ScoredCount > 0 && c.Stats.Participations == c.ScoredCount
}

// predComebackKing looks for a drought: two successive win-years at least
// three calendar years apart.
func predComebackKing(c Context) bool {
	wins := c.Stats.WinYears
	for i := 1; i < len(wins); i++ {
		if wins[i]-wins[i-1] >= comebackGapYears {
			return true
		}
	}
	return false
}

// predOddEvenOracle matches when the parity of the year agrees with the
// parity of the rank in at least 80% of participated years; needs four
// data points to be meaningful.
func predOddEvenOracle(c Context) bool {
	seq := c.Stats.Sequence
	if len(seq) < parityMinYears {
		return false
	}
	matches := 0
	for _, yr := range seq {
		if yr.Year%2 == int(yr.Rank)%2 {
			matches++
		}
	}
	return float64(matches) >= parityMinRatio*float64(len(seq))
}

// predGatekeeper: rank 4 or 5 in at least 60% of participated years.
func predGatekeeper(c Context) bool {
	seq := c.Stats.Sequence
	if len(seq) < gatekeeperMinN {
		return false
	}
	guarded := 0
	for _, yr := range seq {
		if yr.Rank == 4 || yr.Rank == 5 {
			guarded++
		}
	}
	return float64(guarded) >= gatekeeperRatio*float64(len(seq))
}

// predElevator: absolute rank delta of five or more between consecutive
// participated competitions, in at least half of the consecutive pairs.
func predElevator(c Context) bool {
	seq := c.Stats.Sequence
	pairs := len(seq) - 1
	if pairs < elevatorMinPairs {
		return false
	}
	swings := 0
	for i := 1; i < len(seq); i++ {
		delta := int(seq[i].Rank) - int(seq[i-1].Rank)
		if delta < 0 {
			delta = -delta
		}
		if delta >= elevatorDelta {
			swings++
		}
	}
	return float64(swings) >= elevatorRatio*float64(pairs)
}

// predConsistentChaos: every rank in the sequence is distinct.
func predConsistentChaos(c Context) bool {
	seq := c.Stats.Sequence
	if len(seq) < chaosMinN {
		return false
	}
	seen := make(map[model.Rank]struct{}, len(seq))
	for _, yr := range seq {
		if _, dup := seen[yr.Rank]; dup {
			return false
		}
		seen[yr.Rank] = struct{}{}
	}
	return true
}

// predGraceToGrass: a win immediately followed, in the participant's own
// ordered sequence, by a last place among that competition's field.
func predGraceToGrass(c Context) bool {
	seq := c.Stats.Sequence
	for i := 1; i < len(seq); i++ {
		if seq[i-1].Rank != model.RankGold {
			continue
		}
		if isLastPlace(c, seq[i].CompetitionID, seq[i].Rank) {
			return true
		}
	}
	return false
}

// predGrassToGrace is the symmetric reversal; it also backs the phoenix award.
func predGrassToGrace(c Context) bool {
	seq := c.Stats.Sequence
	for i := 1; i < len(seq); i++ {
		if seq[i].Rank != model.RankGold {
			continue
		}
		if isLastPlace(c, seq[i-1].CompetitionID, seq[i-1].Rank) {
			return true
		}
	}
	return false
}

// isLastPlace reports whether rank was the worst recorded rank of the given
// competition. A field of one participant is ignored: there first and last
// coincide and the reversal is meaningless.
func isLastPlace(c Context, competitionID string, rank model.Rank) bool {
	comp, ok := c.CompetitionByID[competitionID]
	if !ok || comp.ParticipantCount() < 2 {
		return false
	}
	return rank == comp.LastRank()
}

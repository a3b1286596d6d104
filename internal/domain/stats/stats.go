// Package stats computes per-participant and per-competition aggregates from
// a result-set snapshot. All functions are pure: they read the snapshot and
// return fresh values, never caching or mutating shared state.
package stats

import (
	"math"
	"sort"

	"github.com/okian/podium/internal/domain/model"
)

// YearRank is one participated, scored competition in chronological order.
type YearRank struct {
	Year          int        `json:"year"`
	Rank          model.Rank `json:"rank"`
	CompetitionID string     `json:"competition_id"`
}

// ParticipantStats holds every scalar the rule engines consume. Recomputed on
// each pass, never persisted. Mean and StdDev are 0 for an empty sequence;
// callers must treat that as "no data", not as rank zero.
type ParticipantStats struct {
	ParticipantID  model.ParticipantID `json:"participant_id"`
	Participations int                 `json:"participations"`

	// Sequence is the chronological rank sequence over scored competitions
	// the participant attended. RankByYear indexes the same data by year.
	Sequence   []YearRank         `json:"sequence"`
	RankByYear map[int]model.Rank `json:"rank_by_year"`

	Wins    int `json:"wins"`
	Podiums int `json:"podiums"`
	Top5    int `json:"top5"`

	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`

	// Best and Worst are 0 when the participant has no data.
	Best  model.Rank `json:"best"`
	Worst model.Rank `json:"worst"`

	// Mean is the arithmetic mean of the rank sequence; StdDev is the
	// population standard deviation (divide by N, not N-1).
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`

	// ParticipationRate = attended scored competitions / total scored competitions.
	ParticipationRate float64 `json:"participation_rate"`

	// Arrangements counts competitions the participant arranged
	// (third place or second-to-last place the year before).
	Arrangements int `json:"arrangements"`

	WinYears    []int `json:"win_years"`
	PodiumYears []int `json:"podium_years"`
}

// TotalMedals returns gold + silver + bronze.
func (s ParticipantStats) TotalMedals() int { return s.Gold + s.Silver + s.Bronze }

// Compute derives ParticipantStats for one participant over the given
// competitions. Competitions must be in chronological order; cancelled years
// (empty score maps) are skipped entirely.
func Compute(p model.Participant, competitions []model.Competition) ParticipantStats {
	st := ParticipantStats{
		ParticipantID: p.ID,
		RankByYear:    make(map[int]model.Rank),
	}

	scoredTotal := 0
	for _, c := range competitions {
		if c.Arranger3rd == p.ID {
			st.Arrangements++
		}
		if c.ArrangerSecondLast == p.ID {
			st.Arrangements++
		}
		if !c.Scored() {
			continue
		}
		scoredTotal++

		rank, ok := c.RankOf(p.ID)
		if !ok {
			continue
		}

		st.Participations++
		st.Sequence = append(st.Sequence, YearRank{Year: c.Year, Rank: rank, CompetitionID: c.ID})
		st.RankByYear[c.Year] = rank

		if st.Best == 0 || rank < st.Best {
			st.Best = rank
		}
		if rank > st.Worst {
			st.Worst = rank
		}

		switch rank {
		case model.RankGold:
			st.Gold++
		case model.RankSilver:
			st.Silver++
		case model.RankBronze:
			st.Bronze++
		}
		if rank == model.RankGold {
			st.Wins++
			st.WinYears = append(st.WinYears, c.Year)
		}
		if rank.Medal() {
			st.Podiums++
			st.PodiumYears = append(st.PodiumYears, c.Year)
		}
		if rank <= 5 {
			st.Top5++
		}
	}

	if n := len(st.Sequence); n > 0 {
		sum := 0.0
		for _, yr := range st.Sequence {
			sum += float64(yr.Rank)
		}
		st.Mean = sum / float64(n)

		variance := 0.0
		for _, yr := range st.Sequence {
			d := float64(yr.Rank) - st.Mean
			variance += d * d
		}
		st.StdDev = math.Sqrt(variance / float64(n))
	}
	if scoredTotal > 0 {
		st.ParticipationRate = float64(st.Participations) / float64(scoredTotal)
	}

	return st
}

// ComputeAll derives stats for every roster member against one snapshot.
func ComputeAll(snap model.Snapshot) map[model.ParticipantID]ParticipantStats {
	out := make(map[model.ParticipantID]ParticipantStats, len(snap.Participants))
	for _, p := range snap.Participants {
		out[p.ID] = Compute(p, snap.Competitions)
	}
	return out
}

// CompetitionStats summarizes one competition against the roster size.
type CompetitionStats struct {
	CompetitionID    string `json:"competition_id"`
	Year             int    `json:"year"`
	Name             string `json:"name"`
	ParticipantCount int    `json:"participant_count"`
	Scored           bool   `json:"scored"`

	// Competitiveness is the fraction of the roster that took part.
	Competitiveness float64 `json:"competitiveness"`
}

// ComputeCompetition summarizes a single competition. rosterSize of zero
// yields zero competitiveness rather than a division error.
func ComputeCompetition(c model.Competition, rosterSize int) CompetitionStats {
	cs := CompetitionStats{
		CompetitionID:    c.ID,
		Year:             c.Year,
		Name:             c.Name,
		ParticipantCount: c.ParticipantCount(),
		Scored:           c.Scored(),
	}
	if rosterSize > 0 {
		cs.Competitiveness = float64(cs.ParticipantCount) / float64(rosterSize)
	}
	return cs
}

// MedalRow is one line of the aggregate medal table.
type MedalRow struct {
	ParticipantID model.ParticipantID `json:"participant_id"`
	Gold          int                 `json:"gold"`
	Silver        int                 `json:"silver"`
	Bronze        int                 `json:"bronze"`
	Total         int                 `json:"total"`
}

// MedalTable builds the medal leaderboard from per-participant stats.
//
// Ordering: gold desc, silver desc, bronze desc, total desc, then
// participant id asc. The tie-break chain is a stable contract; the UI
// depends on it for a reproducible table.
func MedalTable(all map[model.ParticipantID]ParticipantStats) []MedalRow {
	rows := make([]MedalRow, 0, len(all))
	for id, st := range all {
		rows = append(rows, MedalRow{
			ParticipantID: id,
			Gold:          st.Gold,
			Silver:        st.Silver,
			Bronze:        st.Bronze,
			Total:         st.TotalMedals(),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Gold != b.Gold {
			return a.Gold > b.Gold
		}
		if a.Silver != b.Silver {
			return a.Silver > b.Silver
		}
		if a.Bronze != b.Bronze {
			return a.Bronze > b.Bronze
		}
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.ParticipantID < b.ParticipantID
	})
	return rows
}

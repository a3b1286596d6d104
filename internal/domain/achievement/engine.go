package achievement

import (
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/stats"
	"github.com/okian/podium/internal/domain/trend"
)

// Engine evaluates the catalogue against a result-set snapshot. It holds no
// mutable state; one engine serves any number of concurrent passes.
type Engine struct {
	catalogue *Catalogue
}

// NewEngine creates an engine bound to an immutable catalogue.
func NewEngine(c *Catalogue) *Engine {
	return &Engine{catalogue: c}
}

// Catalogue returns the engine's catalogue.
func (e *Engine) Catalogue() *Catalogue { return e.catalogue }

// Evaluation is the output of one complete pass: derived stats and trends
// per participant plus the final award map.
type Evaluation struct {
	Stats  map[model.ParticipantID]stats.ParticipantStats
	Trends map[model.ParticipantID]trend.Trend
	Awards map[model.ParticipantID]Set
}

// EvaluateAll performs one atomic pass over the snapshot: aggregate stats,
// trend analytics, pattern rules per participant, then the comparative
// rules over everyone. The result depends only on the snapshot content.
func (e *Engine) EvaluateAll(snap model.Snapshot) Evaluation {
	allStats := stats.ComputeAll(snap)

	scored := snap.ScoredCompetitions()
	scoredYears := make([]int, 0, len(scored))
	byID := make(map[string]model.Competition, len(snap.Competitions))
	for _, c := range snap.Competitions {
		byID[c.ID] = c
	}
	for _, c := range scored {
		scoredYears = append(scoredYears, c.Year)
	}

	ev := Evaluation{
		Stats:  allStats,
		Trends: make(map[model.ParticipantID]trend.Trend, len(snap.Participants)),
		Awards: make(map[model.ParticipantID]Set, len(snap.Participants)),
	}

	for _, p := range snap.Participants {
		st := allStats[p.ID]

		seq := make([]model.Rank, len(st.Sequence))
		for i, yr := range st.Sequence {
			seq[i] = yr.Rank
		}
		tr := trend.Compute(seq, st.RankByYear, scoredYears)
		ev.Trends[p.ID] = tr

		ev.Awards[p.ID] = e.evaluatePatterns(Context{
			Participant:     p,
			Stats:           st,
			Trend:           tr,
			ScoredCount:     len(scored),
			CompetitionByID: byID,
		})
	}

	evaluateComparative(snap, allStats, ev.Awards)
	return ev
}

// evaluatePatterns runs every non-comparative predicate for one participant.
func (e *Engine) evaluatePatterns(ctx Context) Set {
	achieved := make(Set)
	for _, def := range e.catalogue.defs {
		if def.Comparative || def.predicate == nil {
			continue
		}
		if def.predicate(ctx) {
			achieved.Add(def.ID)
		}
	}
	return achieved
}

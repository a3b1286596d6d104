// Package scoring converts achieved badges into achievement points for the
// points leaderboard. Points never influence eligibility; they are a
// presentation-layer ranking of rarity-weighted base points.
package scoring

import (
	"sort"

	"github.com/okian/podium/internal/domain/achievement"
	"github.com/okian/podium/internal/domain/model"
)

// Option applies a configuration option to the PointsScorer.
type Option func(*PointsScorer)

// WithMultiplier overrides the point multiplier for one rarity tier.
func WithMultiplier(rarity achievement.Rarity, multiplier float64) Option {
	return func(s *PointsScorer) {
		if multiplier > 0 {
			s.multipliers[rarity] = multiplier
		}
	}
}

// Row is one line of the achievement points leaderboard.
type Row struct {
	ParticipantID model.ParticipantID `json:"participant_id"`
	Points        float64             `json:"points"`
	Achievements  int                 `json:"achievements"`
}

// PointsScorer computes rarity-weighted points from award sets.
type PointsScorer struct {
	multipliers map[achievement.Rarity]float64
}

// NewPointsScorer creates a scorer with the standard rarity multipliers
// (common 1.0, rare 1.5, epic 2.0, legendary 3.0, mythic 5.0).
func NewPointsScorer(opts ...Option) *PointsScorer {
	s := &PointsScorer{
		multipliers: map[achievement.Rarity]float64{
			achievement.RarityCommon:    achievement.RarityCommon.Multiplier(),
			achievement.RarityRare:      achievement.RarityRare.Multiplier(),
			achievement.RarityEpic:      achievement.RarityEpic.Multiplier(),
			achievement.RarityLegendary: achievement.RarityLegendary.Multiplier(),
			achievement.RarityMythic:    achievement.RarityMythic.Multiplier(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score builds the points leaderboard from an award map.
//
// Ordering: points desc, then participant id asc for determinism.
func (s *PointsScorer) Score(
	catalogue *achievement.Catalogue,
	awards map[model.ParticipantID]achievement.Set,
) []Row {
	rows := make([]Row, 0, len(awards))
	for id, set := range awards {
		row := Row{ParticipantID: id}
		for _, achID := range set.IDs() {
			def, err := catalogue.Lookup(achID)
			if err != nil {
				continue
			}
			row.Points += float64(def.BasePoints) * s.multipliers[def.Rarity]
			row.Achievements++
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].ParticipantID < rows[j].ParticipantID
	})
	return rows
}

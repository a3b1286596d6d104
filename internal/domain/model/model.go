// Package model contains domain models passed between layers.
package model

import (
	"sort"
	"strings"
)

// ParticipantID is a caller-supplied stable identifier. The engine never
// generates ids; reproducible inputs are required for reproducible awards.
type ParticipantID string

// Rank is a finishing position in one competition. 1 means first place.
// Ties are permitted by source data; ranks are always >= 1.
type Rank int

// Medal colors for ranks 1-3.
const (
	RankGold   Rank = 1
	RankSilver Rank = 2
	RankBronze Rank = 3
)

// Medal reports whether the rank is a podium finish.
func (r Rank) Medal() bool { return r >= RankGold && r <= RankBronze }

// Status describes a participant's roster state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusRetired  Status = "retired"
)

// Participant is one member of the fixed roster. Immutable for the lifetime
// of a computation pass.
type Participant struct {
	ID          ParticipantID `json:"id"`
	DisplayName string        `json:"display_name"`
	Nickname    string        `json:"nickname"`
	Status      Status        `json:"status"`
}

// Surname returns the last whitespace-delimited token of the display name,
// lowercased. Used for family grouping.
func (p Participant) Surname() string {
	fields := strings.Fields(p.DisplayName)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[len(fields)-1])
}

// Competition is one annual event. A competition with an empty Scores map is
// a cancelled year: it occupies a year slot but contributes nothing to rank
// statistics, streak continuity, or participation checks.
type Competition struct {
	ID       string                 `json:"id"`
	Year     int                    `json:"year"`
	Name     string                 `json:"name"`
	Location string                 `json:"location"`
	Scores   map[ParticipantID]Rank `json:"scores"`

	// Arranger3rd and ArrangerSecondLast record who arranged the event,
	// per the house rule that third and second-to-last place arrange next year.
	Arranger3rd        ParticipantID `json:"arranger_3rd,omitempty"`
	ArrangerSecondLast ParticipantID `json:"arranger_second_last,omitempty"`
}

// Scored reports whether the competition has at least one recorded rank.
func (c Competition) Scored() bool { return len(c.Scores) > 0 }

// RankOf returns the participant's rank and whether they participated.
func (c Competition) RankOf(id ParticipantID) (Rank, bool) {
	r, ok := c.Scores[id]
	return r, ok
}

// LastRank returns the numerically highest (worst) rank recorded, or 0 for a
// cancelled year.
func (c Competition) LastRank() Rank {
	var worst Rank
	for _, r := range c.Scores {
		if r > worst {
			worst = r
		}
	}
	return worst
}

// ParticipantCount returns the number of recorded ranks.
func (c Competition) ParticipantCount() int { return len(c.Scores) }

// Snapshot is an immutable view of the full result set. All engine passes
// read exactly one snapshot; the repository guarantees the ordering below.
//
// Ordering: participants ascending by ID, competitions ascending by
// (Year, ID). Deterministic iteration order is part of the contract; the
// comparative rules use it as the documented tie-break.
type Snapshot struct {
	Version      uint64        `json:"version"`
	Participants []Participant `json:"participants"`
	Competitions []Competition `json:"competitions"`
}

// Participant looks up a roster member by id.
func (s Snapshot) Participant(id ParticipantID) (Participant, bool) {
	i := sort.Search(len(s.Participants), func(i int) bool {
		return s.Participants[i].ID >= id
	})
	if i < len(s.Participants) && s.Participants[i].ID == id {
		return s.Participants[i], true
	}
	return Participant{}, false
}

// ScoredCompetitions returns the competitions that actually have results,
// preserving chronological order. Cancelled years are excluded.
func (s Snapshot) ScoredCompetitions() []Competition {
	scored := make([]Competition, 0, len(s.Competitions))
	for _, c := range s.Competitions {
		if c.Scored() {
			scored = append(scored, c)
		}
	}
	return scored
}

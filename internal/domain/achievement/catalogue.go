// Package achievement defines the badge catalogue and the rule engines that
// evaluate it against derived statistics. The catalogue is an immutable value
// constructed once at startup and threaded through every engine call; there
// is no ambient global registry.
package achievement

import (
	"sort"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/stats"
	"github.com/okian/podium/internal/domain/trend"
)

// ID uniquely identifies an achievement in the catalogue.
type ID string

// Category groups achievements for presentation.
type Category string

const (
	CategoryMedals        Category = "medals"
	CategoryStreaks       Category = "streaks"
	CategoryPatterns      Category = "patterns"
	CategoryReversals     Category = "reversals"
	CategoryParticipation Category = "participation"
	CategoryComparative   Category = "comparative"
)

// Rarity tiers carry a point multiplier used only for scoring, never for
// eligibility.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// Multiplier returns the point multiplier for the rarity tier.
func (r Rarity) Multiplier() float64 {
	switch r {
	case RarityRare:
		return 1.5
	case RarityEpic:
		return 2.0
	case RarityLegendary:
		return 3.0
	case RarityMythic:
		return 5.0
	default:
		return 1.0
	}
}

// Context bundles everything a pattern predicate may read: the participant,
// their derived stats and trend, and the snapshot-wide indexes needed for
// positional rules. Predicates are pure and must not retain the context.
type Context struct {
	Participant     model.Participant
	Stats           stats.ParticipantStats
	Trend           trend.Trend
	ScoredCount     int
	CompetitionByID map[string]model.Competition
}

// Predicate decides whether a single participant has earned an achievement.
type Predicate func(Context) bool

// Definition is one catalogue entry. Comparative achievements carry no
// predicate; they are awarded by the comparative engine, which needs every
// participant's stats at once.
type Definition struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Rarity      Rarity   `json:"rarity"`
	BasePoints  int      `json:"base_points"`
	Comparative bool     `json:"comparative"`

	predicate Predicate
}

// Catalogue is the closed, immutable set of achievement definitions.
type Catalogue struct {
	defs []Definition
	byID map[ID]Definition
}

// Achievement ids. The exact thresholds behind each id are a discrete
// contract; see the predicate implementations.
const (
	GoldKing        ID = "gold_king"
	GoldCollector   ID = "gold_collector"
	SilverLining    ID = "silver_lining"
	Bridesmaid      ID = "bridesmaid"
	MedalMagnet     ID = "medal_magnet"
	FullSet         ID = "full_set"
	WinStreak3      ID = "win_streak_3"
	BackToBack      ID = "back_to_back"
	PodiumStreak5   ID = "podium_streak_5"
	PodiumStreak3   ID = "podium_streak_3"
	NeverMissed     ID = "never_missed"
	ComebackKing    ID = "comeback_king"
	OddEvenOracle   ID = "odd_even_oracle"
	Gatekeeper      ID = "gatekeeper"
	Elevator        ID = "elevator"
	ConsistentChaos ID = "consistent_chaos"
	GraceToGrass    ID = "grace_to_grass"
	GrassToGrace    ID = "grass_to_grace"
	Phoenix         ID = "phoenix"

	Goat           ID = "goat"
	MedalHoarder   ID = "medal_hoarder"
	MostConsistent ID = "most_consistent"
	HostHero       ID = "host_hero"
	DecadeChampion ID = "decade_champion"
	TheCloser      ID = "the_closer"
	BiggestRivalry ID = "biggest_rivalry"
	FamilyFeud     ID = "family_feud"
)

// NewCatalogue builds the full achievement catalogue. The returned value is
// immutable; callers share it freely across goroutines.
func NewCatalogue() *Catalogue {
	defs := []Definition{
		{ID: GoldKing, Name: "Gold King", Description: "Five or more victories", Category: CategoryMedals, Rarity: RarityLegendary, BasePoints: 100, predicate: predGoldKing},
		{ID: GoldCollector, Name: "Gold Collector", Description: "Three or four victories", Category: CategoryMedals, Rarity: RarityEpic, BasePoints: 60, predicate: predGoldCollector},
		{ID: SilverLining, Name: "Silver Lining", Description: "Three silvers without a single gold", Category: CategoryMedals, Rarity: RarityRare, BasePoints: 30, predicate: predSilverLining},
		{ID: Bridesmaid, Name: "Bridesmaid", Description: "Five silvers and never a gold", Category: CategoryMedals, Rarity: RarityEpic, BasePoints: 50, predicate: predBridesmaid},
		{ID: MedalMagnet, Name: "Medal Magnet", Description: "Ten medals of any color", Category: CategoryMedals, Rarity: RarityEpic, BasePoints: 60, predicate: predMedalMagnet},
		{ID: FullSet, Name: "Full Set", Description: "At least one gold, one silver and one bronze", Category: CategoryMedals, Rarity: RarityRare, BasePoints: 30, predicate: predFullSet},

		{ID: WinStreak3, Name: "Dynasty", Description: "Three consecutive winning years", Category: CategoryStreaks, Rarity: RarityEpic, BasePoints: 70, predicate: predWinStreak3},
		{ID: BackToBack, Name: "Back to Back", Description: "Two consecutive winning years", Category: CategoryStreaks, Rarity: RarityRare, BasePoints: 40, predicate: predBackToBack},
		{ID: PodiumStreak5, Name: "Podium Fixture", Description: "Five consecutive podium years", Category: CategoryStreaks, Rarity: RarityEpic, BasePoints: 60, predicate: predPodiumStreak5},
		{ID: PodiumStreak3, Name: "Podium Regular", Description: "Three consecutive podium years", Category: CategoryStreaks, Rarity: RarityRare, BasePoints: 30, predicate: predPodiumStreak3},
		{ID: NeverMissed, Name: "Never Missed", Description: "Attended every scored competition", Category: CategoryParticipation, Rarity: RarityEpic, BasePoints: 50, predicate: predNeverMissed},
		{ID: ComebackKing, Name: "Comeback King", Description: "Won again after a drought of three years or more", Category: CategoryStreaks, Rarity: RarityRare, BasePoints: 40, predicate: predComebackKing},

		{ID: OddEvenOracle, Name: "Odd-Even Oracle", Description: "Rank parity follows year parity in four of five years", Category: CategoryPatterns, Rarity: RarityEpic, BasePoints: 50, predicate: predOddEvenOracle},
		{ID: Gatekeeper, Name: "Gatekeeper", Description: "Guards fourth and fifth place most years", Category: CategoryPatterns, Rarity: RarityRare, BasePoints: 30, predicate: predGatekeeper},
		{ID: Elevator, Name: "Elevator", Description: "Rank swings of five or more between appearances", Category: CategoryPatterns, Rarity: RarityRare, BasePoints: 30, predicate: predElevator},
		{ID: ConsistentChaos, Name: "Consistent Chaos", Description: "Never the same rank twice", Category: CategoryPatterns, Rarity: RarityEpic, BasePoints: 50, predicate: predConsistentChaos},

		{ID: GraceToGrass, Name: "Grace to Grass", Description: "From first place straight to last", Category: CategoryReversals, Rarity: RarityRare, BasePoints: 40, predicate: predGraceToGrass},
		{ID: GrassToGrace, Name: "Grass to Grace", Description: "From last place straight to first", Category: CategoryReversals, Rarity: RarityEpic, BasePoints: 60, predicate: predGrassToGrace},
		{ID: Phoenix, Name: "Phoenix", Description: "Rose from the ashes of a last place", Category: CategoryReversals, Rarity: RarityLegendary, BasePoints: 80, predicate: predGrassToGrace},

		{ID: Goat, Name: "GOAT", Description: "Most wins of all time, five at minimum", Category: CategoryComparative, Rarity: RarityMythic, BasePoints: 150, Comparative: true},
		{ID: MedalHoarder, Name: "Medal Hoarder", Description: "Most medals of all time, five at minimum", Category: CategoryComparative, Rarity: RarityLegendary, BasePoints: 100, Comparative: true},
		{ID: MostConsistent, Name: "Metronome", Description: "Lowest rank deviation among the regulars", Category: CategoryComparative, Rarity: RarityEpic, BasePoints: 60, Comparative: true},
		{ID: HostHero, Name: "Host Hero", Description: "Arranged the most competitions, three at minimum", Category: CategoryComparative, Rarity: RarityRare, BasePoints: 40, Comparative: true},
		{ID: DecadeChampion, Name: "Champion of the Decade", Description: "Most wins in the last ten years, three at minimum", Category: CategoryComparative, Rarity: RarityEpic, BasePoints: 70, Comparative: true},
		{ID: TheCloser, Name: "The Closer", Description: "Best average rank over the last three competitions", Category: CategoryComparative, Rarity: RarityEpic, BasePoints: 60, Comparative: true},
		{ID: BiggestRivalry, Name: "Biggest Rivalry", Description: "The most contested head-to-head in history", Category: CategoryComparative, Rarity: RarityLegendary, BasePoints: 80, Comparative: true},
		{ID: FamilyFeud, Name: "Family Feud", Description: "Beat a family member five times", Category: CategoryComparative, Rarity: RarityRare, BasePoints: 40, Comparative: true},
	}

	byID := make(map[ID]Definition, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}
	return &Catalogue{defs: defs, byID: byID}
}

// All returns the catalogue entries in declaration order. The slice is a
// copy; mutating it does not affect the catalogue.
func (c *Catalogue) All() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Lookup returns the definition for id, or ErrUnknownAchievement.
func (c *Catalogue) Lookup(id ID) (Definition, error) {
	d, ok := c.byID[id]
	if !ok {
		return Definition{}, ErrUnknownAchievement
	}
	return d, nil
}

// Len returns the number of catalogue entries.
func (c *Catalogue) Len() int { return len(c.defs) }

// Set is an unordered collection of achieved ids.
type Set map[ID]struct{}

// Add records an achievement.
func (s Set) Add(id ID) { s[id] = struct{}{} }

// Has reports whether id is in the set.
func (s Set) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the set contents sorted ascending, for stable output.
func (s Set) IDs() []ID {
	out := make([]ID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

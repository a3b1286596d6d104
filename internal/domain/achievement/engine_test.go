package achievement_test

import (
	"fmt"
	"testing"

	"github.com/okian/podium/internal/domain/achievement"
	"github.com/okian/podium/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

// buildSnapshot assembles an ordered snapshot from yearly rank rows. A nil
// row is a cancelled year.
func buildSnapshot(ids []model.ParticipantID, firstYear int, years []map[model.ParticipantID]model.Rank) model.Snapshot {
	snap := model.Snapshot{}
	for _, id := range ids {
		snap.Participants = append(snap.Participants, model.Participant{
			ID:          id,
			DisplayName: fmt.Sprintf("Player %s", id),
			Status:      model.StatusActive,
		})
	}
	for i, scores := range years {
		year := firstYear + i
		snap.Competitions = append(snap.Competitions, model.Competition{
			ID:     fmt.Sprintf("comp-%d", year),
			Year:   year,
			Scores: scores,
		})
	}
	return snap
}

func evaluate(snap model.Snapshot) achievement.Evaluation {
	return achievement.NewEngine(achievement.NewCatalogue()).EvaluateAll(snap)
}

func TestEvaluateAll_ThreeYearSweep(t *testing.T) {
	convey.Convey("Given A wins three straight years over B and C", t, func() {
		ids := []model.ParticipantID{"a", "b", "c"}
		snap := buildSnapshot(ids, 2020, []map[model.ParticipantID]model.Rank{
			{"a": 1, "b": 2, "c": 3},
			{"a": 1, "b": 2, "c": 3},
			{"a": 1, "b": 2, "c": 3},
		})

		ev := evaluate(snap)

		convey.Convey("Then A holds the streak and collector awards", func() {
			convey.So(ev.Awards["a"].Has(achievement.WinStreak3), convey.ShouldBeTrue)
			convey.So(ev.Awards["a"].Has(achievement.BackToBack), convey.ShouldBeTrue)
			convey.So(ev.Awards["a"].Has(achievement.PodiumStreak3), convey.ShouldBeTrue)
			convey.So(ev.Awards["a"].Has(achievement.GoldCollector), convey.ShouldBeTrue)
			convey.So(ev.Awards["a"].Has(achievement.GoldKing), convey.ShouldBeFalse)
		})

		convey.Convey("Then B has silver lining but not yet bridesmaid", func() {
			convey.So(ev.Awards["b"].Has(achievement.SilverLining), convey.ShouldBeTrue)
			convey.So(ev.Awards["b"].Has(achievement.Bridesmaid), convey.ShouldBeFalse)
		})

		convey.Convey("Then everyone who attended every year never missed", func() {
			convey.So(ev.Awards["a"].Has(achievement.NeverMissed), convey.ShouldBeTrue)
			convey.So(ev.Awards["c"].Has(achievement.NeverMissed), convey.ShouldBeTrue)
		})

		convey.Convey("Then the trend invariant holds for every participant", func() {
			for _, tr := range ev.Trends {
				convey.So(tr.MaxWinStreak, convey.ShouldBeLessThanOrEqualTo, tr.MaxPodiumStreak)
			}
		})
	})
}

func TestEvaluateAll_GoldThresholds(t *testing.T) {
	convey.Convey("Given participants with exactly 3, 4 and 5 golds", t, func() {
		ids := []model.ParticipantID{"three", "four", "five", "pad"}
		years := make([]map[model.ParticipantID]model.Rank, 0, 12)
		addWin := func(winner model.ParticipantID, n int) {
			for i := 0; i < n; i++ {
				row := map[model.ParticipantID]model.Rank{winner: 1, "pad": 2}
				if winner == "pad" {
					row = map[model.ParticipantID]model.Rank{winner: 1, "three": 2}
				}
				years = append(years, row)
			}
		}
		addWin("three", 3)
		addWin("four", 4)
		addWin("five", 5)

		snap := buildSnapshot(ids, 2010, years)
		ev := evaluate(snap)

		convey.Convey("Then 3 and 4 golds are collector, never king", func() {
			convey.So(ev.Awards["three"].Has(achievement.GoldCollector), convey.ShouldBeTrue)
			convey.So(ev.Awards["three"].Has(achievement.GoldKing), convey.ShouldBeFalse)
			convey.So(ev.Awards["four"].Has(achievement.GoldCollector), convey.ShouldBeTrue)
			convey.So(ev.Awards["four"].Has(achievement.GoldKing), convey.ShouldBeFalse)
		})

		convey.Convey("Then 5 golds is king and no longer collector", func() {
			convey.So(ev.Awards["five"].Has(achievement.GoldKing), convey.ShouldBeTrue)
			convey.So(ev.Awards["five"].Has(achievement.GoldCollector), convey.ShouldBeFalse)
		})

		convey.Convey("Then the five-time winner is also the GOAT", func() {
			convey.So(ev.Awards["five"].Has(achievement.Goat), convey.ShouldBeTrue)
			convey.So(ev.Awards["four"].Has(achievement.Goat), convey.ShouldBeFalse)
		})
	})
}

func TestEvaluateAll_Reversals(t *testing.T) {
	convey.Convey("Given a win followed by a last place in a twelve-strong field", t, func() {
		ids := make([]model.ParticipantID, 0, 12)
		for i := 0; i < 12; i++ {
			ids = append(ids, model.ParticipantID(fmt.Sprintf("p%02d", i+1)))
		}

		year1 := map[model.ParticipantID]model.Rank{}
		year2 := map[model.ParticipantID]model.Rank{}
		for i, id := range ids {
			year1[id] = model.Rank(i + 1)             // p01 wins
			year2[id] = model.Rank(len(ids) - i)      // p01 last
		}

		snap := buildSnapshot(ids, 2020, []map[model.ParticipantID]model.Rank{year1, year2})
		ev := evaluate(snap)

		convey.Convey("Then the faller gets grace_to_grass", func() {
			convey.So(ev.Awards["p01"].Has(achievement.GraceToGrass), convey.ShouldBeTrue)
		})

		convey.Convey("Then the riser gets grass_to_grace and phoenix", func() {
			convey.So(ev.Awards["p12"].Has(achievement.GrassToGrace), convey.ShouldBeTrue)
			convey.So(ev.Awards["p12"].Has(achievement.Phoenix), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a field of one the reversal is meaningless", t, func() {
		snap := buildSnapshot([]model.ParticipantID{"solo"}, 2020, []map[model.ParticipantID]model.Rank{
			{"solo": 1},
			{"solo": 1},
		})
		ev := evaluate(snap)

		convey.Convey("Then no reversal award is granted", func() {
			convey.So(ev.Awards["solo"].Has(achievement.GraceToGrass), convey.ShouldBeFalse)
			convey.So(ev.Awards["solo"].Has(achievement.GrassToGrace), convey.ShouldBeFalse)
		})
	})
}

func TestEvaluateAll_CancelledYears(t *testing.T) {
	convey.Convey("Given a cancelled year inside a winning run", t, func() {
		ids := []model.ParticipantID{"a", "b"}
		snap := buildSnapshot(ids, 2020, []map[model.ParticipantID]model.Rank{
			{"a": 1, "b": 2},
			nil, // cancelled
			{"a": 1, "b": 2},
			{"a": 1, "b": 2},
		})

		ev := evaluate(snap)

		convey.Convey("Then the cancelled year never breaks the streak", func() {
			convey.So(ev.Trends["a"].MaxWinStreak, convey.ShouldEqual, 3)
			convey.So(ev.Awards["a"].Has(achievement.WinStreak3), convey.ShouldBeTrue)
		})

		convey.Convey("Then never_missed survives the cancelled year", func() {
			convey.So(ev.Awards["a"].Has(achievement.NeverMissed), convey.ShouldBeTrue)
			convey.So(ev.Awards["b"].Has(achievement.NeverMissed), convey.ShouldBeTrue)
		})
	})
}

func TestEvaluateAll_ComebackKing(t *testing.T) {
	convey.Convey("Given win years separated by a drought", t, func() {
		ids := []model.ParticipantID{"a", "b"}

		convey.Convey("When the gap is three years", func() {
			snap := buildSnapshot(ids, 2020, []map[model.ParticipantID]model.Rank{
				{"a": 1, "b": 2},
				{"a": 2, "b": 1},
				{"a": 2, "b": 1},
				{"a": 1, "b": 2}, // 2023, gap of 3 from 2020
			})
			ev := evaluate(snap)

			convey.Convey("Then the comeback is awarded", func() {
				convey.So(ev.Awards["a"].Has(achievement.ComebackKing), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the wins are adjacent years", func() {
			snap := buildSnapshot(ids, 2020, []map[model.ParticipantID]model.Rank{
				{"a": 1, "b": 2},
				{"a": 1, "b": 2},
			})
			ev := evaluate(snap)

			convey.Convey("Then there is no comeback", func() {
				convey.So(ev.Awards["a"].Has(achievement.ComebackKing), convey.ShouldBeFalse)
			})
		})
	})
}

func TestEvaluateAll_ComparativeTieBreak(t *testing.T) {
	convey.Convey("Given two participants tied on wins at the threshold", t, func() {
		ids := []model.ParticipantID{"alpha", "beta", "pad1", "pad2"}
		years := make([]map[model.ParticipantID]model.Rank, 0, 10)
		for i := 0; i < 5; i++ {
			years = append(years, map[model.ParticipantID]model.Rank{"alpha": 1, "pad1": 2})
			years = append(years, map[model.ParticipantID]model.Rank{"beta": 1, "pad2": 2})
		}

		snap := buildSnapshot(ids, 2010, years)
		ev := evaluate(snap)

		convey.Convey("Then the first participant in id order wins the tie", func() {
			convey.So(ev.Awards["alpha"].Has(achievement.Goat), convey.ShouldBeTrue)
			convey.So(ev.Awards["beta"].Has(achievement.Goat), convey.ShouldBeFalse)
		})
	})
}

func TestEvaluateAll_Rivalry(t *testing.T) {
	convey.Convey("Given two participants trading wins for six years", t, func() {
		ids := []model.ParticipantID{"a", "b", "loner"}
		years := make([]map[model.ParticipantID]model.Rank, 0, 6)
		for i := 0; i < 6; i++ {
			if i%2 == 0 {
				years = append(years, map[model.ParticipantID]model.Rank{"a": 1, "b": 2})
			} else {
				years = append(years, map[model.ParticipantID]model.Rank{"a": 2, "b": 1})
			}
		}

		snap := buildSnapshot(ids, 2015, years)
		ev := evaluate(snap)

		convey.Convey("Then both rivals are awarded and the bystander is not", func() {
			convey.So(ev.Awards["a"].Has(achievement.BiggestRivalry), convey.ShouldBeTrue)
			convey.So(ev.Awards["b"].Has(achievement.BiggestRivalry), convey.ShouldBeTrue)
			convey.So(ev.Awards["loner"].Has(achievement.BiggestRivalry), convey.ShouldBeFalse)
		})
	})
}

func TestEvaluateAll_FamilyFeud(t *testing.T) {
	convey.Convey("Given siblings who share a surname", t, func() {
		snap := model.Snapshot{
			Participants: []model.Participant{
				{ID: "a", DisplayName: "Anna Berg"},
				{ID: "b", DisplayName: "Bo Berg"},
				{ID: "c", DisplayName: "Cecilia Holm"},
			},
		}
		for year := 2018; year <= 2022; year++ {
			snap.Competitions = append(snap.Competitions, model.Competition{
				ID:   fmt.Sprintf("comp-%d", year),
				Year: year,
				Scores: map[model.ParticipantID]model.Rank{
					"a": 1, "b": 2, "c": 3,
				},
			})
		}

		ev := evaluate(snap)

		convey.Convey("Then the dominant sibling gets family_feud", func() {
			convey.So(ev.Awards["a"].Has(achievement.FamilyFeud), convey.ShouldBeTrue)
		})
		convey.Convey("Then the beaten sibling and the outsider do not", func() {
			convey.So(ev.Awards["b"].Has(achievement.FamilyFeud), convey.ShouldBeFalse)
			convey.So(ev.Awards["c"].Has(achievement.FamilyFeud), convey.ShouldBeFalse)
		})
	})
}

func TestEvaluateAll_Determinism(t *testing.T) {
	convey.Convey("Given the same snapshot evaluated twice", t, func() {
		ids := []model.ParticipantID{"a", "b", "c", "d"}
		snap := buildSnapshot(ids, 2016, []map[model.ParticipantID]model.Rank{
			{"a": 1, "b": 2, "c": 3, "d": 4},
			{"a": 2, "b": 1, "c": 4, "d": 3},
			nil,
			{"a": 1, "b": 3, "c": 2, "d": 4},
			{"a": 4, "b": 1, "c": 3, "d": 2},
		})

		first := evaluate(snap)
		second := evaluate(snap)

		convey.Convey("Then stats, trends and awards are all identical", func() {
			convey.So(second.Stats, convey.ShouldResemble, first.Stats)
			convey.So(second.Trends, convey.ShouldResemble, first.Trends)
			convey.So(second.Awards, convey.ShouldResemble, first.Awards)
		})
	})
}

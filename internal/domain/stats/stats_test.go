package stats_test

import (
	"testing"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/stats"
	"github.com/smartystreets/goconvey/convey"
)

func comp(id string, year int, scores map[model.ParticipantID]model.Rank) model.Competition {
	return model.Competition{ID: id, Year: year, Scores: scores}
}

func TestCompute(t *testing.T) {
	convey.Convey("Given a participant with a mixed history", t, func() {
		p := model.Participant{ID: "a", DisplayName: "Anna Lindqvist"}
		competitions := []model.Competition{
			comp("c1", 2020, map[model.ParticipantID]model.Rank{"a": 1, "b": 2}),
			comp("c2", 2021, map[model.ParticipantID]model.Rank{"a": 2, "b": 1}),
			comp("c3", 2022, nil), // cancelled
			comp("c4", 2023, map[model.ParticipantID]model.Rank{"a": 3, "b": 1}),
			comp("c5", 2024, map[model.ParticipantID]model.Rank{"b": 1}), // missed
		}

		st := stats.Compute(p, competitions)

		convey.Convey("Then participation skips cancelled and missed years", func() {
			convey.So(st.Participations, convey.ShouldEqual, 3)
			convey.So(len(st.Sequence), convey.ShouldEqual, 3)
			convey.So(st.RankByYear[2020], convey.ShouldEqual, model.RankGold)
			convey.So(st.RankByYear[2023], convey.ShouldEqual, model.RankBronze)
		})

		convey.Convey("Then medal counters match the sequence", func() {
			convey.So(st.Gold, convey.ShouldEqual, 1)
			convey.So(st.Silver, convey.ShouldEqual, 1)
			convey.So(st.Bronze, convey.ShouldEqual, 1)
			convey.So(st.TotalMedals(), convey.ShouldEqual, 3)
			convey.So(st.Wins, convey.ShouldEqual, 1)
			convey.So(st.Podiums, convey.ShouldEqual, 3)
			convey.So(st.Top5, convey.ShouldEqual, 3)
		})

		convey.Convey("Then best, worst and the means follow", func() {
			convey.So(st.Best, convey.ShouldEqual, model.RankGold)
			convey.So(st.Worst, convey.ShouldEqual, model.RankBronze)
			convey.So(st.Mean, convey.ShouldAlmostEqual, 2.0)
			// population std dev of (1,2,3) = sqrt(2/3)
			convey.So(st.StdDev, convey.ShouldAlmostEqual, 0.8164965809, 1e-9)
		})

		convey.Convey("Then participation rate counts only scored years", func() {
			// attended 3 of 4 scored competitions
			convey.So(st.ParticipationRate, convey.ShouldAlmostEqual, 0.75)
		})

		convey.Convey("Then win and podium years are recorded", func() {
			convey.So(st.WinYears, convey.ShouldResemble, []int{2020})
			convey.So(st.PodiumYears, convey.ShouldResemble, []int{2020, 2021, 2023})
		})
	})

	convey.Convey("Given a participant with no history", t, func() {
		st := stats.Compute(model.Participant{ID: "z"}, nil)

		convey.Convey("Then all aggregates are zero and safe", func() {
			convey.So(st.Participations, convey.ShouldEqual, 0)
			convey.So(st.Mean, convey.ShouldEqual, 0)
			convey.So(st.StdDev, convey.ShouldEqual, 0)
			convey.So(st.Best, convey.ShouldEqual, model.Rank(0))
			convey.So(st.ParticipationRate, convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given arranger records across years", t, func() {
		p := model.Participant{ID: "a"}
		competitions := []model.Competition{
			{ID: "c1", Year: 2020, Arranger3rd: "a", Scores: map[model.ParticipantID]model.Rank{"a": 4}},
			{ID: "c2", Year: 2021, ArrangerSecondLast: "a"}, // cancelled year still counts the arrangement
		}

		st := stats.Compute(p, competitions)

		convey.Convey("Then arrangements count on scored and cancelled years", func() {
			convey.So(st.Arrangements, convey.ShouldEqual, 2)
		})
	})
}

func TestMedalTable(t *testing.T) {
	convey.Convey("Given per-participant stats with ties", t, func() {
		all := map[model.ParticipantID]stats.ParticipantStats{
			"c": {ParticipantID: "c", Gold: 2, Silver: 0, Bronze: 1},
			"a": {ParticipantID: "a", Gold: 2, Silver: 1, Bronze: 0},
			"b": {ParticipantID: "b", Gold: 3, Silver: 0, Bronze: 0},
			"d": {ParticipantID: "d", Gold: 2, Silver: 1, Bronze: 0},
		}

		rows := stats.MedalTable(all)

		convey.Convey("Then gold dominates the ordering", func() {
			convey.So(rows[0].ParticipantID, convey.ShouldEqual, model.ParticipantID("b"))
		})

		convey.Convey("Then silver breaks gold ties and id breaks full ties", func() {
			convey.So(rows[1].ParticipantID, convey.ShouldEqual, model.ParticipantID("a"))
			convey.So(rows[2].ParticipantID, convey.ShouldEqual, model.ParticipantID("d"))
			convey.So(rows[3].ParticipantID, convey.ShouldEqual, model.ParticipantID("c"))
		})

		convey.Convey("Then totals are derived", func() {
			convey.So(rows[1].Total, convey.ShouldEqual, 3)
		})
	})
}

func TestComputeCompetition(t *testing.T) {
	convey.Convey("Given a competition and a roster size", t, func() {
		c := comp("c1", 2024, map[model.ParticipantID]model.Rank{"a": 1, "b": 2, "c": 3})

		convey.Convey("Then competitiveness is attendance over roster", func() {
			cs := stats.ComputeCompetition(c, 6)
			convey.So(cs.Scored, convey.ShouldBeTrue)
			convey.So(cs.ParticipantCount, convey.ShouldEqual, 3)
			convey.So(cs.Competitiveness, convey.ShouldAlmostEqual, 0.5)
		})

		convey.Convey("Then a zero roster yields zero, not a panic", func() {
			cs := stats.ComputeCompetition(c, 0)
			convey.So(cs.Competitiveness, convey.ShouldEqual, 0)
		})
	})
}

func TestComputeAll_Determinism(t *testing.T) {
	convey.Convey("Given one snapshot evaluated twice", t, func() {
		snap := model.Snapshot{
			Participants: []model.Participant{{ID: "a"}, {ID: "b"}},
			Competitions: []model.Competition{
				comp("c1", 2020, map[model.ParticipantID]model.Rank{"a": 1, "b": 2}),
				comp("c2", 2021, map[model.ParticipantID]model.Rank{"a": 2, "b": 1}),
			},
		}

		first := stats.ComputeAll(snap)
		second := stats.ComputeAll(snap)

		convey.Convey("Then the results are identical", func() {
			convey.So(second, convey.ShouldResemble, first)
		})
	})
}

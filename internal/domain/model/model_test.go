package model_test

import (
	"testing"

	"github.com/okian/podium/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRank_Medal(t *testing.T) {
	convey.Convey("Given finishing ranks", t, func() {
		convey.Convey("Then ranks 1-3 are medals", func() {
			convey.So(model.RankGold.Medal(), convey.ShouldBeTrue)
			convey.So(model.RankSilver.Medal(), convey.ShouldBeTrue)
			convey.So(model.RankBronze.Medal(), convey.ShouldBeTrue)
		})
		convey.Convey("Then rank 4 and beyond are not", func() {
			convey.So(model.Rank(4).Medal(), convey.ShouldBeFalse)
			convey.So(model.Rank(12).Medal(), convey.ShouldBeFalse)
		})
		convey.Convey("Then the zero rank is not a medal", func() {
			convey.So(model.Rank(0).Medal(), convey.ShouldBeFalse)
		})
	})
}

func TestParticipant_Surname(t *testing.T) {
	convey.Convey("Given participants with various display names", t, func() {
		convey.Convey("Then the last token is the surname, lowercased", func() {
			p := model.Participant{DisplayName: "Anna Lindqvist"}
			convey.So(p.Surname(), convey.ShouldEqual, "lindqvist")
		})
		convey.Convey("Then middle names do not matter", func() {
			p := model.Participant{DisplayName: "Karl Gustav Berg"}
			convey.So(p.Surname(), convey.ShouldEqual, "berg")
		})
		convey.Convey("Then an empty name yields an empty surname", func() {
			p := model.Participant{DisplayName: "   "}
			convey.So(p.Surname(), convey.ShouldEqual, "")
		})
	})
}

func TestCompetition(t *testing.T) {
	convey.Convey("Given a scored competition", t, func() {
		c := model.Competition{
			ID:   "comp-2024",
			Year: 2024,
			Scores: map[model.ParticipantID]model.Rank{
				"a": 1, "b": 2, "c": 5,
			},
		}

		convey.Convey("Then it reports as scored", func() {
			convey.So(c.Scored(), convey.ShouldBeTrue)
			convey.So(c.ParticipantCount(), convey.ShouldEqual, 3)
		})

		convey.Convey("Then RankOf distinguishes absence from rank", func() {
			r, ok := c.RankOf("c")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(r, convey.ShouldEqual, model.Rank(5))

			_, ok = c.RankOf("nobody")
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("Then LastRank is the worst recorded rank", func() {
			convey.So(c.LastRank(), convey.ShouldEqual, model.Rank(5))
		})
	})

	convey.Convey("Given a cancelled year", t, func() {
		c := model.Competition{ID: "comp-2020", Year: 2020}

		convey.Convey("Then it is unscored with zero last rank", func() {
			convey.So(c.Scored(), convey.ShouldBeFalse)
			convey.So(c.LastRank(), convey.ShouldEqual, model.Rank(0))
			convey.So(c.ParticipantCount(), convey.ShouldEqual, 0)
		})
	})
}

func TestSnapshot(t *testing.T) {
	convey.Convey("Given an ordered snapshot", t, func() {
		snap := model.Snapshot{
			Participants: []model.Participant{
				{ID: "a"}, {ID: "b"}, {ID: "d"},
			},
			Competitions: []model.Competition{
				{ID: "comp-2020", Year: 2020, Scores: map[model.ParticipantID]model.Rank{"a": 1}},
				{ID: "comp-2021", Year: 2021},
				{ID: "comp-2022", Year: 2022, Scores: map[model.ParticipantID]model.Rank{"b": 1}},
			},
		}

		convey.Convey("Then Participant finds present members", func() {
			p, ok := snap.Participant("b")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(p.ID, convey.ShouldEqual, model.ParticipantID("b"))
		})

		convey.Convey("Then Participant misses absent ids", func() {
			_, ok := snap.Participant("c")
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("Then ScoredCompetitions drops cancelled years in order", func() {
			scored := snap.ScoredCompetitions()
			convey.So(len(scored), convey.ShouldEqual, 2)
			convey.So(scored[0].Year, convey.ShouldEqual, 2020)
			convey.So(scored[1].Year, convey.ShouldEqual, 2022)
		})
	})
}

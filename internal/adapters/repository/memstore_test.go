package repository_test

import (
	"context"
	"testing"

	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestMemStore_Mutations(t *testing.T) {
	convey.Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		convey.Convey("When a participant is upserted", func() {
			err := store.UpsertParticipant(ctx, model.Participant{ID: "a", DisplayName: "Anna"})

			convey.Convey("Then the version bumps and the snapshot holds it", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(store.Version(ctx), convey.ShouldEqual, uint64(1))

				snap := store.Snapshot(ctx)
				convey.So(len(snap.Participants), convey.ShouldEqual, 1)
				convey.So(snap.Version, convey.ShouldEqual, uint64(1))
			})
		})

		convey.Convey("When a participant has no id", func() {
			err := store.UpsertParticipant(ctx, model.Participant{})

			convey.Convey("Then the upsert is rejected", func() {
				convey.So(err, convey.ShouldWrap, repository.ErrEmptyID)
			})
		})

		convey.Convey("When a competition references an unknown participant", func() {
			err := store.AddCompetition(ctx, model.Competition{
				ID: "c1", Year: 2024,
				Scores: map[model.ParticipantID]model.Rank{"ghost": 1},
			})

			convey.Convey("Then the insert is rejected", func() {
				convey.So(err, convey.ShouldWrap, repository.ErrUnknownParticipant)
			})
		})

		convey.Convey("When a competition carries a non-positive rank", func() {
			_ = store.UpsertParticipant(ctx, model.Participant{ID: "a"})
			err := store.AddCompetition(ctx, model.Competition{
				ID: "c1", Year: 2024,
				Scores: map[model.ParticipantID]model.Rank{"a": 0},
			})

			convey.Convey("Then the insert is rejected", func() {
				convey.So(err, convey.ShouldWrap, repository.ErrInvalidRank)
			})
		})

		convey.Convey("When the same competition id is added twice", func() {
			_ = store.AddCompetition(ctx, model.Competition{ID: "c1", Year: 2024})
			err := store.AddCompetition(ctx, model.Competition{ID: "c1", Year: 2024})

			convey.Convey("Then the second insert reports a duplicate", func() {
				convey.So(err, convey.ShouldWrap, repository.ErrDuplicateCompetition)
			})
		})

		convey.Convey("When a cancelled year with no scores is added", func() {
			err := store.AddCompetition(ctx, model.Competition{ID: "c-cancelled", Year: 2021})

			convey.Convey("Then it is stored as-is", func() {
				convey.So(err, convey.ShouldBeNil)
				snap := store.Snapshot(ctx)
				convey.So(len(snap.Competitions), convey.ShouldEqual, 1)
				convey.So(snap.Competitions[0].Scored(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When updating a missing competition", func() {
			err := store.UpdateCompetition(ctx, model.Competition{ID: "nope", Year: 2020})

			convey.Convey("Then it reports not found", func() {
				convey.So(err, convey.ShouldWrap, repository.ErrNotFound)
			})
		})
	})
}

func TestMemStore_SnapshotIsolation(t *testing.T) {
	convey.Convey("Given a store with one scored competition", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		_ = store.UpsertParticipant(ctx, model.Participant{ID: "a"})
		_ = store.AddCompetition(ctx, model.Competition{
			ID: "c1", Year: 2024,
			Scores: map[model.ParticipantID]model.Rank{"a": 1},
		})

		convey.Convey("When a snapshot is mutated by the caller", func() {
			snap := store.Snapshot(ctx)
			snap.Competitions[0].Scores["a"] = 99

			convey.Convey("Then the store is unaffected", func() {
				fresh := store.Snapshot(ctx)
				convey.So(fresh.Competitions[0].Scores["a"], convey.ShouldEqual, model.RankGold)
			})
		})
	})
}

func TestMemStore_SnapshotOrdering(t *testing.T) {
	convey.Convey("Given entries inserted out of order", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		_ = store.UpsertParticipant(ctx, model.Participant{ID: "zed"})
		_ = store.UpsertParticipant(ctx, model.Participant{ID: "ann"})
		_ = store.AddCompetition(ctx, model.Competition{ID: "c-late", Year: 2024})
		_ = store.AddCompetition(ctx, model.Competition{ID: "c-early", Year: 2020})
		_ = store.AddCompetition(ctx, model.Competition{ID: "b-2024", Year: 2024})

		snap := store.Snapshot(ctx)

		convey.Convey("Then participants sort by id", func() {
			convey.So(snap.Participants[0].ID, convey.ShouldEqual, model.ParticipantID("ann"))
			convey.So(snap.Participants[1].ID, convey.ShouldEqual, model.ParticipantID("zed"))
		})

		convey.Convey("Then competitions sort by year then id", func() {
			convey.So(snap.Competitions[0].ID, convey.ShouldEqual, "c-early")
			convey.So(snap.Competitions[1].ID, convey.ShouldEqual, "b-2024")
			convey.So(snap.Competitions[2].ID, convey.ShouldEqual, "c-late")
		})
	})
}

func TestMemStore_ChangeListener(t *testing.T) {
	convey.Convey("Given a store with a change listener", t, func() {
		ctx := context.Background()
		var versions []uint64
		store := repository.NewMemStore(
			repository.WithChangeListener(func(v uint64) { versions = append(versions, v) }),
		)

		convey.Convey("When mutations succeed and fail", func() {
			_ = store.UpsertParticipant(ctx, model.Participant{ID: "a"})
			_ = store.AddCompetition(ctx, model.Competition{ID: "c1", Year: 2024})
			_ = store.AddCompetition(ctx, model.Competition{ID: "c1", Year: 2024}) // duplicate

			convey.Convey("Then only successful mutations notify", func() {
				convey.So(versions, convey.ShouldResemble, []uint64{1, 2})
			})
		})
	})
}

func TestMemStore_Counts(t *testing.T) {
	convey.Convey("Given a populated store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		_ = store.UpsertParticipant(ctx, model.Participant{ID: "a"})
		_ = store.UpsertParticipant(ctx, model.Participant{ID: "b"})
		_ = store.AddCompetition(ctx, model.Competition{ID: "c1", Year: 2024})

		participants, competitions := store.Counts(ctx)

		convey.So(participants, convey.ShouldEqual, 2)
		convey.So(competitions, convey.ShouldEqual, 1)
	})
}

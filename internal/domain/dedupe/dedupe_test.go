package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/smartystreets/goconvey/convey"
)

func TestRingDeduper(t *testing.T) {
	convey.Convey("Given a ring deduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewRingDeduper()

		convey.Convey("When an id is recorded twice", func() {
			first := d.SeenAndRecord(ctx, "comp-2024")
			second := d.SeenAndRecord(ctx, "comp-2024")

			convey.Convey("Then only the replay reports seen", func() {
				convey.So(first, convey.ShouldBeFalse)
				convey.So(second, convey.ShouldBeTrue)
				convey.So(d.Size(), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When an id is unrecorded", func() {
			d.SeenAndRecord(ctx, "comp-2024")
			d.Unrecord(ctx, "comp-2024")

			convey.Convey("Then it can be recorded again", func() {
				convey.So(d.SeenAndRecord(ctx, "comp-2024"), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When unrecording an unknown id", func() {
			d.Unrecord(ctx, "never-seen")

			convey.Convey("Then nothing changes", func() {
				convey.So(d.Size(), convey.ShouldEqual, 0)
			})
		})
	})

	convey.Convey("Given a deduper bounded to three entries", t, func() {
		ctx := context.Background()
		d := dedupe.NewRingDeduper(dedupe.WithMaxSize(3))

		for i := 0; i < 3; i++ {
			d.SeenAndRecord(ctx, fmt.Sprintf("id-%d", i))
		}

		convey.Convey("When a fourth id arrives", func() {
			d.SeenAndRecord(ctx, "id-3")

			convey.Convey("Then the oldest id is evicted, FIFO", func() {
				convey.So(d.Size(), convey.ShouldEqual, 3)
				convey.So(d.SeenAndRecord(ctx, "id-0"), convey.ShouldBeFalse) // forgotten
				convey.So(d.SeenAndRecord(ctx, "id-3"), convey.ShouldBeTrue)  // still known
			})
		})
	})
}

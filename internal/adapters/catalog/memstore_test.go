package catalog_test

import (
	"context"
	"testing"

	"github.com/okian/serene/internal/adapters/catalog"
	"github.com/okian/serene/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemStore(t *testing.T) {
	Convey("Given the default sample catalog", t, func() {
		ctx := context.Background()
		store := catalog.NewMemStore()

		Convey("Then it should hold the sample entries", func() {
			So(store.Count(ctx), ShouldEqual, len(catalog.SampleEntries()))
		})

		Convey("When listing all entries", func() {
			all, err := store.All(ctx)

			Convey("Then they should come back id ascending", func() {
				So(err, ShouldBeNil)
				So(all, ShouldHaveLength, store.Count(ctx))
				for i := 1; i < len(all); i++ {
					So(all[i-1].ID, ShouldBeLessThan, all[i].ID)
				}
			})
		})

		Convey("When fetching one entry", func() {
			e, err := store.Get(ctx, "med-001")

			Convey("Then the entry should come back", func() {
				So(err, ShouldBeNil)
				So(e.ID, ShouldEqual, "med-001")
			})
		})

		Convey("When fetching an unknown id", func() {
			_, err := store.Get(ctx, "med-999")

			Convey("Then it should report not found", func() {
				So(err, ShouldWrap, catalog.ErrNotFound)
			})
		})
	})

	Convey("Given a seeded catalog", t, func() {
		ctx := context.Background()
		store := catalog.NewMemStore(catalog.WithEntries([]model.CatalogEntry{
			{ID: "a", EffectivenessScore: 0.5},
			{ID: "b", EffectivenessScore: 0.9},
			{ID: "c", EffectivenessScore: 0.9},
			{ID: "d", EffectivenessScore: 0.2},
		}))

		Convey("When asking for the top entries", func() {
			top, err := store.TopEffective(ctx, 3)

			Convey("Then they should be ordered by effectiveness, id breaking ties", func() {
				So(err, ShouldBeNil)
				So(top, ShouldHaveLength, 3)
				So(top[0].ID, ShouldEqual, "b")
				So(top[1].ID, ShouldEqual, "c")
				So(top[2].ID, ShouldEqual, "a")
			})
		})

		Convey("When ratings arrive for an entry", func() {
			So(store.ApplyRating(ctx, "a", 4), ShouldBeNil)
			So(store.ApplyRating(ctx, "a", 2), ShouldBeNil)

			Convey("Then effectiveness should track the mean rating over five", func() {
				e, err := store.Get(ctx, "a")
				So(err, ShouldBeNil)
				So(e.EffectivenessScore, ShouldAlmostEqual, 3.0/5.0)
			})
		})

		Convey("When a rating is out of range", func() {
			err := store.ApplyRating(ctx, "a", 5.5)

			Convey("Then it should be rejected", func() {
				So(err, ShouldWrap, catalog.ErrInvalidRating)
			})
		})

		Convey("When rating an unknown entry", func() {
			err := store.ApplyRating(ctx, "zzz", 3)

			Convey("Then it should report not found", func() {
				So(err, ShouldWrap, catalog.ErrNotFound)
			})
		})
	})

	Convey("Given an empty catalog", t, func() {
		ctx := context.Background()
		store := catalog.NewMemStore(catalog.WithEntries(nil))

		Convey("Then listing and top queries should fail", func() {
			_, err := store.All(ctx)
			So(err, ShouldWrap, catalog.ErrEmptyCatalog)

			_, err = store.TopEffective(ctx, 5)
			So(err, ShouldWrap, catalog.ErrEmptyCatalog)
		})
	})
}

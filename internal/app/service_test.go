package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/okian/serene/internal/adapters/catalog"
	service "github.com/okian/serene/internal/app"
	"github.com/okian/serene/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// blockingProfiles parks every feedback write until release closes, so tests
// can hold a worker busy and fill the queue deterministically.
type blockingProfiles struct {
	recorded chan model.FeedbackEvent
	release  chan struct{}
}

func (p *blockingProfiles) Get(_ context.Context, userID string) model.PreferenceProfile {
	return model.PreferenceProfile{UserID: userID, ExperienceLevel: model.LevelBeginner}
}

func (p *blockingProfiles) Update(context.Context, model.PreferenceProfile) error { return nil }

func (p *blockingProfiles) RecordSession(context.Context, string, string) error { return nil }

func (p *blockingProfiles) RecordFeedback(_ context.Context, e model.FeedbackEvent) error {
	p.recorded <- e
	<-p.release
	return nil
}

func (p *blockingProfiles) Count(context.Context) int { return 0 }

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		ctx := context.Background()
		svc := service.New()

		Convey("Then stats before start should show it stopped", func() {
			stats := svc.GetStats(ctx)
			So(stats["started"], ShouldBeFalse)
		})

		Convey("When started", func() {
			So(svc.Start(ctx), ShouldBeNil)
			Reset(svc.Stop)

			Convey("Then starting again should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("Then stats should expose the running components", func() {
				stats := svc.GetStats(ctx)
				So(stats["started"], ShouldBeTrue)
				So(stats["catalogSize"], ShouldEqual, len(catalog.SampleEntries()))
				So(stats["feedbackQueued"], ShouldEqual, 0)
			})
		})
	})
}

func TestRecommend(t *testing.T) {
	Convey("Given a started service over the sample catalog", t, func() {
		ctx := context.Background()
		svc := service.New()
		So(svc.Start(ctx), ShouldBeNil)
		Reset(svc.Stop)

		Convey("When recommending for anxious text", func() {
			a, recs, fallback, err := svc.Recommend(ctx, "u1", "I feel anxious and can't sleep, everything feels overwhelming", 5)

			Convey("Then the scored path should serve a ranked list", func() {
				So(err, ShouldBeNil)
				So(fallback, ShouldBeFalse)
				So(a.PrimaryConcern, ShouldEqual, model.CategoryAnxiety)
				So(recs, ShouldHaveLength, 5)
				for i := 1; i < len(recs); i++ {
					So(recs[i-1].TotalScore, ShouldBeGreaterThanOrEqualTo, recs[i].TotalScore)
				}
			})

			Convey("Then repeating the call should return the same list", func() {
				_, again, _, err := svc.Recommend(ctx, "u1", "I feel anxious and can't sleep, everything feels overwhelming", 5)
				So(err, ShouldBeNil)
				So(again, ShouldHaveLength, len(recs))
				for i := range recs {
					So(again[i].Entry.ID, ShouldEqual, recs[i].Entry.ID)
				}
			})
		})

		Convey("When the caller asks for no particular count", func() {
			_, recs, _, err := svc.Recommend(ctx, "u1", "hello", 0)

			Convey("Then the default count should apply", func() {
				So(err, ShouldBeNil)
				So(recs, ShouldHaveLength, 5)
			})
		})

		Convey("When the caller asks for more than the cap", func() {
			_, recs, _, err := svc.Recommend(ctx, "u1", "hello", 100)

			Convey("Then the list should stop at the catalog size under the cap", func() {
				So(err, ShouldBeNil)
				So(recs, ShouldHaveLength, len(catalog.SampleEntries()))
			})
		})
	})

	Convey("Given a service whose catalog store is empty", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithCatalog(catalog.NewMemStore(catalog.WithEntries(nil))))
		So(svc.Start(ctx), ShouldBeNil)
		Reset(svc.Stop)

		Convey("When recommending", func() {
			a, recs, fallback, err := svc.Recommend(ctx, "u1", "I feel anxious", 3)

			Convey("Then the built-in fallback should serve generic picks", func() {
				So(err, ShouldBeNil)
				So(fallback, ShouldBeTrue)
				So(a.PrimaryConcern, ShouldEqual, model.CategoryAnxiety)
				So(recs, ShouldHaveLength, 3)
				So(recs[0].Explanation, ShouldEqual, "Generally helpful for mental wellness")
				for i := 1; i < len(recs); i++ {
					So(recs[i-1].EffectivenessScore, ShouldBeGreaterThanOrEqualTo, recs[i].EffectivenessScore)
				}
			})
		})
	})

	Convey("Given a service with no catalog and no fallback", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithCatalog(catalog.NewMemStore(catalog.WithEntries(nil))),
			service.WithFallbackEntries(nil),
		)
		So(svc.Start(ctx), ShouldBeNil)
		Reset(svc.Stop)

		Convey("When recommending", func() {
			_, recs, fallback, err := svc.Recommend(ctx, "u1", "I feel anxious", 3)

			Convey("Then it should fail with the empty-catalog error", func() {
				So(err, ShouldWrap, service.ErrEmptyCatalog)
				So(fallback, ShouldBeTrue)
				So(recs, ShouldBeEmpty)
			})
		})
	})
}

func TestRecordFeedback(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := service.New()
		So(svc.Start(ctx), ShouldBeNil)
		Reset(svc.Stop)

		Convey("When submitting an event without an id", func() {
			id, dup, err := svc.RecordFeedback(ctx, model.FeedbackEvent{UserID: "u1", MeditationID: "med-001", Accepted: true})

			Convey("Then an id should be generated and the event accepted", func() {
				So(err, ShouldBeNil)
				So(dup, ShouldBeFalse)
				So(id, ShouldNotBeEmpty)
			})
		})

		Convey("When submitting the same event id twice", func() {
			e := model.FeedbackEvent{EventID: "evt-1", UserID: "u1", MeditationID: "med-001"}
			_, dup1, err1 := svc.RecordFeedback(ctx, e)
			id2, dup2, err2 := svc.RecordFeedback(ctx, e)

			Convey("Then the second submission should be acknowledged as a duplicate", func() {
				So(err1, ShouldBeNil)
				So(dup1, ShouldBeFalse)
				So(err2, ShouldBeNil)
				So(dup2, ShouldBeTrue)
				So(id2, ShouldEqual, "evt-1")
			})
		})
	})

	Convey("Given a service with a single busy worker and a one-slot queue", t, func() {
		ctx := context.Background()
		profiles := &blockingProfiles{
			recorded: make(chan model.FeedbackEvent, 4),
			release:  make(chan struct{}),
		}
		var once sync.Once
		releaseWorkers := func() { once.Do(func() { close(profiles.release) }) }
		svc := service.New(
			service.WithProfiles(profiles),
			service.WithQueueSize(1),
			service.WithWorkerCount(1),
		)
		So(svc.Start(ctx), ShouldBeNil)
		Reset(func() {
			releaseWorkers()
			svc.Stop()
		})

		Convey("When the queue fills up", func() {
			_, _, err := svc.RecordFeedback(ctx, model.FeedbackEvent{EventID: "e1", UserID: "u1", MeditationID: "med-001"})
			So(err, ShouldBeNil)

			// Wait for the worker to pick up e1 and park, leaving the queue
			// empty, then occupy the single slot with e2.
			select {
			case <-profiles.recorded:
			case <-time.After(time.Second):
				t.Fatal("worker never picked up the first event")
			}
			_, _, err = svc.RecordFeedback(ctx, model.FeedbackEvent{EventID: "e2", UserID: "u1", MeditationID: "med-001"})
			So(err, ShouldBeNil)

			Convey("Then further submissions should report backpressure", func() {
				_, dup, err := svc.RecordFeedback(ctx, model.FeedbackEvent{EventID: "e3", UserID: "u1", MeditationID: "med-001"})
				So(err, ShouldWrap, service.ErrBackpressure)
				So(dup, ShouldBeFalse)

				Convey("And the dropped event should stay retryable, not become a duplicate", func() {
					releaseWorkers()
					select {
					case <-profiles.recorded:
					case <-time.After(time.Second):
						t.Fatal("worker never resumed")
					}

					_, dup, err := svc.RecordFeedback(ctx, model.FeedbackEvent{EventID: "e3", UserID: "u1", MeditationID: "med-001"})
					So(err, ShouldBeNil)
					So(dup, ShouldBeFalse)
				})
			})
		})
	})
}

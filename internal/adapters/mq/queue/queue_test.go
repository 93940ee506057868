package queue_test

import (
	"context"
	"testing"

	"github.com/okian/serene/internal/adapters/mq/queue"
	"github.com/okian/serene/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryQueue(t *testing.T) {
	Convey("Given a feedback queue with capacity one", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(1))

		Convey("When enqueueing within capacity", func() {
			ok := q.Enqueue(ctx, model.FeedbackEvent{EventID: "e1"})

			Convey("Then the event should be accepted and buffered", func() {
				So(ok, ShouldBeTrue)
				So(q.Len(ctx), ShouldEqual, 1)
			})
		})

		Convey("When the queue is full", func() {
			So(q.Enqueue(ctx, model.FeedbackEvent{EventID: "e1"}), ShouldBeTrue)

			Convey("Then further enqueues should be rejected without blocking", func() {
				So(q.Enqueue(ctx, model.FeedbackEvent{EventID: "e2"}), ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 1)
			})
		})

		Convey("When dequeuing a buffered event", func() {
			q.Enqueue(ctx, model.FeedbackEvent{EventID: "e1"})
			e := <-q.Dequeue(ctx)

			Convey("Then the event should round-trip intact", func() {
				So(e.EventID, ShouldEqual, "e1")
				So(q.Len(ctx), ShouldEqual, 0)
			})
		})

		Convey("When the queue is closed", func() {
			q.Enqueue(ctx, model.FeedbackEvent{EventID: "e1"})
			So(q.Close(), ShouldBeNil)

			Convey("Then enqueues should be rejected", func() {
				So(q.Enqueue(ctx, model.FeedbackEvent{EventID: "e2"}), ShouldBeFalse)
			})

			Convey("Then buffered events should drain before the channel closes", func() {
				e, open := <-q.Dequeue(ctx)
				So(open, ShouldBeTrue)
				So(e.EventID, ShouldEqual, "e1")

				_, open = <-q.Dequeue(ctx)
				So(open, ShouldBeFalse)
			})

			Convey("Then closing again should be a no-op", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}

package taskq_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	taskq "github.com/marblehq/bountyboard/internal/taskq"
	. "github.com/smartystreets/goconvey/convey"
)

func TestQueue(t *testing.T) {
	Convey("Given a started task queue", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := taskq.New(taskq.WithCapacity(16))
		q.Start(ctx)

		Convey("When submitting a task", func() {
			ran := false
			err := q.Do(ctx, func() { ran = true })

			Convey("Then Do returns after the task has run", func() {
				So(err, ShouldBeNil)
				So(ran, ShouldBeTrue)
			})
		})

		Convey("When many goroutines submit counter increments", func() {
			const submitters = 20
			const perSubmitter = 25

			counter := 0
			var wg sync.WaitGroup
			for i := 0; i < submitters; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < perSubmitter; j++ {
						// No locking inside the task: the single runner
						// is the serialization point.
						_ = q.Do(ctx, func() { counter++ })
					}
				}()
			}
			wg.Wait()

			Convey("Then no increment is lost", func() {
				So(counter, ShouldEqual, submitters*perSubmitter)
			})
		})

		Convey("When the submitter's context is already cancelled", func() {
			gone, cancelNow := context.WithCancel(context.Background())
			cancelNow()

			err := q.Do(gone, func() {})

			Convey("Then Do reports the cancellation", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)

			err := q.Do(ctx, func() {})

			Convey("Then further submissions are refused", func() {
				So(errors.Is(err, taskq.ErrClosed), ShouldBeTrue)
			})

			Convey("And closing again is a no-op", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}

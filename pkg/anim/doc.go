// Package anim plays attribute transitions on scene elements.
//
// The chart engine never interpolates attributes itself. It submits a
// [Request] ("animate element X to these attributes over D after delay L")
// to a [Scheduler] and moves on. Submitting a request for an element that
// already has one in flight cancels the old request first, so the most
// recently submitted target always wins and animations never queue.
//
// Two schedulers are provided:
//
//   - [Immediate] applies every target synchronously. It implements the
//     no-animation mode used when transitions are disabled and for resizes.
//   - [Timeline] is driven by an external frame clock through
//     [Timeline.Advance], interpolating from the attributes an element has
//     when its request starts towards the target with cubic in-out easing.
//
// Schedulers are not safe for concurrent use; all calls are expected from
// the single goroutine that owns the chart.
package anim

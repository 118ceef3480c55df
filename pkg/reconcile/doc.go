// Package reconcile turns the previously rendered key set and a new dataset
// into an animated enter/update/exit transition plan.
//
// # Partition
//
// Given the rendered keys O and the new keys N, [Diff] computes three
// disjoint sets:
//
//   - update = O ∩ N: the element is kept and moved to its new target.
//   - enter = N \ O: the element is created at its entry attributes and then
//     moved to its target exactly like an update.
//   - exit = O \ N: the element collapses and is removed when its transition
//     ends.
//
// # Plans
//
// [Plan] attaches attributes, delays and durations to each key; [Apply]
// creates entering elements, flags exiting ones and hands every transition
// to an [anim.Scheduler]. Because schedulers cancel in-flight requests for
// the same element, reconciling again before a previous plan has finished
// simply retargets the elements.
package reconcile

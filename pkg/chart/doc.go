// Package chart implements the diverging horizontal bar chart engine.
//
// A [Chart] owns the current [State] and the rendered [scene.Scene]. Every
// operation computes a new State from the previous one with pure functions,
// swaps it in, and then re-renders from that State alone:
//
//	external event → dataset → scale domains → layout → scale ranges
//	               → reconciliation plan → scheduler
//
// # Operations
//
// The [Widget] interface lists the externally visible operations:
// Initialize, UpdateData, UpdateSort, UpdateColors and Resize. Data-driven
// updates animate when transitions are enabled; Resize always reflows
// instantly.
//
// # Animation
//
// By default a chart animates through an [anim.Timeline] advanced by the
// caller ([Chart.Advance] / [Chart.Flush]). Any [anim.Scheduler] can be
// plugged in with [WithScheduler]. A new request for an element always
// replaces the previous one, so the chart converges to the most recently
// computed state regardless of how often it is updated.
//
// # Interaction
//
// Pointer events are routed through a [Listeners] table keyed by element ID
// and rebuilt after every reconciliation pass. Hovering a bar fades it,
// bolds its label and shows a [Tooltip]; clicking a bar cycles the sort.
//
// A Chart is not safe for concurrent use.
package chart

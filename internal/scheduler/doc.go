// Package scheduler replaces toolkit signal/slot wiring with an explicit
// event loop. Named events, coming either from periodic tick sources or from
// input forwarded by a presenter, are queued and delivered one at a time to
// registered handlers on the goroutine that calls Run.
//
// Handlers therefore never run concurrently with each other and may own
// plain, unlocked state. Tick sources can be started and stopped from inside
// handlers; ticks that were already queued when their source stopped are
// dropped before delivery.
package scheduler

// Package assignment places reservations onto physical seating instances.
//
// A store's seating catalog is a list of unit types (a 4-top hall table, a VIP
// room, ...) each with a capacity range and a quantity. Instances of a type are
// addressed only by their 1-based index in [1, quantity].
//
// The package is pure: every function works on the snapshot it is given and has
// no side effects, so callers may run it concurrently and retry it freely. Two
// callers racing on the same snapshot can receive the same instance; the storage
// layer is expected to reject the second write and the caller re-runs Assign on
// fresh data.
//
// Times of day are HH:MM strings on the reservation's calendar date and windows
// are half-open, so a reservation ending at 19:00 never blocks one starting at
// 19:00.
package assignment

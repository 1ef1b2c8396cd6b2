// Package timezone pins every wall-clock conversion to the store's timezone,
// configured through APP_TIMEZONE with IANA names such as "Asia/Seoul".
//
// Reservation dates and HH:MM clocks are stored without a zone, so they are
// interpreted here:
//
//	start, err := timezone.Combine(reservation.Date, "18:30")
//	date, err := timezone.ParseDate("2025-03-14")
//
// The location defaults to UTC when the variable is unset or unknown.
package timezone

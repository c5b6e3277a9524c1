// Package timezone pins every wall-clock reading to the building's timezone (APP_TIMEZONE).
//
// SLA deadlines and booking windows are stored as instants, but booking dates and the
// "today" used by the advance-booking rule are calendar days in the building's zone:
//
//	now := timezone.Now()
//	day := timezone.Date(now) // midnight UTC of the local calendar day
//
// An empty or unknown APP_TIMEZONE falls back to UTC.
package timezone

// Package delivery computes the requested delivery date of an order.
// Deliveries run Tuesday to Friday.
package delivery

import "time"

// IsDeliveryDay reports whether orders can be delivered on t's weekday.
func IsDeliveryDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday, time.Monday:
		return false
	}
	return true
}

// Initial is the first delivery day strictly after now, at midnight in
// now's location.
func Initial(now time.Time) time.Time {
	return Next(midnight(now))
}

// Next returns the first delivery day after d.
func Next(d time.Time) time.Time {
	d = midnight(d).AddDate(0, 0, 1)
	for !IsDeliveryDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// Previous returns the last delivery day before d, never earlier than floor.
func Previous(d, floor time.Time) time.Time {
	d = midnight(d).AddDate(0, 0, -1)
	for !IsDeliveryDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	if floor = midnight(floor); d.Before(floor) {
		return floor
	}
	return d
}

func midnight(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}

// Package schedule computes interview slots from the business-hours rule:
// a working hour is Monday-Friday, 09:00-18:00 local time.
package schedule

import (
	"fmt"
	"time"
)

// BusinessHours is how many working hours ahead the interview is offered.
const BusinessHours = 48

// StampLayout is the format interview timestamps are stored in.
const StampLayout = "02.01.2006 15:04"

var monthsRu = map[time.Month]string{
	time.January:   "января",
	time.February:  "февраля",
	time.March:     "марта",
	time.April:     "апреля",
	time.May:       "мая",
	time.June:      "июня",
	time.July:      "июля",
	time.August:    "августа",
	time.September: "сентября",
	time.October:   "октября",
	time.November:  "ноября",
	time.December:  "декабря",
}

// NextSlot walks forward from now one hour at a time and returns the
// timestamp reached after counting BusinessHours working hours. The walk
// advances before testing, so a partially elapsed current hour is never
// counted. Deterministic: no holiday calendar is consulted.
func NextSlot(now time.Time) time.Time {
	slot := now
	counted := 0
	for counted < BusinessHours {
		slot = slot.Add(time.Hour)
		if isBusinessHour(slot) {
			counted++
		}
	}
	return slot
}

func isBusinessHour(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return t.Hour() >= 9 && t.Hour() < 18
}

// FormatStamp renders the stored form of a slot, e.g. "15.01.2026 14:30".
func FormatStamp(t time.Time) string {
	return t.Format(StampLayout)
}

// FormatInvite renders the human form used in the invitation message,
// e.g. "15 января в 14:30".
func FormatInvite(t time.Time) string {
	return fmt.Sprintf("%d %s в %02d:%02d", t.Day(), monthsRu[t.Month()], t.Hour(), t.Minute())
}

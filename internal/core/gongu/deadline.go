package gongu

import (
	"time"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
)

// Meridiem is the AM/PM half of a 12-hour pickup time.
type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

const dateLayout = "2006-01-02"

// Group-purchase deadlines always close at 23:59 local time on the chosen day.
const (
	groupEndHour   = 23
	groupEndMinute = 59
)

// GroupEndAt combines a date-only input with the fixed 23:59 cutoff and
// serializes the instant with an explicit UTC offset so the server never has
// to guess the gateway's zone.
func GroupEndAt(date string, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return "", domain.Invalid("groupEndAt", "end date must be YYYY-MM-DD")
	}
	end := time.Date(d.Year(), d.Month(), d.Day(), groupEndHour, groupEndMinute, 0, 0, loc)
	return end.Format(time.RFC3339), nil
}

// PickupAt composes a pickup date plus a 12-hour clock time into a single
// unambiguous instant (RFC 3339 with offset). Hour must be 1-12 and minute
// 0-59; 12 PM maps to noon and 12 AM to midnight.
func PickupAt(date string, meridiem Meridiem, hour, minute int, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	if meridiem != AM && meridiem != PM {
		return "", domain.Invalid("pickupAt", "meridiem must be AM or PM")
	}
	if hour < 1 || hour > 12 {
		return "", domain.Invalid("pickupAt", "hour must be between 1 and 12")
	}
	if minute < 0 || minute > 59 {
		return "", domain.Invalid("pickupAt", "minute must be between 0 and 59")
	}
	d, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return "", domain.Invalid("pickupAt", "pickup date must be YYYY-MM-DD")
	}

	h24 := hour % 12
	if meridiem == PM {
		h24 += 12
	}

	at := time.Date(d.Year(), d.Month(), d.Day(), h24, minute, 0, 0, loc)
	return at.Format(time.RFC3339), nil
}

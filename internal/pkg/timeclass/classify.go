// Package timeclass converts a worked interval into classified hours.
// It is pure: no clock reads, no storage, safe to call redundantly.
package timeclass

import (
	"errors"
	"time"
)

var ErrInvalidInterval = errors.New("check-out must be after check-in")

// Night window boundaries, recurring once per calendar day: [22:00, 06:00).
const (
	nightStartHour = 22
	nightEndHour   = 6
)

// Punctuality classifies a check-in relative to its scheduled start.
type Punctuality string

const (
	PunctualityOnTime       Punctuality = "on_time"
	PunctualitySlightlyLate Punctuality = "slightly_late"
	PunctualityLate         Punctuality = "late"
)

// Thresholds configure the punctuality cutoffs, measured from the
// scheduled start. A check-in at or before the scheduled start is
// always on time.
type Thresholds struct {
	OnTime       time.Duration
	SlightlyLate time.Duration
}

// DefaultThresholds returns the standard policy: up to 5 minutes late is
// still on time, up to 15 minutes is slightly late, beyond that is late.
func DefaultThresholds() Thresholds {
	return Thresholds{
		OnTime:       5 * time.Minute,
		SlightlyLate: 15 * time.Minute,
	}
}

// Result holds the classified hours for one worked interval.
type Result struct {
	DayHours    float64
	NightHours  float64
	Punctuality Punctuality
}

// Classify splits the worked interval [checkIn, checkOut) into day and
// night hours and grades the check-in against scheduledStart.
//
// A worked interval may intersect zero, one, or two instances of the
// recurring night window: a shift spanning two midnights touches the
// tail of one instance and the whole of the next.
func Classify(checkIn, checkOut, scheduledStart time.Time, th Thresholds) (Result, error) {
	if !checkOut.After(checkIn) {
		return Result{}, ErrInvalidInterval
	}

	total := checkOut.Sub(checkIn)
	night := nightOverlap(checkIn, checkOut)

	return Result{
		DayHours:    (total - night).Hours(),
		NightHours:  night.Hours(),
		Punctuality: Grade(checkIn, scheduledStart, th),
	}, nil
}

// nightOverlap sums the intersection of [in, out) with every night-window
// instance the interval can touch. Each instance runs from 22:00 on day d
// to 06:00 on day d+1; windows are disjoint, so the sum never exceeds the
// interval length.
func nightOverlap(in, out time.Time) time.Duration {
	var total time.Duration

	// The instance starting the day before check-in may still reach into
	// the interval (its tail ends at 06:00 on check-in's day).
	day := time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, in.Location()).AddDate(0, 0, -1)

	for !day.After(out) {
		winStart := time.Date(day.Year(), day.Month(), day.Day(), nightStartHour, 0, 0, 0, day.Location())
		winEnd := time.Date(day.Year(), day.Month(), day.Day(), nightEndHour, 0, 0, 0, day.Location()).AddDate(0, 0, 1)

		total += overlap(in, out, winStart, winEnd)
		day = day.AddDate(0, 0, 1)
	}

	return total
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// Grade classifies a check-in against the scheduled start. Early
// check-in always grades on time.
func Grade(checkIn, scheduledStart time.Time, th Thresholds) Punctuality {
	lateBy := checkIn.Sub(scheduledStart)
	switch {
	case lateBy <= th.OnTime:
		return PunctualityOnTime
	case lateBy <= th.SlightlyLate:
		return PunctualitySlightlyLate
	default:
		return PunctualityLate
	}
}

package schedule

import "time"

// ShiftSchedule is owned by the scheduling collaborator and consumed here
// as input. It is immutable once attendance exists against it.
type ShiftSchedule struct {
	ID         string
	EmployeeID string
	Date       time.Time
	StartTime  time.Time
	EndTime    time.Time
	Role       string
	CreatedAt  time.Time
}

// StartOn anchors the shift's scheduled start time on a concrete day in
// the given location.
func (s ShiftSchedule) StartOn(day time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		s.StartTime.Hour(), s.StartTime.Minute(), 0, 0, loc)
}

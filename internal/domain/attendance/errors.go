package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn   = errors.New("an open attendance record already exists")
	ErrNoOpenCheckIn      = errors.New("no open check-in found")
	ErrAttendanceExists   = errors.New("attendance already recorded for this date")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

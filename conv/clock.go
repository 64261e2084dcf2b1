package conv

import (
	"time"
)

// Layouts for the date and time shown to clients and stamped on log records.
const (
	DateLayout = "Jan 02 2006"
	TimeLayout = "03:04:05 PM"
)

// Date formats t like "Mar 08 2013".
func Date(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// Time formats t on a 12-hour clock, like "01:02:03 PM".
func Time(t time.Time) string {
	return t.Local().Format(TimeLayout)
}

// Stamp is the timestamp prefix of an activity log record.
func Stamp(t time.Time) string {
	return Date(t) + " " + Time(t)
}

package utils

import "time"

// Business timezone for bill date bucketing (GST billing runs on IST).
const BusinessTZ = "Asia/Kolkata"

var istLoc = func() *time.Location {
	if loc, err := time.LoadLocation(BusinessTZ); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+30*60)
}()

func NowUnixSeconds() int64 { return time.Now().Unix() }

// FromUnixSeconds converts an epoch value in seconds to business time.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(istLoc)
}

func FormatRFC3339(t int64) string {
	tt := FromUnixSeconds(t)
	if tt.IsZero() {
		return ""
	}
	return tt.Format(time.RFC3339)
}

func BusinessNow() time.Time {
	return time.Now().In(istLoc)
}

// ParseBusinessDate reads a YYYY-MM-DD value as midnight business time.
func ParseBusinessDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, istLoc)
}

func StartOfDay(t time.Time) time.Time {
	t = t.In(istLoc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, istLoc)
}

func StartOfMonth(t time.Time) time.Time {
	t = t.In(istLoc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, istLoc)
}

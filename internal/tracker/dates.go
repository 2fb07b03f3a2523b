package tracker

import "time"

const dayKeyLayout = "2006-01-02"

// DayKey returns the YYYY-MM-DD key for the given instant in its location.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// ParseDayKey parses a YYYY-MM-DD key to midnight UTC. Keys are compared and
// subtracted as calendar days, so the location doesn't matter as long as it's
// consistent.
func ParseDayKey(key string) (time.Time, bool) {
	t, err := time.Parse(dayKeyLayout, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysBetween returns the calendar-day difference to - from for two day keys.
func DaysBetween(from, to string) (int, bool) {
	a, okA := ParseDayKey(from)
	b, okB := ParseDayKey(to)
	if !okA || !okB {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

// HoursSince returns the hours elapsed at now since an epoch-millis timestamp.
func HoursSince(now time.Time, millis int64) float64 {
	return now.Sub(time.UnixMilli(millis)).Hours()
}

// WeekKeys returns the seven day keys, Monday first, for the week containing t.
func WeekKeys(t time.Time) [7]string {
	monday := weekMonday(t)
	var keys [7]string
	for i := 0; i < 7; i++ {
		keys[i] = DayKey(monday.AddDate(0, 0, i))
	}
	return keys
}

func weekMonday(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	weekday := day.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	return day.AddDate(0, 0, -int(weekday-time.Monday))
}

// MinutesToInstant maps minutes-since-midnight to today's wall-clock instant.
func MinutesToInstant(t time.Time, minutes int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), minutes/60, minutes%60, 0, 0, t.Location())
}

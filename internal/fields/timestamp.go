package fields

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// M/D/YYYY H:MM[:SS] [AM|PM]
var timestampRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})\s+(\d{1,2}):(\d{2})(?::(\d{2}))?(?:\s*([AaPp][Mm]))?$`)

const timestampShape = "expected M/D/YYYY H:MM[:SS] [AM|PM]"

// Timestamp parses a broker timestamp. Seconds are optional and so is the AM/PM
// marker; without it the hour is read on a 24-hour clock. The result carries no
// timezone information (it is expressed in time.UTC purely as a carrier).
func Timestamp(raw, field string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fail(field, raw, "expected a timestamp, got an empty value")
	}
	m := timestampRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fail(field, raw, timestampShape)
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second := 0
	if m[6] != "" {
		second, _ = strconv.Atoi(m[6])
	}

	if month < 1 || month > 12 {
		return time.Time{}, fail(field, raw, "month out of range (1-12)")
	}
	if day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, fail(field, raw, "day out of range for month")
	}
	if minute > 59 {
		return time.Time{}, fail(field, raw, "minute out of range (0-59)")
	}
	if second > 59 {
		return time.Time{}, fail(field, raw, "second out of range (0-59)")
	}

	switch strings.ToUpper(m[7]) {
	case "":
		if hour > 23 {
			return time.Time{}, fail(field, raw, "hour out of range (0-23)")
		}
	case "AM":
		if hour < 1 || hour > 12 {
			return time.Time{}, fail(field, raw, "hour out of range (1-12)")
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return time.Time{}, fail(field, raw, "hour out of range (1-12)")
		}
		if hour != 12 {
			hour += 12
		}
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), nil
}

func daysIn(m time.Month, year int) int {
	// day 0 of the next month is the last day of m
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

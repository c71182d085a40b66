package mdparse

import (
	"regexp"
	"strconv"
	"time"
)

var (
	ymdRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	weekRe    = regexp.MustCompile(`^(\d{4})-W(\d{2})-([1-7])`)
	ordinalRe = regexp.MustCompile(`^(\d{4})-(\d{3})`)
)

// Date parses an ISO-8601 calendar date (yyyy-mm-dd), week date
// (yyyy-Www-d), or ordinal date (yyyy-ddd) from the start of input,
// rejecting dates that don't round-trip to a real calendar day (e.g. day 40,
// or week 53 in a year that doesn't have one).
func Date(input string) (rest string, d time.Time, ok bool) {
	if m := ymdRe.FindStringSubmatch(input); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		candidate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if candidate.Year() != year || int(candidate.Month()) != month || candidate.Day() != day {
			return input, time.Time{}, false
		}
		return input[len(m[0]):], candidate, true
	}

	if m := weekRe.FindStringSubmatch(input); m != nil {
		year, _ := strconv.Atoi(m[1])
		week, _ := strconv.Atoi(m[2])
		weekday, _ := strconv.Atoi(m[3])
		candidate, ok := fromISOWeekDate(year, week, weekday)
		if !ok {
			return input, time.Time{}, false
		}
		return input[len(m[0]):], candidate, true
	}

	if m := ordinalRe.FindStringSubmatch(input); m != nil {
		year, _ := strconv.Atoi(m[1])
		dayOfYear, _ := strconv.Atoi(m[2])
		if dayOfYear < 1 {
			return input, time.Time{}, false
		}
		candidate := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, dayOfYear-1)
		if candidate.Year() != year {
			return input, time.Time{}, false
		}
		return input[len(m[0]):], candidate, true
	}

	return input, time.Time{}, false
}

// fromISOWeekDate converts an ISO-8601 week date (year, week 1-53, weekday
// 1=Monday..7=Sunday) to a calendar date, rejecting weeks that don't exist
// in the given ISO year.
func fromISOWeekDate(year, week, weekday int) (time.Time, bool) {
	jan4 := time.Date(year, 1, 4, 0, 0, 0, 0, time.UTC)
	isoWeekday := int(jan4.Weekday())
	if isoWeekday == 0 {
		isoWeekday = 7
	}
	monday := jan4.AddDate(0, 0, -(isoWeekday - 1))
	candidate := monday.AddDate(0, 0, (week-1)*7+(weekday-1))

	gotYear, gotWeek := candidate.ISOWeek()
	if gotYear != year || gotWeek != week {
		return time.Time{}, false
	}
	return candidate, true
}

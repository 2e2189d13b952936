package transcript

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TwoDigitYearBase is added to two-digit years: "25" is 2025, "99" is 2099.
const TwoDigitYearBase = 2000

// ParseTimestamp combines a raw date and a normalized raw time into a
// wall-clock timestamp. The result carries time.UTC only as a neutral
// location; no timezone conversion is applied.
func ParseTimestamp(rawDate, rawTime string, order DateOrder) (time.Time, error) {
	year, month, day, err := parseDate(rawDate, order)
	if err != nil {
		return time.Time{}, err
	}

	hour, minute, err := parseClock(rawTime)
	if err != nil {
		return time.Time{}, err
	}

	ts := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	// time.Date normalizes overflow (31/02 becomes 03/03); reject it instead.
	if ts.Day() != day || int(ts.Month()) != month || ts.Year() != year {
		return time.Time{}, fmt.Errorf("date %q does not exist", rawDate)
	}

	return ts, nil
}

func parseDate(raw string, order DateOrder) (year, month, day int, err error) {
	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("malformed date %q", raw)
	}

	first, err1 := strconv.Atoi(parts[0])
	second, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, fmt.Errorf("malformed date %q", raw)
	}

	switch len(parts[2]) {
	case 2:
		year += TwoDigitYearBase
	case 4:
	default:
		return 0, 0, 0, fmt.Errorf("unsupported year %q in date %q", parts[2], raw)
	}

	if order == MonthFirst {
		month, day = first, second
	} else {
		day, month = first, second
	}

	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month %d out of range in date %q", month, raw)
	}
	if day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("day %d out of range in date %q", day, raw)
	}

	return year, month, day, nil
}

// parseClock accepts "15:04", "3:04 PM" and "3:04PM".
func parseClock(raw string) (hour, minute int, err error) {
	clock := raw
	meridiem := ""
	if strings.HasSuffix(clock, "AM") || strings.HasSuffix(clock, "PM") {
		meridiem = clock[len(clock)-2:]
		clock = strings.TrimSpace(clock[:len(clock)-2])
	}

	h, m, found := strings.Cut(clock, ":")
	if !found {
		return 0, 0, fmt.Errorf("malformed time %q", raw)
	}

	hour, err1 := strconv.Atoi(h)
	minute, err2 := strconv.Atoi(m)
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("malformed time %q", raw)
	}
	if minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("minute %d out of range in time %q", minute, raw)
	}

	switch meridiem {
	case "":
		if hour < 0 || hour > 23 {
			return 0, 0, fmt.Errorf("hour %d out of range in time %q", hour, raw)
		}
	default:
		if hour < 1 || hour > 12 {
			return 0, 0, fmt.Errorf("hour %d out of range for 12-hour time %q", hour, raw)
		}
		hour %= 12
		if meridiem == "PM" {
			hour += 12
		}
	}

	return hour, minute, nil
}

package timeexpr

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var spelledNumbers = map[string]int{
	"mot": 1, "hai": 2, "ba": 3, "bon": 4, "tu": 4, "nam": 5,
	"sau": 6, "bay": 7, "tam": 8, "chin": 9, "muoi": 10,
}

// parseNumber accepts digits or a spelled-out number from one to ten.
func parseNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err == nil {
		return n, true
	}
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return math.MaxInt, true
	}
	n, ok := spelledNumbers[s]
	return n, ok
}

var unitWords = map[string]Unit{
	"ngay":  Day,
	"tuan":  Week,
	"thang": Month,
	"nam":   Year,
}

func parseUnit(s string) (Unit, bool) {
	u, ok := unitWords[strings.TrimSpace(s)]
	return u, ok
}

// Dates arrive in loose form, so "15/06/2024" reads "15 06 2024" and
// "2024-06-15" reads "2024 06 15".
var (
	reDayFirst  = regexp.MustCompile(`\b(\d{1,2}) (\d{1,2}) (\d{4}|\d{2})\b`)
	reYearFirst = regexp.MustCompile(`\b(\d{4}) (\d{1,2}) (\d{1,2})\b`)
	reDayPrefix = regexp.MustCompile(`^ngay\s+`)
)

// parseDate finds a calendar date in phrase. Dates that do not exist
// (31 February) are rejected.
func parseDate(phrase string, loc *time.Location) (time.Time, bool) {
	phrase = reDayPrefix.ReplaceAllString(strings.TrimSpace(phrase), "")
	if m := reYearFirst.FindStringSubmatch(phrase); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return makeDate(y, mo, d, loc)
	}
	if m := reDayFirst.FindStringSubmatch(phrase); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			y = expandYear(y)
		}
		return makeDate(y, mo, d, loc)
	}
	return time.Time{}, false
}

// expandYear pivots two-digit years: 00-68 are 20xx, 69-99 are 19xx.
func expandYear(yy int) int {
	if yy > 68 {
		return 1900 + yy
	}
	return 2000 + yy
}

func makeDate(y, m, d int, loc *time.Location) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

var romanQuarters = map[string]int{"i": 1, "ii": 2, "iii": 3, "iv": 4}

// parseQuarter accepts "q1", "q 1", "quy 3" and "quy iii".
func parseQuarter(s string) (int, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(s, "quy"), "q"))
	if n, ok := romanQuarters[s]; ok {
		return n, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 4 {
		return 0, false
	}
	return n, true
}

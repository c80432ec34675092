package timeexpr

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rubiojr/hoi/pkg/textnorm"
)

type anchorRule func(s string, now time.Time) (Anchor, bool)

// anchorRules resolve one fragment of a phrase. Counted units go before
// keywords so "2 thang truoc" is not read as "thang truoc".
var anchorRules = []anchorRule{
	recentUnitsAnchor,
	unitsAgoAnchor,
	keywordAnchor,
	hoursAnchor,
	minutesAnchor,
	monthAnchor,
	dateAnchor,
	quarterAnchor,
	yearAnchor,
}

// ResolveAnchor resolves a single fragment such as "hom qua" or
// "15/06/2024" into an Anchor.
func ResolveAnchor(fragment string, now time.Time) (Anchor, bool) {
	s := textnorm.Loose(fragment)
	if s == "" {
		return Anchor{}, false
	}
	for _, r := range anchorRules {
		if a, ok := r(s, now); ok {
			return a, true
		}
	}
	return Anchor{}, false
}

func unitAnchor(point time.Time, u Unit) Anchor {
	return Anchor{Start: StartOf(point, u), End: EndOf(point, u), Point: point}
}

var keywords = []struct {
	word string
	unit Unit
	back int
}{
	{"hom nay", Day, 0},
	{"hom qua", Day, 1},
	{"hom kia", Day, 2},
	{"tuan nay", Week, 0},
	{"tuan truoc", Week, 1},
	{"thang nay", Month, 0},
	{"thang truoc", Month, 1},
	{"nam nay", Year, 0},
	{"nam truoc", Year, 1},
}

func keywordAnchor(s string, now time.Time) (Anchor, bool) {
	for _, k := range keywords {
		if strings.Contains(s, k.word) {
			return unitAnchor(Subtract(now, k.back, k.unit), k.unit), true
		}
	}
	return Anchor{}, false
}

func countAndUnit(m []string) (int, Unit, bool) {
	if m == nil {
		return 0, 0, false
	}
	n, ok := parseNumber(m[1])
	if !ok {
		return 0, 0, false
	}
	u, ok := parseUnit(m[2])
	return n, u, ok
}

func recentUnitsAnchor(s string, now time.Time) (Anchor, bool) {
	n, u, ok := countAndUnit(reRecentUnits.FindStringSubmatch(s))
	if !ok {
		return Anchor{}, false
	}
	return Anchor{Start: StartOf(Subtract(now, n, u), u), End: now, Point: now}, true
}

func unitsAgoAnchor(s string, now time.Time) (Anchor, bool) {
	n, u, ok := countAndUnit(reUnitsAgo.FindStringSubmatch(s))
	if !ok {
		return Anchor{}, false
	}
	return unitAnchor(Subtract(now, n, u), u), true
}

func clockAnchor(s string, now time.Time, re *regexp.Regexp, step time.Duration) (Anchor, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return Anchor{}, false
	}
	n, ok := parseNumber(m[1])
	if !ok {
		return Anchor{}, false
	}
	return Anchor{Start: lookBack(now, n, step), End: now, Point: now}, true
}

func hoursAnchor(s string, now time.Time) (Anchor, bool) {
	return clockAnchor(s, now, reHours, time.Hour)
}

func minutesAnchor(s string, now time.Time) (Anchor, bool) {
	return clockAnchor(s, now, reMinutes, time.Minute)
}

// monthAnchor leaves "ngay D thang M" to dateAnchor.
func monthAnchor(s string, now time.Time) (Anchor, bool) {
	if reDayMonth.MatchString(s) {
		return Anchor{}, false
	}
	var mo, y int
	if m := reMonthWord.FindStringSubmatch(s); m != nil {
		mo, _ = strconv.Atoi(m[1])
		y = now.Year()
		if m[2] != "" {
			y, _ = strconv.Atoi(m[2])
		}
	} else if m := reMonthNumeric.FindStringSubmatch(s); m != nil {
		mo, _ = strconv.Atoi(m[1])
		y, _ = strconv.Atoi(m[2])
	} else {
		return Anchor{}, false
	}
	first, ok := makeDate(y, mo, 1, now.Location())
	if !ok {
		return Anchor{}, false
	}
	return unitAnchor(first, Month), true
}

func dateAnchor(s string, now time.Time) (Anchor, bool) {
	if m := reDayMonth.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y := now.Year()
		if m[3] != "" {
			y, _ = strconv.Atoi(m[3])
		}
		d, ok := makeDate(y, mo, day, now.Location())
		if !ok {
			return Anchor{}, false
		}
		return unitAnchor(d, Day), true
	}
	d, ok := parseDate(s, now.Location())
	if !ok {
		return Anchor{}, false
	}
	return unitAnchor(d, Day), true
}

func quarterAnchor(s string, now time.Time) (Anchor, bool) {
	m := reQuarter.FindStringSubmatch(s)
	if m == nil {
		return Anchor{}, false
	}
	q, ok := parseQuarter(m[1])
	if !ok {
		return Anchor{}, false
	}
	y := now.Year()
	if m[2] != "" {
		y, _ = strconv.Atoi(m[2])
	}
	start := time.Date(y, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, now.Location())
	return Anchor{Start: start, End: start.AddDate(0, 3, 0).Add(-instant), Point: start}, true
}

func yearAnchor(s string, now time.Time) (Anchor, bool) {
	m := reYear.FindStringSubmatch(s)
	if m == nil {
		return Anchor{}, false
	}
	y, _ := strconv.Atoi(m[1])
	if y < MinYear || y > MaxYear {
		return Anchor{}, false
	}
	start := time.Date(y, time.January, 1, 0, 0, 0, 0, now.Location())
	return unitAnchor(start, Year), true
}

package timeexpr

import (
	"regexp"
	"time"
)

// Bare years outside this window are not treated as years.
const (
	MinYear = 1970
	MaxYear = 9999
)

// RecentWindow is the span "gan day" means when nothing else is said.
const RecentWindow = 7 * 24 * time.Hour

var (
	reLatest       = regexp.MustCompile(`(?:top\s*)?(\d+|\w+)?\s*(?:file\s*)?moi\s*(?:cap\s*nhat\s*)?nhat`)
	reBetween      = regexp.MustCompile(`\btu\s+(.+?)\s+(?:den|toi)\s+(.+)`)
	reBefore       = regexp.MustCompile(`\btruoc\s+ngay\s+(.+)`)
	reAfter        = regexp.MustCompile(`\bsau\s+ngay\s+(.+)`)
	reHours        = regexp.MustCompile(`(\d+)\s*(?:gio|h)\b`)
	reMinutes      = regexp.MustCompile(`(\d+)\s*(?:phut|p)\b`)
	reRecentUnits  = regexp.MustCompile(`(\d+|\w+)\s*(ngay|tuan|thang|nam)\s*(?:gan day|gan nhat|qua)`)
	reUnitsAgo     = regexp.MustCompile(`(\d+|\w+)\s*(ngay|tuan|thang|nam)\s*truoc`)
	reDayMonth     = regexp.MustCompile(`\bngay\s*(\d{1,2})\s*thang\s*(\d{1,2})\b(?:\s*(?:nam\s*)?(\d{4})\b)?`)
	reMonthWord    = regexp.MustCompile(`\bthang\s*(\d{1,2})\b(?:\s*(?:nam\s*)?(\d{4})\b)?`)
	reMonthNumeric = regexp.MustCompile(`^(\d{1,2}) (\d{4})$`)
	reQuarter      = regexp.MustCompile(`\b(q\s*\d|quy\s*(?:i{1,3}|iv|\d))\b(?:\s*(?:nam\s*)?(\d{4})\b)?`)
	reYear         = regexp.MustCompile(`(?:nam\s*)?\b(\d{4})$`)
	reRecently     = regexp.MustCompile(`\b(?:gan day|gan nhat|vua qua)\b`)
)

var rules = []Rule{
	{Name: "latest", Match: matchLatest},
	{Name: "between", Match: matchBetween},
	{Name: "before", Match: matchBefore},
	{Name: "after", Match: matchAfter},
	{Name: "rolling-clock", Match: matchRollingClock},
	{Name: "recent-units", Match: fromAnchor(recentUnitsAnchor)},
	{Name: "units-ago", Match: fromAnchor(unitsAgoAnchor)},
	{Name: "keywords", Match: fromAnchor(keywordAnchor)},
	{Name: "month", Match: fromAnchor(monthAnchor)},
	{Name: "date", Match: fromAnchor(dateAnchor)},
	{Name: "quarter", Match: fromAnchor(quarterAnchor)},
	{Name: "year", Match: fromAnchor(yearAnchor)},
	{Name: "recently", Match: matchRecently},
}

func fromAnchor(r anchorRule) func(string, time.Time) (Resolution, bool) {
	return func(s string, now time.Time) (Resolution, bool) {
		a, ok := r(s, now)
		if !ok {
			return Resolution{}, false
		}
		return a.resolution(), true
	}
}

// matchLatest handles "moi nhat", "3 file moi nhat" and "top 5 moi cap nhat
// nhat". An unreadable count means one.
func matchLatest(s string, _ time.Time) (Resolution, bool) {
	m := reLatest.FindStringSubmatch(s)
	if m == nil {
		return Resolution{}, false
	}
	take := 1
	if n, ok := parseNumber(m[1]); ok && n > 0 {
		take = n
	}
	return Resolution{Kind: KindLatest, Take: take}, true
}

// matchBetween spans from the start of the left anchor to the end of the
// right one. A side that does not resolve stands for now.
func matchBetween(s string, now time.Time) (Resolution, bool) {
	m := reBetween.FindStringSubmatch(s)
	if m == nil {
		return Resolution{}, false
	}
	start, end := now, now
	if a, ok := ResolveAnchor(m[1], now); ok {
		start = a.Start
	}
	if a, ok := ResolveAnchor(m[2], now); ok {
		end = a.End
	}
	return between(start, end), true
}

func matchBefore(s string, now time.Time) (Resolution, bool) {
	m := reBefore.FindStringSubmatch(s)
	if m == nil {
		return Resolution{}, false
	}
	d, ok := parseDate(m[1], now.Location())
	if !ok {
		return Resolution{}, false
	}
	return until(startOfDay(d).Add(-instant)), true
}

func matchAfter(s string, now time.Time) (Resolution, bool) {
	m := reAfter.FindStringSubmatch(s)
	if m == nil {
		return Resolution{}, false
	}
	d, ok := parseDate(m[1], now.Location())
	if !ok {
		return Resolution{}, false
	}
	return since(endOfDay(d).Add(instant)), true
}

func matchRollingClock(s string, now time.Time) (Resolution, bool) {
	for _, c := range []struct {
		re   *regexp.Regexp
		step time.Duration
	}{{reHours, time.Hour}, {reMinutes, time.Minute}} {
		m := c.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		n, ok := parseNumber(m[1])
		if !ok {
			continue
		}
		return between(lookBack(now, n, c.step), now), true
	}
	return Resolution{}, false
}

func matchRecently(s string, now time.Time) (Resolution, bool) {
	if !reRecently.MatchString(s) {
		return Resolution{}, false
	}
	return between(startOfDay(now.Add(-RecentWindow)), now), true
}

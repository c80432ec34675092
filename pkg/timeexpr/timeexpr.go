// Package timeexpr resolves free-form Vietnamese time expressions ("hôm
// qua", "3 tuần gần đây", "từ 1/6/2024 đến hôm nay", "quý 2 2023", "top 5
// mới nhất") into time ranges.
//
// Resolution is an ordered list of independent rules evaluated top to
// bottom. The first rule that matches wins; overlapping phrasings are
// settled purely by list order. Every function is pure: the same phrase and
// the same now always produce the same Resolution.
//
// Calendar arithmetic happens in now's location. Weeks start on Sunday.
package timeexpr

import (
	"time"

	"github.com/rubiojr/hoi/pkg/textnorm"
)

// Kind tags a Resolution.
type Kind int

const (
	// KindNone means no time expression was recognized.
	KindNone Kind = iota
	// KindRange carries a half or fully bounded Range.
	KindRange
	// KindLatest asks for the Take most recently modified records,
	// ignoring any range.
	KindLatest
)

func (k Kind) String() string {
	switch k {
	case KindRange:
		return "range"
	case KindLatest:
		return "latest"
	}
	return "none"
}

// Range is a time span. A nil bound is unbounded on that side.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t lies within the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Resolution is the outcome of resolving a phrase.
type Resolution struct {
	Kind  Kind
	Rule  string
	Range Range
	Take  int
}

// Anchor is a single resolved reference: a span plus the representative
// instant used when the span is combined with another anchor.
type Anchor struct {
	Start time.Time
	End   time.Time
	Point time.Time
}

// Rule is one entry of the resolution grammar.
type Rule struct {
	Name  string
	Match func(phrase string, now time.Time) (Resolution, bool)
}

// Rules returns the resolution grammar in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Resolve runs phrase through the rule list. The phrase is loose-normalized
// first, so raw user input is accepted.
func Resolve(phrase string, now time.Time) Resolution {
	p := textnorm.Loose(phrase)
	if p == "" {
		return Resolution{Kind: KindNone}
	}
	for _, r := range rules {
		if res, ok := r.Match(p, now); ok {
			res.Rule = r.Name
			return res
		}
	}
	return Resolution{Kind: KindNone}
}

func between(start, end time.Time) Resolution {
	return Resolution{Kind: KindRange, Range: Range{Start: &start, End: &end}}
}

func since(start time.Time) Resolution {
	return Resolution{Kind: KindRange, Range: Range{Start: &start}}
}

func until(end time.Time) Resolution {
	return Resolution{Kind: KindRange, Range: Range{End: &end}}
}

func (a Anchor) resolution() Resolution {
	return between(a.Start, a.End)
}

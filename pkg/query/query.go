// Package query answers the five file searches (keyword, description,
// parent folder, type and time) over the current snapshot.
//
// An Engine holds no mutable state. Every call reads the snapshot once from
// its source, so a concurrent snapshot swap is seen entirely or not at all.
// Unrecognized or empty queries produce an empty result, never an error.
package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/rubiojr/hoi/pkg/filetype"
	"github.com/rubiojr/hoi/pkg/log"
	"github.com/rubiojr/hoi/pkg/match"
	"github.com/rubiojr/hoi/pkg/snapshot"
	"github.com/rubiojr/hoi/pkg/textnorm"
	"github.com/rubiojr/hoi/pkg/timeexpr"
)

var logger = log.ForService("query")

// SnapshotSource provides the snapshot to search. *snapshot.Holder
// satisfies it.
type SnapshotSource interface {
	Snapshot() *snapshot.Snapshot
}

// Static adapts a fixed snapshot to SnapshotSource.
type Static struct {
	S *snapshot.Snapshot
}

func (s Static) Snapshot() *snapshot.Snapshot { return s.S }

// Kind names a search operation.
type Kind string

const (
	Keyword     Kind = "keyword"
	Time        Kind = "time"
	Description Kind = "description"
	Parent      Kind = "parent"
	Type        Kind = "type"
)

// Kinds lists the search operations.
var Kinds = []Kind{Keyword, Time, Description, Parent, Type}

// ParseKind accepts a kind name or its short command form (findk, findt,
// findd, findp, finde).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keyword", "k", "findk":
		return Keyword, nil
	case "time", "t", "findt":
		return Time, nil
	case "description", "desc", "d", "findd":
		return Description, nil
	case "parent", "p", "findp":
		return Parent, nil
	case "type", "ext", "e", "finde":
		return Type, nil
	}
	return "", fmt.Errorf("unknown search kind %q", s)
}

// Engine runs searches.
type Engine struct {
	src   SnapshotSource
	clock func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock time searches are resolved against.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// New returns an Engine reading snapshots from src.
func New(src SnapshotSource, opts ...Option) *Engine {
	e := &Engine{src: src, clock: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) files() (*snapshot.Snapshot, []snapshot.FileRecord) {
	if e.src == nil {
		return snapshot.Empty(), nil
	}
	s := e.src.Snapshot()
	if s == nil {
		return snapshot.Empty(), nil
	}
	return s, s.Files()
}

// Find dispatches to the search named by kind.
func (e *Engine) Find(kind Kind, q string) []snapshot.FileRecord {
	switch kind {
	case Keyword:
		return e.FindByKeyword(q)
	case Time:
		return e.FindByTime(q)
	case Description:
		return e.FindByDescription(q)
	case Parent:
		return e.FindByParentName(q)
	case Type:
		return e.FindByType(q)
	}
	return []snapshot.FileRecord{}
}

// blank reports whether q has no letter or digit left to search for once
// it is normalized.
func blank(q string) bool {
	return !strings.ContainsFunc(textnorm.Loose(q), func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
}

func filter(files []snapshot.FileRecord, keep func(snapshot.FileRecord) bool) []snapshot.FileRecord {
	out := []snapshot.FileRecord{}
	for _, f := range files {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

// FindByKeyword matches q against file names.
func (e *Engine) FindByKeyword(q string) []snapshot.FileRecord {
	if blank(q) {
		return []snapshot.FileRecord{}
	}
	m := match.New(q)
	_, files := e.files()
	return filter(files, func(f snapshot.FileRecord) bool {
		return m(f.Name)
	})
}

// FindByDescription matches q against file paths or names.
func (e *Engine) FindByDescription(q string) []snapshot.FileRecord {
	if blank(q) {
		return []snapshot.FileRecord{}
	}
	m := match.New(q)
	_, files := e.files()
	return filter(files, func(f snapshot.FileRecord) bool {
		return m.Any(f.Path, f.Name)
	})
}

// FindByParentName returns files whose parent folder name matches q. Files
// whose parent is missing from the snapshot are left out.
func (e *Engine) FindByParentName(q string) []snapshot.FileRecord {
	if blank(q) {
		return []snapshot.FileRecord{}
	}
	m := match.New(q)
	s, files := e.files()
	return filter(files, func(f snapshot.FileRecord) bool {
		p, ok := s.Parent(f)
		return ok && p.Name != "" && m(p.Name)
	})
}

// FindByType resolves q to an extension set and returns files whose
// extension is in it.
func (e *Engine) FindByType(q string) []snapshot.FileRecord {
	exts, ok := filetype.Resolve(q)
	if !ok {
		logger.Debugf("type %q did not resolve", q)
		return []snapshot.FileRecord{}
	}
	_, files := e.files()
	return filter(files, func(f snapshot.FileRecord) bool {
		return slices.Contains(exts, filetype.Extension(f.Name))
	})
}

// FindByTime resolves q as a time expression. A "most recent N" phrase
// returns the N newest files regardless of any range in the phrase.
func (e *Engine) FindByTime(q string) []snapshot.FileRecord {
	res := timeexpr.Resolve(q, e.clock())
	logger.Debugf("time %q resolved by rule %q as %s", q, res.Rule, res.Kind)

	_, files := e.files()
	dated := filter(files, func(f snapshot.FileRecord) bool {
		return f.ModifiedTime != nil
	})

	switch res.Kind {
	case timeexpr.KindLatest:
		return latest(dated, res.Take)
	case timeexpr.KindRange:
		return filter(dated, func(f snapshot.FileRecord) bool {
			return res.Range.Contains(*f.ModifiedTime)
		})
	}
	return []snapshot.FileRecord{}
}

// latest sorts newest first, ties broken by id, and keeps n.
func latest(files []snapshot.FileRecord, n int) []snapshot.FileRecord {
	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, func(a, b snapshot.FileRecord) int {
		if c := b.ModifiedTime.Compare(*a.ModifiedTime); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

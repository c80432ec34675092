// Package filetype maps category words and raw extensions to sets of file
// extensions, tolerating misspellings through edit-distance matching.
//
// The tables are built once when the package initializes and are read-only
// afterwards, so every function here is safe for concurrent use.
package filetype

import (
	"slices"
	"strings"

	"github.com/rubiojr/hoi/pkg/textnorm"
)

// MaxDistance is the largest edit distance FuzzyFind accepts.
const MaxDistance = 2

// Dot-less file names that count as their own extension.
var specialNames = []string{"dockerfile", "makefile", "procfile", "cmakelists.txt", "license"}

// Suffixes made of more than one dot segment, checked before the last segment.
var compoundExts = []string{"tar.gz", "tar.bz2", "tar.xz", "tar.zst"}

type table struct {
	aliasKeys []string
	aliases   map[string][]string
	known     []string
	knownSet  map[string]struct{}
}

var tbl = buildTable()

func buildTable() *table {
	t := &table{
		aliases:  make(map[string][]string, len(aliasEntries)),
		knownSet: make(map[string]struct{}, len(knownExtensions)),
	}
	for _, e := range aliasEntries {
		if _, dup := t.aliases[e.key]; dup {
			continue
		}
		t.aliasKeys = append(t.aliasKeys, e.key)
		t.aliases[e.key] = slices.Clone(e.exts)
	}
	for _, ext := range knownExtensions {
		if _, dup := t.knownSet[ext]; dup {
			continue
		}
		t.knownSet[ext] = struct{}{}
		t.known = append(t.known, ext)
	}
	return t
}

// KnownExtensions returns a copy of the flat extension list, in table order.
func KnownExtensions() []string {
	return slices.Clone(tbl.known)
}

// IsKnown reports whether ext is in the flat extension list.
func IsKnown(ext string) bool {
	_, ok := tbl.knownSet[ext]
	return ok
}

// Aliases returns the category words in table order.
func Aliases() []string {
	return slices.Clone(tbl.aliasKeys)
}

// Lookup returns the extension set for an exact category word. The word is
// folded first, so "Ảnh" and "anh" are the same key.
func Lookup(word string) ([]string, bool) {
	exts, ok := tbl.aliases[textnorm.Fold(word)]
	if !ok {
		return nil, false
	}
	return slices.Clone(exts), true
}

// Category returns the first category word whose set contains ext.
func Category(ext string) (string, bool) {
	for _, key := range tbl.aliasKeys {
		if slices.Contains(tbl.aliases[key], ext) {
			return key, true
		}
	}
	return "", false
}

// Extension returns the lower-cased extension of filename. Conventional
// dot-less names (Dockerfile, Makefile...) are returned whole, .env files map
// to "env", compound suffixes such as tar.gz win over their last segment.
// The result is empty when no extension can be determined.
func Extension(filename string) string {
	lower := strings.ToLower(strings.TrimSpace(filename))
	if lower == "" {
		return ""
	}
	if slices.Contains(specialNames, lower) {
		return lower
	}
	if lower == ".env" || strings.HasPrefix(lower, ".env.") {
		return "env"
	}
	if lower == ".gitignore" || lower == "gitignore" {
		return "gitignore"
	}
	for _, ext := range compoundExts {
		if strings.HasSuffix(lower, "."+ext) {
			return ext
		}
	}

	i := strings.LastIndexByte(lower, '.')
	if i < 0 || i == len(lower)-1 {
		return ""
	}
	ext := lower[i+1:]
	for _, r := range ext {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}

// Levenshtein returns the edit distance between a and b, counting
// insertions, deletions and substitutions of runes at cost 1.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	d := make([][]int, len(ra)+1)
	for i := range d {
		d[i] = make([]int, len(rb)+1)
		d[i][0] = i
	}
	for j := range d[0] {
		d[0][j] = j
	}
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				d[i][j] = d[i-1][j-1]
				continue
			}
			d[i][j] = 1 + min(d[i-1][j-1], d[i][j-1], d[i-1][j])
		}
	}
	return d[len(ra)][len(rb)]
}

// FuzzyFind returns the candidate closest to key. Ties go to the earlier
// candidate. No match is reported when the best distance exceeds MaxDistance.
func FuzzyFind(key string, candidates []string) (string, bool) {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := Levenshtein(key, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > MaxDistance {
		return "", false
	}
	return best, true
}

// Resolve turns a type query into an extension set. The lookup order is
// fixed: exact category word, fuzzy category word, exact extension, fuzzy
// extension, then the same two extension steps with a leading dot removed.
func Resolve(query string) ([]string, bool) {
	q := textnorm.Fold(query)
	if q == "" {
		return nil, false
	}

	if exts, ok := tbl.aliases[q]; ok {
		return slices.Clone(exts), true
	}
	if key, ok := FuzzyFind(q, tbl.aliasKeys); ok {
		return slices.Clone(tbl.aliases[key]), true
	}
	if ext, ok := resolveExtension(q); ok {
		return []string{ext}, true
	}
	if trimmed, found := strings.CutPrefix(q, "."); found && trimmed != "" {
		if ext, ok := resolveExtension(trimmed); ok {
			return []string{ext}, true
		}
	}
	return nil, false
}

func resolveExtension(q string) (string, bool) {
	if IsKnown(q) {
		return q, true
	}
	return FuzzyFind(q, tbl.known)
}

// Package textnorm turns free-form, accent-heavy text into the canonical
// forms the query engine compares: a "loose" form with diacritics and
// separators collapsed, a "compact" form without any whitespace and a token
// list.
//
// Vietnamese input is the primary target. "Báo-cáo_Quý 1" and "bao cao quy 1"
// share the same loose form, so users can type without accents or with
// whatever separators they like.
//
// Usage:
//
//	textnorm.Loose("Báo-cáo_1")   // "bao cao 1"
//	textnorm.Compact("Báo cáo")   // "baocao"
//	textnorm.Tokens("Hồ sơ 2024") // ["ho", "so", "2024"]
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes, drops every combining mark (nonspacing, spacing and
// enclosing) and recomposes whatever is left so the output stays NFC.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.M)), norm.NFC)

// separators collapse into a single space in the loose form.
const separators = "_-.–—·/\\|,;:(){}[]"

// StripDiacritics removes combining marks and maps đ/Đ to d/D. It never
// fails: if the transformer chain errors out, a rune-by-rune filter is used
// instead.
func StripDiacritics(s string) string {
	s = strings.NewReplacer("đ", "d", "Đ", "D").Replace(s)
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return stripMarksFallback(s)
	}
	return out
}

func stripMarksFallback(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.M, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

func isZeroWidth(r rune) bool {
	return (r >= 0x200B && r <= 0x200D) || r == 0xFEFF
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(separators, r)
}

// Fold strips diacritics and zero-width characters, trims and lower-cases
// the input. Separators are left alone, so ".tar.gz" keeps its dots.
func Fold(s string) string {
	s = strings.Map(func(r rune) rune {
		if isZeroWidth(r) {
			return -1
		}
		return r
	}, StripDiacritics(s))
	return strings.ToLower(strings.TrimSpace(s))
}

// Loose returns the loose form of s: folded, with every run of whitespace
// or separator characters replaced by one space, trimmed.
func Loose(s string) string {
	folded := Fold(s)
	var b strings.Builder
	b.Grow(len(folded))
	pending := false
	for _, r := range folded {
		if isSeparator(r) {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Compact returns the loose form with all whitespace removed.
func Compact(s string) string {
	return strings.ReplaceAll(Loose(s), " ", "")
}

// Tokens splits the loose form on spaces. Empty input yields no tokens.
func Tokens(s string) []string {
	return strings.Fields(Loose(s))
}

package filetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"archive.tar.gz", "tar.gz"},
		{"backup.TAR.ZST", "tar.zst"},
		{"Dockerfile", "dockerfile"},
		{"CMakeLists.txt", "cmakelists.txt"},
		{"LICENSE", "license"},
		{".env", "env"},
		{".env.local", "env"},
		{".gitignore", "gitignore"},
		{"noext", ""},
		{"trailing.", ""},
		{"weird.b-c", ""},
		{"Báo cáo.DOCX", "docx"},
		{"photo.final.JPG", "jpg"},
		{".bashrc", "bashrc"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.name))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	for _, s := range []string{"", "a", "excel", "ảnh", "tar.gz"} {
		assert.Equal(t, 0, Levenshtein(s, s))
	}
	assert.Equal(t, 2, Levenshtein("ecxel", "excel"))
	assert.Equal(t, 3, Levenshtein("kitten", "sitting"))
	assert.Equal(t, 5, Levenshtein("", "hello"))
	assert.Equal(t, 1, Levenshtein("anh", "ảnh"))
}

func TestFuzzyFind(t *testing.T) {
	got, ok := FuzzyFind("ecxel", Aliases())
	require.True(t, ok)
	assert.Equal(t, "excel", got)

	_, ok = FuzzyFind("zzzzzzzz", Aliases())
	assert.False(t, ok)

	_, ok = FuzzyFind("x", nil)
	assert.False(t, ok)

	got, ok = FuzzyFind("ab", []string{"ax", "ay"})
	require.True(t, ok)
	assert.Equal(t, "ax", got, "ties go to the first candidate")
}

func TestResolve(t *testing.T) {
	images, _ := Lookup("ảnh")
	sheets, _ := Lookup("excel")

	tests := []struct {
		name  string
		query string
		want  []string
		ok    bool
	}{
		{"folded category word", "anh", images, true},
		{"accented category word", "Ảnh", images, true},
		{"english synonym", "Photos", images, true},
		{"misspelled category", "ecxel", sheets, true},
		{"raw extension", "xlsx", []string{"xlsx"}, true},
		{"compound extension", "tar.gz", []string{"tar.gz"}, true},
		{"dotted misspelled extension", ".parquett", []string{"parquet"}, true},
		{"unknown word", "qqqqqqqqqq", nil, false},
		{"empty", "   ", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.query)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// A misspelled category word is preferred over an exact raw extension when
// it lands within the fuzzy threshold first.
func TestResolveCategoryBeforeExtension(t *testing.T) {
	programs, _ := Lookup("app")
	got, ok := Resolve("mp4")
	require.True(t, ok)
	assert.Equal(t, programs, got)
}

func TestKnownExtensionsDeduplicated(t *testing.T) {
	seen := map[string]bool{}
	for _, ext := range KnownExtensions() {
		assert.False(t, seen[ext], "duplicate %q", ext)
		seen[ext] = true
	}
	assert.True(t, IsKnown("tar.bz2"))
	assert.True(t, IsKnown("dockerfile"))
}

func TestCategory(t *testing.T) {
	cat, ok := Category("png")
	require.True(t, ok)
	assert.Equal(t, "anh", cat)

	_, ok = Category("nope")
	assert.False(t, ok)
}

func TestLookupReturnsCopy(t *testing.T) {
	exts, ok := Lookup("pdf")
	require.True(t, ok)
	exts[0] = "mutated"
	again, _ := Lookup("pdf")
	assert.Equal(t, []string{"pdf"}, again)
}

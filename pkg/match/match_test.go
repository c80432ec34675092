package match

import (
	"testing"

	"github.com/rubiojr/hoi/pkg/textnorm"
	"github.com/stretchr/testify/assert"
)

func TestMatcher(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		want      bool
	}{
		{"loose substring", "bao cao", "Báo cáo tháng 6.docx", true},
		{"compact ignores separators", "bao-cao", "BaoCao_2024.xlsx", true},
		{"compact joins query words", "baocao", "bao cao tong hop", true},
		{"tokens out of order", "2024 ke hoach", "Kế hoạch năm 2024.pdf", true},
		{"token partial match", "hoa don", "hoá đơn điện.pdf", true},
		{"missing token", "hop dong 2023", "Hợp đồng 2024.pdf", false},
		{"empty candidate", "bao", "", false},
		{"separator only candidate", "bao", "__--", false},
		{"unrelated", "anh the", "CV xin viec.pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.query)(tt.candidate))
		})
	}
}

// Any candidate whose loose form contains the query's loose form verbatim
// must match.
func TestMatcherLooseContainmentIsSound(t *testing.T) {
	pairs := [][2]string{
		{"Quý 3", "Báo cáo quý 3 năm 2024"},
		{"tai-lieu", "Tài liệu / học tập"},
		{"ĐỀ", "đề thi"},
		{"x", "x"},
	}
	for _, p := range pairs {
		q, c := p[0], p[1]
		if !assert.Contains(t, textnorm.Loose(c), textnorm.Loose(q)) {
			continue
		}
		assert.True(t, New(q)(c), "query %q candidate %q", q, c)
	}
}

func TestEmptyQueryMatchesNonEmptyCandidate(t *testing.T) {
	assert.True(t, New("")("anything"))
	assert.False(t, New("")(""))
}

func TestAny(t *testing.T) {
	m := New("hop dong")
	assert.True(t, m.Any("root/Hợp đồng/a.pdf", "a.pdf"))
	assert.False(t, m.Any("root/b.pdf", "b.pdf"))
	assert.False(t, m.Any())
}

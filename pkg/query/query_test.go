package query

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/hoi/pkg/snapshot"
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func at(y int, m time.Month, d, h int) *time.Time {
	t := time.Date(y, m, d, h, 0, 0, 0, time.UTC)
	return &t
}

func folder(id, name, parent string) snapshot.FileRecord {
	return snapshot.FileRecord{ID: id, Name: name, Path: name, Kind: snapshot.Folder, ParentID: parent}
}

func file(id, name, path, parent string, mod *time.Time) snapshot.FileRecord {
	return snapshot.FileRecord{ID: id, Name: name, Path: path, Kind: snapshot.File, ParentID: parent, ModifiedTime: mod}
}

func fixture() *snapshot.Snapshot {
	return snapshot.New([]snapshot.FileRecord{
		folder("root", "Drive", ""),
		folder("bc", "Báo Cáo 2024", "root"),
		folder("img", "Hình ảnh", "root"),
		file("f1", "Báo cáo tài chính Q2.pdf", "Drive/Báo Cáo 2024/Báo cáo tài chính Q2.pdf", "bc", at(2024, 6, 15, 8)),
		file("f2", "bao_cao_nhan_su.docx", "Drive/Báo Cáo 2024/bao_cao_nhan_su.docx", "bc", at(2024, 6, 14, 16)),
		file("f3", "logo.png", "Drive/Hình ảnh/logo.png", "img", at(2024, 4, 2, 9)),
		file("f4", "team photo.JPG", "Drive/Hình ảnh/team photo.JPG", "img", at(2024, 6, 10, 12)),
		file("f5", "ke-hoach.xlsx", "Drive/ke-hoach.xlsx", "root", at(2023, 12, 31, 23)),
		file("f6", "notes.txt", "Drive/notes.txt", "root", nil),
		// Parent folder no longer in the snapshot.
		file("f7", "bao cao cu.pdf", "Drive/Archive/bao cao cu.pdf", "gone", at(2024, 6, 1, 9)),
	}, now)
}

func newEngine(s *snapshot.Snapshot) *Engine {
	return New(Static{S: s}, WithClock(func() time.Time { return now }))
}

func ids(records []snapshot.FileRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestFindByKeyword(t *testing.T) {
	e := newEngine(fixture())

	tests := []struct {
		q    string
		want []string
	}{
		{"báo cáo", []string{"f7", "f1", "f2"}},
		{"baocao", []string{"f7", "f1", "f2"}},
		{"tai chinh bao cao", []string{"f1"}},
		{"TEAM photo", []string{"f4"}},
		{"kế hoạch", []string{"f5"}},
		{"Hình ảnh", []string{}},
		{"không tồn tại", []string{}},
		{"", []string{}},
		{"   ", []string{}},
		{"---", []string{}},
		{"...", []string{}},
		{"_ - .", []string{}},
		{"!!!", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(e.FindByKeyword(tt.q)))
		})
	}
}

func TestFindByDescription(t *testing.T) {
	e := newEngine(fixture())

	assert.Equal(t, []string{"f3", "f4"}, ids(e.FindByDescription("hinh anh")))
	assert.Equal(t, []string{"f1", "f2"}, ids(e.FindByDescription("bao cao 2024")))
	assert.Equal(t, []string{"f7"}, ids(e.FindByDescription("archive")))
	assert.Empty(t, e.FindByDescription(""))
	assert.Empty(t, e.FindByDescription("---"))
	assert.Empty(t, e.FindByDescription("..."))
}

func TestFindByParentName(t *testing.T) {
	e := newEngine(fixture())

	// f7 matches by name but its parent is missing.
	assert.Equal(t, []string{"f1", "f2"}, ids(e.FindByParentName("BaoCao")))
	assert.Equal(t, []string{"f3", "f4"}, ids(e.FindByParentName("hình ảnh")))
	assert.Equal(t, []string{"f5", "f6"}, ids(e.FindByParentName("drive")))
	assert.Empty(t, e.FindByParentName("archive"))
	assert.Empty(t, e.FindByParentName(""))
	assert.Empty(t, e.FindByParentName("---"))
	assert.Empty(t, e.FindByParentName("..."))
	assert.Empty(t, e.FindByParentName("?!"))
}

func TestFindByType(t *testing.T) {
	e := newEngine(fixture())

	tests := []struct {
		q    string
		want []string
	}{
		{"anh", []string{"f3", "f4"}},
		{"ảnh", []string{"f3", "f4"}},
		{"pdf", []string{"f7", "f1"}},
		{".PDF", []string{"f7", "f1"}},
		{"word", []string{"f2"}},
		{"excel", []string{"f5"}},
		{"ecxel", []string{"f5"}},
		{"khongcoloainay", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(e.FindByType(tt.q)))
		})
	}
}

func TestFindByTime(t *testing.T) {
	e := newEngine(fixture())

	tests := []struct {
		q    string
		want []string
	}{
		{"hôm nay", []string{"f1"}},
		{"hôm qua", []string{"f2"}},
		{"2 tháng trước", []string{"f3"}},
		{"tháng 6 2024", []string{"f7", "f1", "f2", "f4"}},
		{"năm 2023", []string{"f5"}},
		{"tuần này", []string{"f1", "f2", "f4"}},
		{"trước ngày 01/01/2024", []string{"f5"}},
		{"sau ngày 14/06/2024", []string{"f1"}},
		{"gần đây", []string{"f1", "f2", "f4"}},
		{"báo cáo", []string{}},
		{"năm 1800", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(e.FindByTime(tt.q)))
		})
	}
}

func TestFindByTimeHugeCount(t *testing.T) {
	e := newEngine(fixture())

	assert.Len(t, e.FindByTime("3000000 giờ qua"), 6)
	assert.Len(t, e.FindByTime("200000000 phút qua"), 6)
	assert.Empty(t, e.FindByTime("99999999999 tuần trước"))
}

func TestFindByTimeLatest(t *testing.T) {
	e := newEngine(fixture())

	assert.Equal(t, []string{"f1", "f2", "f4"}, ids(e.FindByTime("top 3 mới nhất")))
	assert.Equal(t, []string{"f1"}, ids(e.FindByTime("mới nhất")))
	// More than the dated files: every dated file, undated ones skipped.
	assert.Len(t, e.FindByTime("top 50 mới nhất"), 6)
}

func TestLatestIgnoresDateBounds(t *testing.T) {
	records := []snapshot.FileRecord{
		file("a", "a.txt", "a.txt", "", at(2020, 1, 1, 0)),
		file("b", "b.txt", "b.txt", "", at(2021, 1, 1, 0)),
		file("c", "c.txt", "c.txt", "", at(2022, 1, 1, 0)),
		file("d", "d.txt", "d.txt", "", at(2023, 1, 1, 0)),
		file("e", "e.txt", "e.txt", "", at(2024, 1, 1, 0)),
	}
	e := newEngine(snapshot.New(records, now))

	got := e.FindByTime("top 3 mới nhất năm 2020")
	assert.Equal(t, []string{"e", "d", "c"}, ids(got))
}

func TestLatestTieBreaksByID(t *testing.T) {
	same := at(2024, 6, 1, 0)
	e := newEngine(snapshot.New([]snapshot.FileRecord{
		file("z", "z.txt", "a/z.txt", "", same),
		file("m", "m.txt", "b/m.txt", "", same),
	}, now))

	assert.Equal(t, []string{"m", "z"}, ids(e.FindByTime("2 file mới nhất")))
}

func TestFindDispatch(t *testing.T) {
	e := newEngine(fixture())

	for _, k := range Kinds {
		require.NotNil(t, e.Find(k, "báo cáo"), k)
	}
	assert.Equal(t, ids(e.FindByType("anh")), ids(e.Find(Type, "anh")))
	assert.Empty(t, e.Find(Kind("bogus"), "anh"))
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"keyword": Keyword,
		"findk":   Keyword,
		"T":       Time,
		"desc":    Description,
		"findp":   Parent,
		"ext":     Type,
		"finde":   Type,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseKind("size")
	assert.Error(t, err)
}

func TestEmptySources(t *testing.T) {
	for _, e := range []*Engine{New(nil), New(Static{}), newEngine(snapshot.Empty())} {
		assert.Empty(t, e.FindByKeyword("a"))
		assert.Empty(t, e.FindByTime("mới nhất"))
		assert.Empty(t, e.FindByType("pdf"))
	}
}

func TestSnapshotSwapDuringQueries(t *testing.T) {
	h := snapshot.NewHolder(fixture())
	e := New(h, WithClock(func() time.Time { return now }))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				n := len(e.FindByKeyword("bao cao"))
				if n != 0 && n != 3 {
					t.Errorf("observed a partial snapshot: %d results", n)
					return
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			h.Swap(snapshot.Empty())
		} else {
			h.Swap(fixture())
		}
	}
	wg.Wait()
}

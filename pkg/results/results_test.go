package results

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rubiojr/hoi/pkg/snapshot"
)

func openStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "results.db"), opts...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func records(n int) []snapshot.FileRecord {
	out := make([]snapshot.FileRecord, n)
	for i := range out {
		mod := time.Date(2024, 6, 1+i, 9, 0, 0, 0, time.UTC)
		out[i] = snapshot.FileRecord{
			ID:           fmt.Sprintf("id-%02d", i),
			Name:         fmt.Sprintf("file-%02d.pdf", i),
			Path:         fmt.Sprintf("docs/file-%02d.pdf", i),
			Kind:         snapshot.File,
			ParentID:     "docs",
			ModifiedTime: &mod,
			MimeType:     "application/pdf",
		}
	}
	return out
}

func TestSaveAndPage(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	recs := records(10)
	recs[3].ModifiedTime = nil

	if err := s.Save(ctx, "chat-1", recs); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tests := []struct {
		offset, limit int
		wantIDs       []string
		wantMore      bool
	}{
		{0, 4, []string{"id-00", "id-01", "id-02", "id-03"}, true},
		{4, 4, []string{"id-04", "id-05", "id-06", "id-07"}, true},
		{8, 4, []string{"id-08", "id-09"}, false},
		{12, 4, nil, false},
	}
	for _, tt := range tests {
		page, err := s.Page(ctx, "chat-1", tt.offset, tt.limit)
		if err != nil {
			t.Fatalf("Page(%d, %d): %v", tt.offset, tt.limit, err)
		}
		if page.Total != 10 || page.Offset != tt.offset || page.HasMore != tt.wantMore {
			t.Fatalf("Page(%d, %d) = total %d offset %d more %v", tt.offset, tt.limit, page.Total, page.Offset, page.HasMore)
		}
		if len(page.Results) != len(tt.wantIDs) {
			t.Fatalf("Page(%d, %d) returned %d results, want %d", tt.offset, tt.limit, len(page.Results), len(tt.wantIDs))
		}
		for i, id := range tt.wantIDs {
			if page.Results[i].ID != id {
				t.Fatalf("Page(%d, %d)[%d] = %s, want %s", tt.offset, tt.limit, i, page.Results[i].ID, id)
			}
		}
	}

	page, _ := s.Page(ctx, "chat-1", 0, 4)
	got := page.Results[0]
	if got.Name != "file-00.pdf" || got.Path != "docs/file-00.pdf" || got.Kind != snapshot.File ||
		got.ParentID != "docs" || got.MimeType != "application/pdf" {
		t.Fatalf("record fields not preserved: %+v", got)
	}
	if !got.ModifiedTime.Equal(*recs[0].ModifiedTime) {
		t.Fatalf("modified time = %v, want %v", got.ModifiedTime, recs[0].ModifiedTime)
	}
	if page.Results[3].ModifiedTime != nil {
		t.Fatalf("nil modified time not preserved: %v", page.Results[3].ModifiedTime)
	}
}

func TestSaveReplacesAndSkipsEmpty(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "", records(5)); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, DefaultSession, records(2)); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "", nil); err != nil {
		t.Fatal(err)
	}

	page, err := s.Page(ctx, "", 0, 10)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if page.Total != 2 || len(page.Results) != 2 {
		t.Fatalf("expected the replacing set of 2, got total %d", page.Total)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "a", records(3)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Page(ctx, "b", 0, 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Page(b) error = %v, want ErrNotFound", err)
	}
	if err := s.Clear(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Page(ctx, "a", 0, 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Page after Clear error = %v, want ErrNotFound", err)
	}
}

func TestTTLAndPurge(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := openStore(t, WithTTL(6*time.Hour), WithClock(clock))
	ctx := context.Background()

	if err := s.Save(ctx, "old", records(2)); err != nil {
		t.Fatal(err)
	}
	now = now.Add(5 * time.Hour)
	if err := s.Save(ctx, "new", records(2)); err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := s.Page(ctx, "old", 0, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired set still visible: %v", err)
	}
	if _, err := s.Page(ctx, "new", 0, 1); err != nil {
		t.Fatalf("fresh set not visible: %v", err)
	}

	n, err := s.PurgeOlderThan(ctx, now.Add(-6*time.Hour))
	if err != nil {
		t.Fatalf("PurgeOlderThan: %v", err)
	}
	if n != 1 {
		t.Fatalf("purged %d sets, want 1", n)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), "x", records(1)); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	page, err := s.Page(context.Background(), "x", 0, 5)
	if err != nil || page.Total != 1 {
		t.Fatalf("Page after reopen = %+v, %v", page, err)
	}
}

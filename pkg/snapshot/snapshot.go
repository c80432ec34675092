// Package snapshot holds the point-in-time index of files and folders the
// query engine searches. Snapshots are produced by a crawler, persisted as
// JSON (optionally zstd-compressed) and replaced as a whole; nothing mutates
// a Snapshot once it has been built.
package snapshot

import (
	"cmp"
	"slices"
	"time"
)

// Kind distinguishes files from folders.
type Kind string

const (
	File   Kind = "file"
	Folder Kind = "folder"
)

// FileRecord is one node of the indexed tree. ParentID is a plain
// identifier; resolve it with Snapshot.Get, parents may vanish between
// crawls.
type FileRecord struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Path         string     `json:"path"`
	Kind         Kind       `json:"type"`
	ParentID     string     `json:"parentId,omitempty"`
	ModifiedTime *time.Time `json:"modifiedTime,omitempty"`
	MimeType     string     `json:"mimeType,omitempty"`
}

// IsFile reports whether the record is a file.
func (r FileRecord) IsFile() bool {
	return r.Kind == File
}

// Snapshot is an immutable id -> record mapping.
type Snapshot struct {
	byID        map[string]FileRecord
	files       []FileRecord
	generatedAt time.Time
}

// New builds a snapshot from records. Later records win on duplicate ids.
func New(records []FileRecord, generatedAt time.Time) *Snapshot {
	byID := make(map[string]FileRecord, len(records))
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		byID[r.ID] = r
	}
	return fromMap(byID, generatedAt)
}

func fromMap(byID map[string]FileRecord, generatedAt time.Time) *Snapshot {
	s := &Snapshot{byID: byID, generatedAt: generatedAt}
	for _, r := range byID {
		if r.IsFile() {
			s.files = append(s.files, r)
		}
	}
	slices.SortFunc(s.files, func(a, b FileRecord) int {
		if c := cmp.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return s
}

// Empty returns a snapshot with no records.
func Empty() *Snapshot {
	return fromMap(map[string]FileRecord{}, time.Time{})
}

// Get looks a record up by id.
func (s *Snapshot) Get(id string) (FileRecord, bool) {
	if s == nil || id == "" {
		return FileRecord{}, false
	}
	r, ok := s.byID[id]
	return r, ok
}

// Parent resolves the record's parent. Missing parents are reported as not
// found rather than as an error.
func (s *Snapshot) Parent(r FileRecord) (FileRecord, bool) {
	return s.Get(r.ParentID)
}

// Files returns the file records ordered by path, then id. The slice is
// shared; callers must not modify it.
func (s *Snapshot) Files() []FileRecord {
	if s == nil {
		return nil
	}
	return s.files
}

// Records returns every record, files and folders, ordered by path.
func (s *Snapshot) Records() []FileRecord {
	if s == nil {
		return nil
	}
	out := make([]FileRecord, 0, len(s.byID))
	for _, r := range s.byID {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b FileRecord) int {
		if c := cmp.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.byID)
}

// GeneratedAt is when the crawler produced the snapshot.
func (s *Snapshot) GeneratedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.generatedAt
}

// Stats summarizes a snapshot.
type Stats struct {
	Files       int       `json:"files"`
	Folders     int       `json:"folders"`
	Orphans     int       `json:"orphans"`
	Undated     int       `json:"undated"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Stats counts files, folders, files whose parent is missing and files
// without a modification time.
func (s *Snapshot) Stats() Stats {
	st := Stats{GeneratedAt: s.GeneratedAt()}
	if s == nil {
		return st
	}
	for _, r := range s.byID {
		if !r.IsFile() {
			st.Folders++
			continue
		}
		st.Files++
		if r.ParentID != "" {
			if _, ok := s.byID[r.ParentID]; !ok {
				st.Orphans++
			}
		}
		if r.ModifiedTime == nil {
			st.Undated++
		}
	}
	return st
}

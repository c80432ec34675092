package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/rubiojr/hoi/pkg/log"
)

// ErrCorrupt is returned when a snapshot file cannot be decoded.
var ErrCorrupt = errors.New("corrupt snapshot")

var logger = log.ForService("snapshot")

// wireRecord is the on-disk shape written by the crawler. Times are kept as
// strings so one bad timestamp does not reject the whole file.
type wireRecord struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	MimeType     string `json:"mimeType,omitempty"`
	Type         string `json:"type"`
	ParentID     string `json:"parentId,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	CreatedTime  string `json:"createdTime,omitempty"`
}

type wireSnapshot struct {
	ByID        map[string]wireRecord `json:"byId"`
	GeneratedAt string                `json:"generatedAt,omitempty"`
}

func isCompressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// Load reads a snapshot file. Paths ending in .zst are zstd-compressed.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if isCompressed(path) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		defer dec.Close()
		r = dec
	}
	return Decode(r)
}

// Decode reads a snapshot in the crawler's JSON format.
func Decode(r io.Reader) (*Snapshot, error) {
	var w wireSnapshot
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	byID := make(map[string]FileRecord, len(w.ByID))
	for id, wr := range w.ByID {
		if id == "" {
			continue
		}
		rec := FileRecord{
			ID:       id,
			Name:     wr.Name,
			Path:     wr.Path,
			Kind:     Kind(strings.ToLower(wr.Type)),
			ParentID: wr.ParentID,
			MimeType: wr.MimeType,
		}
		if t, ok := parseTime(wr.ModifiedTime); ok {
			rec.ModifiedTime = &t
		} else if t, ok := parseTime(wr.CreatedTime); ok {
			rec.ModifiedTime = &t
		}
		byID[id] = rec
	}

	generatedAt, _ := parseTime(w.GeneratedAt)
	return fromMap(byID, generatedAt), nil
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// LoadOrEmpty loads path and substitutes an empty snapshot when the file is
// missing or unreadable. Queries always get something to search.
func LoadOrEmpty(path string) *Snapshot {
	s, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debugf("no snapshot at %s, using an empty one", path)
		} else {
			logger.Warnf("loading snapshot %s: %v, using an empty one", path, err)
		}
		return Empty()
	}
	return s
}

// Encode writes s in the crawler's JSON format.
func Encode(w io.Writer, s *Snapshot) error {
	out := wireSnapshot{ByID: make(map[string]wireRecord, s.Len())}
	if !s.GeneratedAt().IsZero() {
		out.GeneratedAt = s.GeneratedAt().UTC().Format(time.RFC3339Nano)
	}
	for _, r := range s.Records() {
		wr := wireRecord{
			Name:     r.Name,
			Path:     r.Path,
			MimeType: r.MimeType,
			Type:     string(r.Kind),
			ParentID: r.ParentID,
		}
		if r.ModifiedTime != nil {
			wr.ModifiedTime = r.ModifiedTime.UTC().Format(time.RFC3339Nano)
		}
		out.ByID[r.ID] = wr
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Save writes s to path through a temporary file and a rename, so readers
// never see a half-written snapshot.
func Save(path string, s *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	var w io.Writer = tmp
	var zw *zstd.Encoder
	if isCompressed(path) {
		zw, err = zstd.NewWriter(tmp)
		if err != nil {
			return fmt.Errorf("creating zstd writer: %w", err)
		}
		w = zw
	}
	if err := Encode(w, s); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("flushing zstd writer: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming snapshot: %w", err)
	}
	committed = true
	return nil
}

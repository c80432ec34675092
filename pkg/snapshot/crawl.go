package snapshot

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// CrawlOptions tune Crawl.
type CrawlOptions struct {
	// Exclude holds filepath.Match patterns tested against entry names.
	Exclude []string
	// Now stamps the snapshot; defaults to time.Now.
	Now func() time.Time
}

// FolderMimeType is the mime type recorded for folders.
const FolderMimeType = "inode/directory"

// RecordID derives a stable id from a path relative to the crawl root.
func RecordID(rel string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file:///"+filepath.ToSlash(rel))).String()
}

type crawlItem struct {
	dir  string
	rel  string
	id   string
	path string
}

// Crawl walks root breadth-first and returns a snapshot of every folder and
// file beneath it. The root itself is recorded as a folder named after its
// base name, and record paths start with that name. Unreadable folders are
// logged and skipped.
func Crawl(ctx context.Context, root string, opts CrawlOptions) (*Snapshot, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("reading root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", abs)
	}

	started := time.Now()
	rootName := filepath.Base(abs)
	rootID := RecordID(".")
	rootMod := info.ModTime()
	records := []FileRecord{{
		ID:           rootID,
		Name:         rootName,
		Path:         rootName,
		Kind:         Folder,
		ModifiedTime: &rootMod,
		MimeType:     FolderMimeType,
	}}

	queue := []crawlItem{{dir: abs, rel: ".", id: rootID, path: rootName}}
	for visited := 0; len(queue) > 0; visited++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		node := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(node.dir)
		if err != nil {
			logger.Warnf("listing %s: %v", node.dir, err)
			continue
		}
		for _, e := range entries {
			if excluded(e.Name(), opts.Exclude) {
				continue
			}
			fi, err := e.Info()
			if err != nil {
				logger.Debugf("stat %s: %v", e.Name(), err)
				continue
			}
			rel := path.Join(filepath.ToSlash(node.rel), e.Name())
			mod := fi.ModTime()
			rec := FileRecord{
				ID:           RecordID(rel),
				Name:         e.Name(),
				Path:         node.path + "/" + e.Name(),
				ParentID:     node.id,
				ModifiedTime: &mod,
			}
			switch {
			case e.IsDir():
				rec.Kind = Folder
				rec.MimeType = FolderMimeType
				queue = append(queue, crawlItem{
					dir:  filepath.Join(node.dir, e.Name()),
					rel:  rel,
					id:   rec.ID,
					path: rec.Path,
				})
			case e.Type().IsRegular():
				rec.Kind = File
				rec.MimeType = mime.TypeByExtension(filepath.Ext(e.Name()))
			default:
				continue
			}
			records = append(records, rec)
		}

		if visited > 0 && visited%10 == 0 {
			logger.Debugf("scanned %d items (queue ~%d) in %s", len(records), len(queue), time.Since(started).Round(time.Millisecond))
		}
	}

	logger.Infof("crawled %d items under %s in %s", len(records), abs, time.Since(started).Round(time.Millisecond))
	return New(records, opts.Now()), nil
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

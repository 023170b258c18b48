package tablebase

import (
	"os"
	"strings"

	"github.com/hailam/tbprobe/internal/syzygy"
)

// FileStore scopes another store to the tables actually present on disk:
// availability, piece limit and table counts come from scanning a syzygy
// directory for .rtbw/.rtbz files, while the probe data itself flows
// through the inner store. This keeps the published limits honest when
// only part of a set has been downloaded.
type FileStore struct {
	inner   syzygy.Store
	wdl     map[syzygy.Material]bool
	dtz     map[syzygy.Material]bool
	largest int
}

// NewFileStore scans dir and returns a store restricted to its contents.
// An unreadable or empty directory yields a store with no coverage, not an
// error: a missing table set is an expected state.
func NewFileStore(dir string, inner syzygy.Store) *FileStore {
	fs := &FileStore{
		inner: inner,
		wdl:   make(map[syzygy.Material]bool),
		dtz:   make(map[syzygy.Material]bool),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fs
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		var m syzygy.Material
		switch {
		case strings.HasSuffix(name, ".rtbw"):
			m = syzygy.Material(strings.TrimSuffix(name, ".rtbw"))
			fs.wdl[m] = true
		case strings.HasSuffix(name, ".rtbz"):
			m = syzygy.Material(strings.TrimSuffix(name, ".rtbz"))
			fs.dtz[m] = true
		default:
			continue
		}
		if n := m.PieceCount(); n > fs.largest {
			fs.largest = n
		}
	}
	return fs
}

func (fs *FileStore) Largest() int {
	return fs.largest
}

func (fs *FileStore) TableCounts() (wdl, dtm, dtz int) {
	return len(fs.wdl), 0, len(fs.dtz)
}

func (fs *FileStore) HasWDL(m syzygy.Material) bool {
	return fs.wdl[m]
}

func (fs *FileStore) HasDTZ(m syzygy.Material) bool {
	return fs.dtz[m]
}

func (fs *FileStore) ProbeWDL(m syzygy.Material, p *syzygy.Pos) (syzygy.WDL, bool) {
	if !fs.wdl[m] {
		return 0, false
	}
	return fs.inner.ProbeWDL(m, p)
}

func (fs *FileStore) ProbeDTZ(m syzygy.Material, p *syzygy.Pos) (int, bool) {
	if !fs.dtz[m] {
		return 0, false
	}
	return fs.inner.ProbeDTZ(m, p)
}

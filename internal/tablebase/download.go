package tablebase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// SyzygyDownloader downloads Syzygy tablebase files from the Lichess CDN.
type SyzygyDownloader struct {
	CacheDir string // directory to cache files
	BaseURL  string // e.g. https://tablebase.lichess.ovh/tables/standard/
	Client   *http.Client
}

// NewSyzygyDownloader creates a new downloader with default settings.
func NewSyzygyDownloader(cacheDir string) *SyzygyDownloader {
	return &SyzygyDownloader{
		CacheDir: cacheDir,
		BaseURL:  "https://tablebase.lichess.ovh/tables/standard/",
		Client:   &http.Client{Timeout: 5 * time.Minute},
	}
}

// EnsureCacheDir creates the cache directory if it doesn't exist.
func (d *SyzygyDownloader) EnsureCacheDir() error {
	return os.MkdirAll(d.CacheDir, 0755)
}

// pieceLetters orders the non-king pieces strongest first, the order table
// names are written in.
const pieceLetters = "QRBNP"

// TableNames generates every table signature from 3 pieces up to
// maxPieces, stronger side first, e.g. "KQvK", "KRPvKR". The 5-piece set
// alone is 145 names.
func TableNames(maxPieces int) []string {
	halves := map[int][]string{}
	var build func(prefix string, minIdx, left int)
	build = func(prefix string, minIdx, left int) {
		halves[len(prefix)] = append(halves[len(prefix)], "K"+prefix)
		if left == 0 {
			return
		}
		for i := minIdx; i < len(pieceLetters); i++ {
			build(prefix+string(pieceLetters[i]), i, left-1)
		}
	}
	build("", 0, maxPieces-2)

	var names []string
	for n := 3; n <= maxPieces; n++ {
		for extraA := n - 2; extraA >= 0; extraA-- {
			for _, a := range halves[extraA] {
				for _, b := range halves[n-2-extraA] {
					if a == "K" && b == "K" {
						continue // two bare kings need no table
					}
					if halfOutranks(b, a) {
						continue // the mirrored name covers it
					}
					names = append(names, a+"v"+b)
				}
			}
		}
	}
	return names
}

// halfOutranks reports whether half a outranks half b: more pieces first,
// then stronger pieces.
func halfOutranks(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	const order = "KQRBNP"
	for i := 0; i < len(a); i++ {
		ai := strings.IndexByte(order, a[i])
		bi := strings.IndexByte(order, b[i])
		if ai != bi {
			return ai < bi
		}
	}
	return false
}

// DownloadProgress tracks download progress.
type DownloadProgress struct {
	File          string
	BytesReceived int64
	TotalBytes    int64
	Done          bool
	Error         error
}

// HasFile checks if both halves of a table are already downloaded.
func (d *SyzygyDownloader) HasFile(name string) bool {
	wdlPath := filepath.Join(d.CacheDir, name+".rtbw")
	dtzPath := filepath.Join(d.CacheDir, name+".rtbz")

	_, wdlErr := os.Stat(wdlPath)
	_, dtzErr := os.Stat(dtzPath)

	return wdlErr == nil && dtzErr == nil
}

// DownloadFile downloads a single table (both the WDL and DTZ files).
func (d *SyzygyDownloader) DownloadFile(ctx context.Context, name string, progress chan<- DownloadProgress) error {
	if err := d.EnsureCacheDir(); err != nil {
		return err
	}

	wdlURL := d.BaseURL + "wdl/" + name + ".rtbw"
	wdlPath := filepath.Join(d.CacheDir, name+".rtbw")
	if err := d.downloadSingleFile(ctx, wdlURL, wdlPath, name+".rtbw", progress); err != nil {
		return fmt.Errorf("downloading WDL: %w", err)
	}

	dtzURL := d.BaseURL + "dtz/" + name + ".rtbz"
	dtzPath := filepath.Join(d.CacheDir, name+".rtbz")
	if err := d.downloadSingleFile(ctx, dtzURL, dtzPath, name+".rtbz", progress); err != nil {
		return fmt.Errorf("downloading DTZ: %w", err)
	}

	return nil
}

func (d *SyzygyDownloader) downloadSingleFile(ctx context.Context, url, path, name string, progress chan<- DownloadProgress) error {
	if _, err := os.Stat(path); err == nil {
		if progress != nil {
			progress <- DownloadProgress{File: name, Done: true}
		}
		return nil
	}

	// Download into a temporary file so a partial table never looks
	// complete on disk.
	tmpPath := path + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	defer out.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		os.Remove(tmpPath)
		return err
	}
	resp, err := d.Client.Do(req)
	if err != nil {
		os.Remove(tmpPath)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		os.Remove(tmpPath)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var written int64
	buf := make([]byte, 32*1024)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				os.Remove(tmpPath)
				return werr
			}
			written += int64(n)
			if progress != nil {
				progress <- DownloadProgress{
					File:          name,
					BytesReceived: written,
					TotalBytes:    resp.ContentLength,
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			os.Remove(tmpPath)
			return err
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if progress != nil {
		progress <- DownloadProgress{File: name, Done: true}
	}
	return nil
}

// DownloadAll downloads every table up to maxPieces, a few files at a
// time. The first failure cancels the remaining downloads.
func (d *SyzygyDownloader) DownloadAll(ctx context.Context, maxPieces, concurrency int, progress chan<- DownloadProgress) error {
	if concurrency < 1 {
		concurrency = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, name := range TableNames(maxPieces) {
		if d.HasFile(name) {
			continue
		}
		g.Go(func() error {
			if err := d.DownloadFile(ctx, name, progress); err != nil {
				return fmt.Errorf("downloading %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// GetAvailableFiles returns the tables present in the cache with both
// halves on disk.
func (d *SyzygyDownloader) GetAvailableFiles() []string {
	var files []string
	entries, err := os.ReadDir(d.CacheDir)
	if err != nil {
		return files
	}

	seen := make(map[string]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".rtbw") {
			seen[strings.TrimSuffix(name, ".rtbw")]++
		} else if strings.HasSuffix(name, ".rtbz") {
			seen[strings.TrimSuffix(name, ".rtbz")]++
		}
	}

	for base, count := range seen {
		if count >= 2 {
			files = append(files, base)
		}
	}

	sort.Strings(files)
	return files
}

// MaxPiecesAvailable returns the maximum piece count available in cache.
func (d *SyzygyDownloader) MaxPiecesAvailable() int {
	maxPieces := 0
	for _, f := range d.GetAvailableFiles() {
		if pieces := countPiecesFromName(f); pieces > maxPieces {
			maxPieces = pieces
		}
	}
	return maxPieces
}

// countPiecesFromName counts pieces in a table name like "KQRvKR".
func countPiecesFromName(name string) int {
	count := 0
	for _, c := range strings.ToUpper(name) {
		switch c {
		case 'K', 'Q', 'R', 'B', 'N', 'P':
			count++
		}
	}
	return count
}

// FormatBytes formats bytes to a human readable string.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

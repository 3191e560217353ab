//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// coverStems lists album art base names in priority order.
var coverStems = []string{"cover", "folder", "album", "front"}

var imageExts = []string{".jpg", ".jpeg", ".png"}

// FindAlbumArt looks for album art next to the track. Names are matched
// case-insensitively; a folder holding a single image uses it whatever
// its name. Returns "" when nothing fits.
func FindAlbumArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var images []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if slices.Contains(imageExts, ext) {
			images = append(images, e.Name())
		}
	}

	best, bestRank := "", len(coverStems)
	for _, name := range images {
		stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
		if rank := slices.Index(coverStems, stem); rank >= 0 && rank < bestRank {
			best, bestRank = name, rank
		}
	}
	if best == "" && len(images) == 1 {
		best = images[0]
	}
	if best == "" {
		return ""
	}
	return filepath.Join(dir, best)
}

package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"
)

const registerBatchSize = 500

// Registrar records newly discovered tracks. Known tracks keep their score.
type Registrar interface {
	Register(ids ...string) (int, error)
}

// ScanProgress reports the progress of a scan.
type ScanProgress struct {
	Phase       string // "scanning", "registering", "done"
	Current     int
	Total       int
	CurrentFile string
}

// ScanResult summarizes a completed scan.
type ScanResult struct {
	Found    int
	Added    int
	BySource map[string]int // files found per source
}

// Scanner walks source folders and registers the audio files it finds.
type Scanner struct {
	store    Registrar
	accept   func(path string) bool
	logger   *zap.Logger
	progress func(ScanProgress)
}

// NewScanner creates a scanner registering into store.
func NewScanner(store Registrar, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		store:  store,
		accept: IsAudio,
		logger: logger,
	}
}

// SetFilter replaces the audio file test.
func (s *Scanner) SetFilter(accept func(path string) bool) {
	s.accept = accept
}

// OnProgress sets a progress callback.
func (s *Scanner) OnProgress(fn func(ScanProgress)) {
	s.progress = fn
}

func (s *Scanner) report(p ScanProgress) {
	if s.progress != nil {
		s.progress(p)
	}
}

// Discover walks sources and returns the absolute paths of accepted files,
// sorted. Unreadable entries are skipped; a missing source is logged.
func (s *Scanner) Discover(ctx context.Context, sources []string) ([]string, map[string]int, error) {
	var files []string
	bySource := make(map[string]int, len(sources))

	for _, src := range sources {
		root, err := filepath.Abs(src)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve source %s: %w", src, err)
		}
		if _, err := os.Stat(root); err != nil {
			s.logger.Warn("skipping library source", zap.String("source", root), zap.Error(err))
			continue
		}

		err = filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if walkErr != nil {
				return nil //nolint:nilerr // keep scanning the rest of the tree
			}
			if d.IsDir() || !s.accept(path) {
				return nil
			}
			files = append(files, path)
			bySource[root]++
			if len(files)%100 == 0 {
				s.report(ScanProgress{Phase: "scanning", Current: len(files), CurrentFile: path})
			}
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
	}

	slices.Sort(files)
	files = slices.Compact(files)
	return files, bySource, nil
}

// Scan discovers audio files under sources and registers them with the
// default score. Existing tracks are left untouched.
func (s *Scanner) Scan(ctx context.Context, sources []string) (ScanResult, error) {
	s.report(ScanProgress{Phase: "scanning"})
	files, bySource, err := s.Discover(ctx, sources)
	if err != nil {
		return ScanResult{}, err
	}

	res := ScanResult{Found: len(files), BySource: bySource}
	done := 0
	for batch := range slices.Chunk(files, registerBatchSize) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		added, err := s.store.Register(batch...)
		if err != nil {
			return res, fmt.Errorf("register tracks: %w", err)
		}
		res.Added += added
		done += len(batch)
		s.report(ScanProgress{Phase: "registering", Current: done, Total: len(files)})
	}

	s.logger.Info("library scanned",
		zap.Int("found", res.Found),
		zap.Int("added", res.Added),
		zap.Strings("sources", sources),
	)
	s.report(ScanProgress{Phase: "done", Current: len(files), Total: len(files)})
	return res, nil
}

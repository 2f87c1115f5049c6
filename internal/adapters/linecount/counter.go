package linecount

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"tally/internal/domain"
	"tally/internal/logging"
	"tally/internal/ports"
)

// skippedDirs are never descended into
var skippedDirs = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// Counter implements ports.StatsEngine by walking the filesystem and
// classifying lines as code, comment or blank
type Counter struct {
	excludes []string
	workers  int
}

// Verify interface compliance at compile time
var _ ports.StatsEngine = (*Counter)(nil)

// NewCounter creates a Counter. Excludes are doublestar patterns matched
// against slash-separated paths relative to each input root.
func NewCounter(excludes []string) (*Counter, error) {
	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return &Counter{
		excludes: excludes,
		workers:  runtime.NumCPU(),
	}, nil
}

type countJob struct {
	def  languageDef
	path string
}

// Count walks every path and returns per-language totals
func (c *Counter) Count(ctx context.Context, paths []string) (domain.Languages, error) {
	var jobs []countJob
	for _, root := range paths {
		found, err := c.collect(root)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, found...)
	}
	logging.Logger.Debug("Counting files", "files", len(jobs), "roots", len(paths))

	var (
		mu     sync.Mutex
		result = domain.Languages{}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			counts, err := countFile(job.path, job.def)
			if err != nil {
				// Unreadable files are skipped, not fatal
				logging.Logger.Warn("Skipping unreadable file", "path", job.path, "error", err)
				return nil
			}
			mu.Lock()
			cur := result[job.def.name]
			cur.Add(counts)
			result[job.def.name] = cur
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// collect finds countable files under root (root may itself be a file)
func (c *Counter) collect(root string) ([]countJob, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		if def, ok := detect(root); ok {
			return []countJob{{def: def, path: root}}, nil
		}
		return nil, nil
	}

	var jobs []countJob
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Logger.Warn("Walk error", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != root && (skippedDirs[d.Name()] || c.excluded(rel)) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || c.excluded(rel) {
			return nil
		}
		if def, ok := detect(path); ok {
			jobs = append(jobs, countJob{def: def, path: path})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return jobs, nil
}

func (c *Counter) excluded(rel string) bool {
	for _, pattern := range c.excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// countFile classifies each line of path. Lines have no length limit so
// minified sources are counted like any other file.
func countFile(path string, def languageDef) (domain.Language, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Language{}, err
	}
	defer f.Close()

	counts := domain.Language{Files: 1}
	inBlock := false

	r := bufio.NewReaderSize(f, 64*1024)
	for {
		raw, readErr := r.ReadString('\n')
		if raw != "" {
			inBlock = classifyLine(&counts, strings.TrimSpace(raw), def, inBlock)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return domain.Language{}, readErr
		}
	}
	return counts, nil
}

// classifyLine adds one trimmed line to counts and returns whether a block
// comment is still open after it
func classifyLine(counts *domain.Language, line string, def languageDef, inBlock bool) bool {
	switch {
	case inBlock:
		counts.Comments++
		return !strings.Contains(line, def.blockEnd)
	case line == "":
		counts.Blanks++
	case def.blockStart != "" && strings.HasPrefix(line, def.blockStart):
		counts.Comments++
		return !strings.Contains(line[len(def.blockStart):], def.blockEnd)
	case hasAnyPrefix(line, def.lineComments):
		counts.Comments++
	default:
		counts.Code++
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

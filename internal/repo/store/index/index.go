// Package index persists the ordered set of paths under version control.
package index

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/keshon/svcs/internal/fs"
	"github.com/keshon/svcs/internal/util"
)

var ErrInvalidPath = errors.New("invalid path")

// Status is the outcome of an Add.
type Status int

const (
	Tracked Status = iota
	AlreadyTracked
	NotFound
)

func (s Status) String() string {
	switch s {
	case Tracked:
		return "tracked"
	case AlreadyTracked:
		return "already tracked"
	case NotFound:
		return "not found"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// AddResult reports what Add did with a path.
type AddResult struct {
	Path   string
	Status Status
}

// Index is the tracked-file record: one slash-separated path per line, in
// order of first addition.
type Index struct {
	File           string
	WorkingTreeDir string
	FS             fs.FS
	Logger         *slog.Logger

	excluded string // storage root relative to the working tree
}

// New creates an Index stored at file. Paths under repoDir are never tracked.
func New(file, workDir, repoDir string, fsys fs.FS, log *slog.Logger) *Index {
	ix := &Index{File: file, WorkingTreeDir: workDir, FS: fsys, Logger: log}
	if rel, err := filepath.Rel(workDir, repoDir); err == nil && !strings.HasPrefix(rel, "..") {
		ix.excluded = filepath.ToSlash(rel)
	}
	return ix
}

// Normalize turns a user-supplied path into its index form.
func (ix *Index) Normalize(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) {
		base, err := filepath.Abs(ix.WorkingTreeDir)
		if err != nil {
			return "", fmt.Errorf("resolve working tree: %w", err)
		}
		rel, err := filepath.Rel(base, clean)
		if err != nil {
			return "", fmt.Errorf("%w: %q is outside the working tree", ErrInvalidPath, path)
		}
		clean = rel
	}

	clean = filepath.ToSlash(clean)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q is outside the working tree", ErrInvalidPath, path)
	}
	if ix.excluded != "" && (clean == ix.excluded || strings.HasPrefix(clean, ix.excluded+"/")) {
		return "", fmt.Errorf("%w: %q is inside the repository storage", ErrInvalidPath, path)
	}
	return clean, nil
}

// Add tracks path. A path missing from disk yields NotFound and leaves the
// index untouched; an already tracked path yields AlreadyTracked.
func (ix *Index) Add(path string) (AddResult, error) {
	rel, err := ix.Normalize(path)
	if err != nil {
		return AddResult{Path: path}, err
	}

	fi, err := ix.FS.Stat(filepath.Join(ix.WorkingTreeDir, filepath.FromSlash(rel)))
	if err != nil {
		if ix.FS.IsNotExist(err) {
			return AddResult{Path: rel, Status: NotFound}, nil
		}
		return AddResult{Path: rel}, fmt.Errorf("stat %q: %w", rel, err)
	}
	if fi.IsDir() {
		return AddResult{Path: rel}, fmt.Errorf("%w: %q is a directory", ErrInvalidPath, rel)
	}

	paths, err := ix.List()
	if err != nil {
		return AddResult{Path: rel}, err
	}
	for _, p := range paths {
		if p == rel {
			return AddResult{Path: rel, Status: AlreadyTracked}, nil
		}
	}

	paths = append(paths, rel)
	if err := ix.save(paths); err != nil {
		return AddResult{Path: rel}, err
	}

	ix.Logger.Debug("path tracked", "path", rel, "tracked", len(paths))
	return AddResult{Path: rel, Status: Tracked}, nil
}

// List returns tracked paths in insertion order. A missing record is an
// empty index. Duplicate lines keep their first position.
func (ix *Index) List() ([]string, error) {
	data, err := ix.FS.ReadFile(ix.File)
	if err != nil {
		if ix.FS.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read index: %w", err)
	}

	paths := []string{}
	seen := make(map[string]bool)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		paths = append(paths, line)
	}
	return paths, nil
}

func (ix *Index) save(paths []string) error {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	if err := util.WriteFileAtomic(ix.FS, ix.File, []byte(b.String())); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

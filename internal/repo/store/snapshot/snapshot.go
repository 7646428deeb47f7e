// Package snapshot stores immutable full copies of the tracked files, keyed
// by the fingerprint of their concatenated content.
package snapshot

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/keshon/svcs/internal/fs"
	"github.com/keshon/svcs/internal/hash"
)

var (
	ErrNotFound      = errors.New("snapshot not found")
	ErrAlreadyExists = errors.New("snapshot already exists")
	ErrAmbiguous     = errors.New("ambiguous snapshot prefix")
	ErrMissingFile   = errors.New("tracked file is missing")
)

// MinPrefix is the shortest fingerprint prefix Resolve will expand.
const MinPrefix = 4

const (
	manifestExt   = ".yaml"
	stagingPrefix = ".staging-"
)

// File is one tracked file inside a snapshot.
type File struct {
	Path string
	Data []byte
}

// Snapshot is the content of every tracked file at one commit.
// Manifest is nil for snapshots written without one.
type Snapshot struct {
	Fingerprint string
	Files       []File
	Manifest    *Manifest
}

// Manifest is the sidecar record written next to each snapshot directory.
type Manifest struct {
	Fingerprint string         `yaml:"fingerprint"`
	Hash        string         `yaml:"hash"`
	Author      string         `yaml:"author,omitempty"`
	Created     time.Time      `yaml:"created"`
	Files       []ManifestFile `yaml:"files"`
}

type ManifestFile struct {
	Path string `yaml:"path"`
	Size int64  `yaml:"size"`
}

// SnapshotContext handles snapshot persistence under Root (<repo>/commits).
type SnapshotContext struct {
	Root           string
	WorkingTreeDir string
	FS             fs.FS
	Hasher         hash.Hasher
	Logger         *slog.Logger
	Progress       io.Writer // spinner output; nil disables it
}

// NewSnapshotContext creates a new SnapshotContext.
func NewSnapshotContext(root, workDir string, fsys fs.FS, h hash.Hasher, log *slog.Logger) *SnapshotContext {
	return &SnapshotContext{Root: root, WorkingTreeDir: workDir, FS: fsys, Hasher: h, Logger: log}
}

func (sc *SnapshotContext) dir(fp string) string { return filepath.Join(sc.Root, fp) }
func (sc *SnapshotContext) manifestPath(fp string) string {
	return filepath.Join(sc.Root, fp+manifestExt)
}
func (sc *SnapshotContext) workPath(rel string) string {
	return filepath.Join(sc.WorkingTreeDir, filepath.FromSlash(rel))
}

// validID rejects ids that could address anything but a direct child of Root.
func validID(fp string) bool {
	return fp != "" && fp != "." && fp != ".." && filepath.Base(fp) == fp && fp[0] != '.'
}

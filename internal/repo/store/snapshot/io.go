package snapshot

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/keshon/svcs/internal/progress"
	"github.com/keshon/svcs/internal/util"
)

// Exists reports whether a snapshot with this fingerprint was stored.
func (sc *SnapshotContext) Exists(fp string) bool {
	return validID(fp) && sc.FS.IsDir(sc.dir(fp))
}

// Store copies every tracked file verbatim into a new snapshot keyed by fp.
// Files are staged in a hidden directory, the manifest is written, and the
// staging directory is renamed into place last, so a snapshot directory is
// either complete or absent. A failed Store removes everything it wrote.
// Storing an existing fingerprint fails with ErrAlreadyExists; deduplication
// is the caller's decision.
func (sc *SnapshotContext) Store(fp string, paths []string, author string) (err error) {
	if !validID(fp) {
		return fmt.Errorf("invalid fingerprint %q", fp)
	}
	if sc.Exists(fp) {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, fp)
	}

	// leftovers of an interrupted Store
	staging := filepath.Join(sc.Root, stagingPrefix+fp)
	if err := sc.FS.RemoveAll(staging); err != nil {
		return fmt.Errorf("clear staging dir: %w", err)
	}
	if err := sc.FS.MkdirAll(staging, 0o755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}

	manifestWritten := false
	defer func() {
		if err == nil {
			return
		}
		if rerr := sc.FS.RemoveAll(staging); rerr != nil {
			sc.Logger.Warn("failed to remove staging dir", "path", staging, "error", rerr)
		}
		if manifestWritten {
			if rerr := sc.FS.Remove(sc.manifestPath(fp)); rerr != nil && !sc.FS.IsNotExist(rerr) {
				sc.Logger.Warn("failed to remove manifest", "fingerprint", fp, "error", rerr)
			}
		}
	}()

	bar := progress.New(sc.Progress, len(paths), "Storing files")
	defer bar.Finish()

	m := Manifest{
		Fingerprint: fp,
		Hash:        sc.Hasher.Name(),
		Author:      author,
		Created:     time.Now().UTC().Truncate(time.Second),
		Files:       make([]ManifestFile, 0, len(paths)),
	}
	for _, p := range paths {
		data, err := sc.FS.ReadFile(sc.workPath(p))
		if err != nil {
			if sc.FS.IsNotExist(err) {
				return fmt.Errorf("%w: %q: %w", ErrMissingFile, p, err)
			}
			return fmt.Errorf("read %q: %w", p, err)
		}
		if err := util.WriteFileAtomic(sc.FS, filepath.Join(staging, filepath.FromSlash(p)), data); err != nil {
			return fmt.Errorf("copy %q: %w", p, err)
		}
		m.Files = append(m.Files, ManifestFile{Path: p, Size: int64(len(data))})
		bar.Add(len(data))
	}

	raw, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := util.WriteFileAtomic(sc.FS, sc.manifestPath(fp), raw); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	manifestWritten = true

	if err := sc.FS.Rename(staging, sc.dir(fp)); err != nil {
		return fmt.Errorf("publish snapshot %s: %w", fp, err)
	}

	sc.Logger.Debug("snapshot stored", "fingerprint", fp, "files", len(paths))
	return nil
}

// Retrieve loads a stored snapshot in manifest order. Snapshots without a
// manifest are read by walking their directory in lexical order.
func (sc *SnapshotContext) Retrieve(fp string) (*Snapshot, error) {
	if !sc.Exists(fp) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, fp)
	}

	m, err := sc.loadManifest(fp)
	if err != nil {
		return nil, err
	}

	var paths []string
	if m != nil {
		for _, f := range m.Files {
			paths = append(paths, f.Path)
		}
	} else {
		if paths, err = sc.walk(sc.dir(fp), ""); err != nil {
			return nil, err
		}
	}

	snap := &Snapshot{Fingerprint: fp, Manifest: m, Files: make([]File, 0, len(paths))}
	for _, p := range paths {
		data, err := sc.FS.ReadFile(filepath.Join(sc.dir(fp), filepath.FromSlash(p)))
		if err != nil {
			return nil, fmt.Errorf("read %q from snapshot %s: %w", p, fp, err)
		}
		snap.Files = append(snap.Files, File{Path: p, Data: data})
	}
	return snap, nil
}

func (sc *SnapshotContext) loadManifest(fp string) (*Manifest, error) {
	raw, err := sc.FS.ReadFile(sc.manifestPath(fp))
	if err != nil {
		if sc.FS.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read manifest %s: %w", fp, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", fp, err)
	}
	return &m, nil
}

func (sc *SnapshotContext) walk(dir, rel string) ([]string, error) {
	entries, err := sc.FS.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []string
	for _, e := range entries {
		name := path.Join(rel, e.Name())
		if !e.IsDir() {
			out = append(out, name)
			continue
		}
		sub, err := sc.walk(filepath.Join(dir, e.Name()), name)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// List returns the fingerprints of all stored snapshots, sorted.
func (sc *SnapshotContext) List() ([]string, error) {
	entries, err := sc.FS.ReadDir(sc.Root)
	if err != nil {
		if sc.FS.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	var fps []string
	for _, e := range entries {
		if e.IsDir() && validID(e.Name()) {
			fps = append(fps, e.Name())
		}
	}
	sort.Strings(fps)
	return fps, nil
}

// Resolve expands id to a stored fingerprint. An exact match wins; otherwise
// a prefix of at least MinPrefix characters must match exactly one snapshot.
func (sc *SnapshotContext) Resolve(id string) (string, error) {
	if sc.Exists(id) {
		return id, nil
	}
	if len(id) < MinPrefix || !validID(id) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	fps, err := sc.List()
	if err != nil {
		return "", err
	}
	var matches []string
	for _, fp := range fps {
		if strings.HasPrefix(fp, id) {
			matches = append(matches, fp)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d snapshots", ErrAmbiguous, id, len(matches))
	}
}

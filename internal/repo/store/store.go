// Package store composes the tracked-file index and the snapshot store over
// one filesystem.
package store

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/keshon/svcs/internal/config"
	"github.com/keshon/svcs/internal/fs"
	"github.com/keshon/svcs/internal/hash"
	"github.com/keshon/svcs/internal/logger"
	"github.com/keshon/svcs/internal/repo/store/index"
	"github.com/keshon/svcs/internal/repo/store/snapshot"
)

// StoreContext is the high-level store abstraction that unifies all subsystems.
type StoreContext struct {
	Config      *config.RepoConfig
	FS          fs.FS
	Index       *index.Index
	SnapshotCtx *snapshot.SnapshotContext
}

// NewStoreOptions allows optional dependency injection.
type NewStoreOptions struct {
	FS       fs.FS
	Hasher   hash.Hasher
	Logger   *slog.Logger
	Progress io.Writer
}

// NewStoreDefault creates a store on the real filesystem with the default hash.
func NewStoreDefault(cfg *config.RepoConfig) (*StoreContext, error) {
	return NewStore(cfg, nil)
}

// NewStore creates a store, filling unset options with defaults, and makes
// sure the on-disk layout exists.
func NewStore(cfg *config.RepoConfig, opts *NewStoreOptions) (*StoreContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil RepoConfig provided")
	}
	if opts == nil {
		opts = &NewStoreOptions{}
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = fs.NewOSFS()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	h := opts.Hasher
	if h == nil {
		var err error
		if h, err = hash.New(hash.Default); err != nil {
			return nil, err
		}
	}

	if err := createStoreStructure(cfg, fsys); err != nil {
		return nil, err
	}

	sc := snapshot.NewSnapshotContext(cfg.CommitsDir(), cfg.WorkingTreeDir, fsys, h, log)
	sc.Progress = opts.Progress

	return &StoreContext{
		Config:      cfg,
		FS:          fsys,
		Index:       index.New(cfg.IndexFile(), cfg.WorkingTreeDir, cfg.RepoDir, fsys, log),
		SnapshotCtx: sc,
	}, nil
}

// createStoreStructure builds the commits dir and an empty index if missing.
func createStoreStructure(cfg *config.RepoConfig, fsys fs.FS) error {
	if err := fsys.MkdirAll(cfg.CommitsDir(), 0o755); err != nil {
		return fmt.Errorf("create store dir %q: %w", cfg.CommitsDir(), err)
	}
	if !fsys.Exists(cfg.IndexFile()) {
		if err := fsys.WriteFile(cfg.IndexFile(), nil, 0o644); err != nil {
			return fmt.Errorf("create index %q: %w", cfg.IndexFile(), err)
		}
	}
	return nil
}

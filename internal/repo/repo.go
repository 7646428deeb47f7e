// Package repo wires the index, the snapshot store and the metadata records
// into one repository and implements the commit and checkout workflows.
package repo

import (
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/keshon/svcs/internal/config"
	"github.com/keshon/svcs/internal/fs"
	"github.com/keshon/svcs/internal/hash"
	"github.com/keshon/svcs/internal/logger"
	"github.com/keshon/svcs/internal/repo/meta"
	"github.com/keshon/svcs/internal/repo/store"
	"github.com/keshon/svcs/internal/repo/store/index"
)

// Repository represents an opened repository.
type Repository struct {
	Config *config.RepoConfig
	Store  *store.StoreContext
	Meta   *meta.MetaContext
	Logger *slog.Logger

	progress io.Writer
}

type options struct {
	fs       fs.FS
	hasher   hash.Hasher
	logger   *slog.Logger
	progress io.Writer
}

// Option customises Open.
type Option func(*options)

// WithFS runs the repository on fsys instead of the real disk.
func WithFS(fsys fs.FS) Option { return func(o *options) { o.fs = fsys } }

// WithHasher selects the fingerprint algorithm for new commits.
func WithHasher(h hash.Hasher) Option { return func(o *options) { o.hasher = h } }

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithProgress enables progress output for commit and checkout.
func WithProgress(w io.Writer) Option { return func(o *options) { o.progress = w } }

// Open bootstraps the storage root described by cfg, creating missing
// directories and empty records, and returns the wired repository.
func Open(cfg *config.RepoConfig, opts ...Option) (*Repository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil RepoConfig provided")
	}

	o := options{fs: fs.NewOSFS(), logger: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.hasher == nil {
		h, err := hash.New(hash.Default)
		if err != nil {
			return nil, err
		}
		o.hasher = h
	}

	mc, err := meta.NewMeta(cfg, o.fs, o.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init metadata: %w", err)
	}
	st, err := store.NewStore(cfg, &store.NewStoreOptions{
		FS:       o.fs,
		Hasher:   o.hasher,
		Logger:   o.logger,
		Progress: o.progress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	return &Repository{
		Config:   cfg,
		Store:    st,
		Meta:     mc,
		Logger:   o.logger,
		progress: o.progress,
	}, nil
}

// Username returns the configured author name, "" when unset.
func (r *Repository) Username() (string, error) { return r.Meta.Username() }

// SetUsername replaces the configured author name.
func (r *Repository) SetUsername(name string) error { return r.Meta.SetUsername(name) }

// Track adds path to the index.
func (r *Repository) Track(path string) (index.AddResult, error) { return r.Store.Index.Add(path) }

// Tracked lists the tracked paths in insertion order.
func (r *Repository) Tracked() ([]string, error) { return r.Store.Index.List() }

// Log yields the commit history newest first.
func (r *Repository) Log() iter.Seq2[meta.LogEntry, error] { return r.Meta.All() }

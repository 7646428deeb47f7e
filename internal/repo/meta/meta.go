// Package meta holds the repository metadata records: the commit log and the
// username configuration.
package meta

import (
	"fmt"
	"log/slog"

	"github.com/keshon/svcs/internal/config"
	"github.com/keshon/svcs/internal/fs"
)

// MetaContext reads and writes the metadata records of one repository.
type MetaContext struct {
	Config *config.RepoConfig
	FS     fs.FS
	Logger *slog.Logger
}

// NewMeta ensures the metadata records exist under cfg.RepoDir, creating
// empty ones when missing.
func NewMeta(cfg *config.RepoConfig, fsys fs.FS, log *slog.Logger) (*MetaContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil RepoConfig provided")
	}

	mc := &MetaContext{Config: cfg, FS: fsys, Logger: log}
	if err := mc.createMetaStructure(); err != nil {
		return nil, err
	}
	return mc, nil
}

// createMetaStructure creates the storage root and empty records.
func (mc *MetaContext) createMetaStructure() error {
	if err := mc.FS.MkdirAll(mc.Config.RepoDir, 0o755); err != nil {
		return fmt.Errorf("failed to create dir %q: %w", mc.Config.RepoDir, err)
	}
	for _, f := range []string{mc.Config.ConfigFile(), mc.Config.LogFile()} {
		if mc.FS.Exists(f) {
			continue
		}
		if err := mc.FS.WriteFile(f, nil, 0o644); err != nil {
			return fmt.Errorf("failed to create %q: %w", f, err)
		}
	}
	return nil
}

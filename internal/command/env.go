package command

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/keshon/svcs/internal/config"
	"github.com/keshon/svcs/internal/hash"
	"github.com/keshon/svcs/internal/logger"
	"github.com/keshon/svcs/internal/repo"
)

// Env is the process state shared by every command of one invocation.
type Env struct {
	Settings *config.Settings
	Logger   *slog.Logger
	WorkDir  string
	Stderr   io.Writer
}

type rootFlags struct {
	configPath string
	repoDir    string
	verbose    bool
}

// load resolves settings and the logger from the root flags.
func (e *Env) load(f *rootFlags) error {
	s, err := config.LoadSettings(f.configPath)
	if err != nil {
		return err
	}
	if f.repoDir != "" {
		s.RepoDir = f.repoDir
	}

	log, err := logger.New(e.Stderr, s.LogLevel, f.verbose)
	if err != nil {
		return err
	}

	e.Settings = s
	e.Logger = log
	e.Logger.Debug("settings loaded", "repo_dir", s.RepoDir, "hash", s.Hash, "lock", s.Lock)
	return nil
}

// RepoConfig returns the storage layout selected by the settings.
func (e *Env) RepoConfig() *config.RepoConfig {
	return config.NewRepoConfig(e.WorkDir, e.Settings.RepoDir)
}

// OpenRepo opens (and if needed bootstraps) the repository.
func (e *Env) OpenRepo() (*repo.Repository, error) {
	h, err := hash.New(e.Settings.Hash)
	if err != nil {
		return nil, err
	}

	opts := []repo.Option{repo.WithHasher(h), repo.WithLogger(e.Logger)}
	if e.Settings.Progress {
		opts = append(opts, repo.WithProgress(e.Stderr))
	}

	r, err := repo.Open(e.RepoConfig(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	return r, nil
}

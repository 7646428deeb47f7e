// Package config holds the on-disk layout of a repository and the process
// settings that select it.
package config

import "path/filepath"

const (
	DefaultRepoDir = "vcs"

	CommitsDir = "commits"
	ConfigFile = "config.txt"
	IndexFile  = "index.txt"
	LogFile    = "log.txt"
	LockFile   = ".lock"
)

// RepoConfig resolves every persisted record relative to one storage root.
type RepoConfig struct {
	WorkingTreeDir string // tracked paths are relative to this directory
	RepoDir        string // storage root, e.g. <work>/vcs
}

// NewRepoConfig builds a RepoConfig. A relative repoDir is resolved against
// workDir; an empty one falls back to DefaultRepoDir.
func NewRepoConfig(workDir, repoDir string) *RepoConfig {
	if workDir == "" {
		workDir = "."
	}
	if repoDir == "" {
		repoDir = DefaultRepoDir
	}
	if !filepath.IsAbs(repoDir) {
		repoDir = filepath.Join(workDir, repoDir)
	}
	return &RepoConfig{WorkingTreeDir: workDir, RepoDir: repoDir}
}

func (c *RepoConfig) CommitsDir() string { return filepath.Join(c.RepoDir, CommitsDir) }
func (c *RepoConfig) ConfigFile() string { return filepath.Join(c.RepoDir, ConfigFile) }
func (c *RepoConfig) IndexFile() string  { return filepath.Join(c.RepoDir, IndexFile) }
func (c *RepoConfig) LogFile() string    { return filepath.Join(c.RepoDir, LogFile) }
func (c *RepoConfig) LockFile() string   { return filepath.Join(c.RepoDir, LockFile) }

// WorkPath resolves a tracked path against the working tree.
func (c *RepoConfig) WorkPath(rel string) string {
	return filepath.Join(c.WorkingTreeDir, filepath.FromSlash(rel))
}

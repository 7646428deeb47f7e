package repo

import (
	"fmt"

	"github.com/keshon/svcs/internal/repo/meta"
)

// CommitResult reports what Commit did. Fingerprint is set for Committed and
// NothingToCommit.
type CommitResult struct {
	Status      Status
	Fingerprint string
}

// Commit snapshots the tracked files under message.
//
// The snapshot is stored before the log entry is appended, so the log never
// names a fingerprint that has no snapshot. A snapshot left behind by an
// interrupted commit is reused as is.
func (r *Repository) Commit(message string) (CommitResult, error) {
	if message == "" {
		return CommitResult{Status: EmptyMessage}, nil
	}

	paths, err := r.Tracked()
	if err != nil {
		return CommitResult{}, fmt.Errorf("failed to read index: %w", err)
	}

	sc := r.Store.SnapshotCtx
	fp, err := sc.ComputeFingerprint(paths)
	if err != nil {
		return CommitResult{}, fmt.Errorf("failed to fingerprint tracked files: %w", err)
	}

	last, err := r.Meta.LastFingerprint()
	if err != nil {
		return CommitResult{}, fmt.Errorf("failed to read log: %w", err)
	}
	if fp == last {
		r.Logger.Debug("nothing to commit", "fingerprint", fp)
		return CommitResult{Status: NothingToCommit, Fingerprint: fp}, nil
	}

	author, err := r.Username()
	if err != nil {
		return CommitResult{}, err
	}

	if sc.Exists(fp) {
		r.Logger.Debug("reusing stored snapshot", "fingerprint", fp)
	} else if err := sc.Store(fp, paths, author); err != nil {
		return CommitResult{}, fmt.Errorf("failed to store snapshot: %w", err)
	}

	if err := r.Meta.Append(meta.LogEntry{Fingerprint: fp, Author: author, Message: message}); err != nil {
		return CommitResult{}, fmt.Errorf("failed to record commit: %w", err)
	}

	r.Logger.Info("committed", "fingerprint", fp, "files", len(paths))
	return CommitResult{Status: Committed, Fingerprint: fp}, nil
}

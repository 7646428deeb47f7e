package repo

import (
	"errors"
	"fmt"

	"github.com/keshon/svcs/internal/progress"
	"github.com/keshon/svcs/internal/repo/store/snapshot"
	"github.com/keshon/svcs/internal/util"
)

// CheckoutResult reports what Checkout did. Files counts the files written.
type CheckoutResult struct {
	Status      Status
	Fingerprint string
	Files       int
}

// Checkout overwrites the working tree with the files of a stored snapshot.
// id may be a full fingerprint or a unique prefix of snapshot.MinPrefix
// characters or more.
//
// Files are written in snapshot order, each one atomically. The first write
// failure stops the checkout; files already written stay in place. Untracked
// files are never touched.
func (r *Repository) Checkout(id string) (CheckoutResult, error) {
	if id == "" {
		return CheckoutResult{Status: MissingID}, nil
	}

	sc := r.Store.SnapshotCtx
	fp, err := sc.Resolve(id)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) || errors.Is(err, snapshot.ErrAmbiguous) {
			r.Logger.Debug("checkout target not found", "id", id, "error", err)
			return CheckoutResult{Status: NotFound}, nil
		}
		return CheckoutResult{}, err
	}

	snap, err := sc.Retrieve(fp)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("failed to load snapshot %s: %w", fp, err)
	}

	bar := progress.New(r.progress, len(snap.Files), "Restoring files")
	defer bar.Finish()

	res := CheckoutResult{Status: Switched, Fingerprint: fp}
	for _, f := range snap.Files {
		if err := util.WriteFileAtomic(r.Store.FS, r.Config.WorkPath(f.Path), f.Data); err != nil {
			return res, fmt.Errorf("failed to restore %q after %d files: %w", f.Path, res.Files, err)
		}
		res.Files++
		bar.Add(len(f.Data))
	}

	r.Logger.Info("checked out", "fingerprint", fp, "files", res.Files)
	return res, nil
}

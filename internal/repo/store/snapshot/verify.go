package snapshot

import (
	"fmt"

	"github.com/keshon/svcs/internal/hash"
)

// Verify recomputes the fingerprint of a stored snapshot. It uses the
// algorithm recorded in the manifest, or the context's hasher when the
// snapshot has none.
func (sc *SnapshotContext) Verify(fp string) (bool, error) {
	snap, err := sc.Retrieve(fp)
	if err != nil {
		return false, err
	}
	return sc.VerifySnapshot(snap)
}

// VerifySnapshot is Verify for an already retrieved snapshot.
func (sc *SnapshotContext) VerifySnapshot(snap *Snapshot) (bool, error) {
	fp := snap.Fingerprint
	h := sc.Hasher
	var err error
	if snap.Manifest != nil && snap.Manifest.Hash != "" && snap.Manifest.Hash != h.Name() {
		if h, err = hash.New(snap.Manifest.Hash); err != nil {
			return false, fmt.Errorf("verify %s: %w", fp, err)
		}
	}

	d := h.New()
	for _, f := range snap.Files {
		if _, err := d.Write(f.Data); err != nil {
			return false, fmt.Errorf("verify %s: %w", fp, err)
		}
	}

	ok := d.Sum() == fp
	if !ok {
		sc.Logger.Warn("snapshot content does not match its fingerprint", "fingerprint", fp)
	}
	return ok, nil
}

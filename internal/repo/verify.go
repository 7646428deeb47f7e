package repo

import (
	"fmt"
)

// VerifyResult is the integrity check of one stored snapshot.
type VerifyResult struct {
	Fingerprint string
	OK          bool
	Files       int
	Bytes       uint64
}

// Verify recomputes the fingerprint of every stored snapshot.
func (r *Repository) Verify() ([]VerifyResult, error) {
	sc := r.Store.SnapshotCtx
	fps, err := sc.List()
	if err != nil {
		return nil, err
	}

	results := make([]VerifyResult, 0, len(fps))
	for _, fp := range fps {
		snap, err := sc.Retrieve(fp)
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot %s: %w", fp, err)
		}
		ok, err := sc.VerifySnapshot(snap)
		if err != nil {
			return nil, err
		}

		res := VerifyResult{Fingerprint: fp, OK: ok, Files: len(snap.Files)}
		for _, f := range snap.Files {
			res.Bytes += uint64(len(f.Data))
		}
		results = append(results, res)
	}
	return results, nil
}

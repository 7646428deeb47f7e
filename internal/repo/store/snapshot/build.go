package snapshot

import (
	"fmt"
	"io"
)

// ComputeFingerprint streams every tracked file, in index order and with no
// separators, through one digest. A missing file aborts with ErrMissingFile.
func (sc *SnapshotContext) ComputeFingerprint(paths []string) (string, error) {
	d := sc.Hasher.New()
	for _, p := range paths {
		if err := sc.copyInto(d, p); err != nil {
			return "", err
		}
	}
	return d.Sum(), nil
}

func (sc *SnapshotContext) copyInto(w io.Writer, rel string) error {
	f, err := sc.FS.Open(sc.workPath(rel))
	if err != nil {
		if sc.FS.IsNotExist(err) {
			return fmt.Errorf("%w: %q: %w", ErrMissingFile, rel, err)
		}
		return fmt.Errorf("open %q: %w", rel, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("read %q: %w", rel, err)
	}
	return nil
}

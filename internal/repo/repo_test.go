package repo_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/svcs/internal/config"
	"github.com/keshon/svcs/internal/fs"
	"github.com/keshon/svcs/internal/hash"
	"github.com/keshon/svcs/internal/repo"
	"github.com/keshon/svcs/internal/repo/meta"
	"github.com/keshon/svcs/internal/repo/store/index"
	"github.com/keshon/svcs/internal/repo/store/snapshot"
)

func newMemRepo(t *testing.T) (*repo.Repository, *fs.MemoryFS) {
	t.Helper()
	mem := fs.NewMemoryFS()
	r, err := repo.Open(config.NewRepoConfig(".", "vcs"), repo.WithFS(mem))
	require.NoError(t, err)
	return r, mem
}

func newDiskRepo(t *testing.T) (*repo.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	r, err := repo.Open(config.NewRepoConfig(dir, "vcs"))
	require.NoError(t, err)
	return r, dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestOpenBootstrapsLayout(t *testing.T) {
	_, mem := newMemRepo(t)
	assert.True(t, mem.IsDir("vcs/commits"))
	for _, f := range []string{"vcs/config.txt", "vcs/index.txt", "vcs/log.txt"} {
		assert.True(t, mem.Exists(f), f)
	}
}

func TestCommitAndCheckoutRoundTrip(t *testing.T) {
	r, dir := newDiskRepo(t)
	require.NoError(t, r.SetUsername("alice"))

	writeFile(t, dir, "a.txt", "hello")
	res, err := r.Track("a.txt")
	require.NoError(t, err)
	assert.Equal(t, index.Tracked, res.Status)

	first, err := r.Commit("first")
	require.NoError(t, err)
	require.Equal(t, repo.Committed, first.Status)

	writeFile(t, dir, "a.txt", "world")
	second, err := r.Commit("second")
	require.NoError(t, err)
	require.Equal(t, repo.Committed, second.Status)
	assert.NotEqual(t, first.Fingerprint, second.Fingerprint)

	co, err := r.Checkout(first.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, repo.CheckoutResult{Status: repo.Switched, Fingerprint: first.Fingerprint, Files: 1}, co)
	assert.Equal(t, "hello", readFile(t, dir, "a.txt"))

	var log []meta.LogEntry
	for e, err := range r.Log() {
		require.NoError(t, err)
		log = append(log, e)
	}
	assert.Equal(t, []meta.LogEntry{
		{Fingerprint: second.Fingerprint, Author: "alice", Message: "second"},
		{Fingerprint: first.Fingerprint, Author: "alice", Message: "first"},
	}, log)
}

func TestEmptyCommitOnlyOnce(t *testing.T) {
	r, _ := newMemRepo(t)

	res, err := r.Commit("empty")
	require.NoError(t, err)
	assert.Equal(t, repo.Committed, res.Status)
	assert.Equal(t, r.Store.SnapshotCtx.Hasher.Fingerprint(nil), res.Fingerprint)

	res, err = r.Commit("empty again")
	require.NoError(t, err)
	assert.Equal(t, repo.NothingToCommit, res.Status)

	entries, err := r.Meta.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCommitEmptyMessage(t *testing.T) {
	r, mem := newMemRepo(t)

	res, err := r.Commit("")
	require.NoError(t, err)
	assert.Equal(t, repo.EmptyMessage, res.Status)

	raw, err := mem.ReadFile("vcs/log.txt")
	require.NoError(t, err)
	assert.Empty(t, raw)
	fps, err := r.Store.SnapshotCtx.List()
	require.NoError(t, err)
	assert.Empty(t, fps)
}

func TestCommitUnchangedContent(t *testing.T) {
	r, mem := newMemRepo(t)
	require.NoError(t, mem.WriteFile("a.txt", []byte("x"), 0o644))
	_, err := r.Track("a.txt")
	require.NoError(t, err)

	first, err := r.Commit("one")
	require.NoError(t, err)
	res, err := r.Commit("two")
	require.NoError(t, err)
	assert.Equal(t, repo.CommitResult{Status: repo.NothingToCommit, Fingerprint: first.Fingerprint}, res)
}

func TestCommitRevertedContentReusesSnapshot(t *testing.T) {
	r, mem := newMemRepo(t)
	require.NoError(t, mem.WriteFile("a.txt", []byte("v1"), 0o644))
	_, err := r.Track("a.txt")
	require.NoError(t, err)

	v1, err := r.Commit("v1")
	require.NoError(t, err)
	require.NoError(t, mem.WriteFile("a.txt", []byte("v2"), 0o644))
	_, err = r.Commit("v2")
	require.NoError(t, err)

	require.NoError(t, mem.WriteFile("a.txt", []byte("v1"), 0o644))
	back, err := r.Commit("back to v1")
	require.NoError(t, err)
	assert.Equal(t, repo.CommitResult{Status: repo.Committed, Fingerprint: v1.Fingerprint}, back)

	fps, err := r.Store.SnapshotCtx.List()
	require.NoError(t, err)
	assert.Len(t, fps, 2)
}

func TestCommitReusesOrphanedSnapshot(t *testing.T) {
	r, mem := newMemRepo(t)
	require.NoError(t, mem.WriteFile("a.txt", []byte("crash"), 0o644))
	_, err := r.Track("a.txt")
	require.NoError(t, err)

	sc := r.Store.SnapshotCtx
	fp, err := sc.ComputeFingerprint([]string{"a.txt"})
	require.NoError(t, err)
	require.NoError(t, sc.Store(fp, []string{"a.txt"}, ""))

	res, err := r.Commit("recovered")
	require.NoError(t, err)
	assert.Equal(t, repo.CommitResult{Status: repo.Committed, Fingerprint: fp}, res)

	last, err := r.Meta.LastFingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp, last)
}

func TestCommitMissingTrackedFile(t *testing.T) {
	r, mem := newMemRepo(t)
	require.NoError(t, mem.WriteFile("a.txt", []byte("a"), 0o644))
	_, err := r.Track("a.txt")
	require.NoError(t, err)
	require.NoError(t, mem.Remove("a.txt"))

	_, err = r.Commit("broken")
	require.ErrorIs(t, err, snapshot.ErrMissingFile)

	entries, err := r.Meta.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTrackStatuses(t *testing.T) {
	r, mem := newMemRepo(t)
	require.NoError(t, mem.WriteFile("a.txt", []byte("a"), 0o644))

	res, err := r.Track("nope.txt")
	require.NoError(t, err)
	assert.Equal(t, index.NotFound, res.Status)

	_, err = r.Track("a.txt")
	require.NoError(t, err)
	res, err = r.Track("a.txt")
	require.NoError(t, err)
	assert.Equal(t, index.AlreadyTracked, res.Status)

	_, err = r.Track("vcs/log.txt")
	require.ErrorIs(t, err, index.ErrInvalidPath)

	tracked, err := r.Tracked()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, tracked)
}

func TestCheckoutStatuses(t *testing.T) {
	r, mem := newMemRepo(t)

	res, err := r.Checkout("")
	require.NoError(t, err)
	assert.Equal(t, repo.MissingID, res.Status)

	res, err = r.Checkout("0123456789")
	require.NoError(t, err)
	assert.Equal(t, repo.NotFound, res.Status)

	res, err = r.Checkout("../vcs")
	require.NoError(t, err)
	assert.Equal(t, repo.NotFound, res.Status)

	require.NoError(t, mem.WriteFile("a.txt", []byte("a"), 0o644))
	_, err = r.Track("a.txt")
	require.NoError(t, err)
	c, err := r.Commit("c")
	require.NoError(t, err)

	res, err = r.Checkout(c.Fingerprint[:8])
	require.NoError(t, err)
	assert.Equal(t, repo.Switched, res.Status)
	assert.Equal(t, c.Fingerprint, res.Fingerprint)
}

func TestCheckoutLeavesUntrackedFiles(t *testing.T) {
	r, mem := newMemRepo(t)
	require.NoError(t, mem.WriteFile("a.txt", []byte("a"), 0o644))
	_, err := r.Track("a.txt")
	require.NoError(t, err)
	c, err := r.Commit("c")
	require.NoError(t, err)

	require.NoError(t, mem.WriteFile("notes.txt", []byte("mine"), 0o644))
	require.NoError(t, mem.WriteFile("a.txt", []byte("changed"), 0o644))

	_, err = r.Checkout(c.Fingerprint)
	require.NoError(t, err)

	data, err := mem.ReadFile("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
	data, err = mem.ReadFile("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
}

func TestCheckoutRecreatesMissingDirs(t *testing.T) {
	r, dir := newDiskRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "pkg"), 0o755))
	writeFile(t, dir, "src/pkg/x.go", "package pkg")
	_, err := r.Track("src/pkg/x.go")
	require.NoError(t, err)
	c, err := r.Commit("c")
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(filepath.Join(dir, "src")))
	_, err = r.Checkout(c.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, "package pkg", readFile(t, dir, "src/pkg/x.go"))
}

func TestCheckoutStopsAtFirstFailure(t *testing.T) {
	r, dir := newDiskRepo(t)
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		writeFile(t, dir, name, "old "+name)
		_, err := r.Track(name)
		require.NoError(t, err)
	}
	c, err := r.Commit("c")
	require.NoError(t, err)
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		writeFile(t, dir, name, "new")
	}

	orig := fs.GetRename()
	t.Cleanup(func() { fs.SetRename(orig) })
	fs.SetRename(func(oldPath, newPath string) error {
		if filepath.Base(newPath) == "b.txt" {
			return errors.New("disk full")
		}
		return orig(oldPath, newPath)
	})

	res, err := r.Checkout(c.Fingerprint)
	require.Error(t, err)
	assert.Equal(t, 1, res.Files)
	assert.Equal(t, "old a.txt", readFile(t, dir, "a.txt"))
	assert.Equal(t, "new", readFile(t, dir, "b.txt"))
	assert.Equal(t, "new", readFile(t, dir, "c.txt"))
}

func TestSHA1LayoutMatchesLegacyFingerprint(t *testing.T) {
	mem := fs.NewMemoryFS()
	sha, err := hash.New(hash.SHA1)
	require.NoError(t, err)
	r, err := repo.Open(config.NewRepoConfig(".", "vcs"), repo.WithFS(mem), repo.WithHasher(sha))
	require.NoError(t, err)

	require.NoError(t, mem.WriteFile("a.txt", []byte("hello"), 0o644))
	_, err = r.Track("a.txt")
	require.NoError(t, err)
	res, err := r.Commit("first")
	require.NoError(t, err)
	assert.Equal(t, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d", res.Fingerprint)

	data, err := mem.ReadFile("vcs/commits/aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestVerify(t *testing.T) {
	r, mem := newMemRepo(t)
	require.NoError(t, mem.WriteFile("a.txt", []byte("abc"), 0o644))
	_, err := r.Track("a.txt")
	require.NoError(t, err)
	good, err := r.Commit("good")
	require.NoError(t, err)

	results, err := r.Verify()
	require.NoError(t, err)
	assert.Equal(t, []repo.VerifyResult{{Fingerprint: good.Fingerprint, OK: true, Files: 1, Bytes: 3}}, results)

	require.NoError(t, mem.WriteFile("vcs/commits/"+good.Fingerprint+"/a.txt", []byte("abd"), 0o644))
	results, err = r.Verify()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
}

func TestVerifyReadsEachSnapshotOnce(t *testing.T) {
	r, dir := newDiskRepo(t)
	writeFile(t, dir, "a.txt", "abc")
	_, err := r.Track("a.txt")
	require.NoError(t, err)
	_, err = r.Commit("c")
	require.NoError(t, err)

	commits := filepath.Join(dir, "vcs", "commits")
	reads := 0
	orig := fs.GetReadFile()
	t.Cleanup(func() { fs.SetReadFile(orig) })
	fs.SetReadFile(func(p string) ([]byte, error) {
		if strings.HasPrefix(p, commits) {
			reads++
		}
		return orig(p)
	})

	results, err := r.Verify()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].OK)
	// manifest + one file copy
	assert.Equal(t, 2, reads)
}

func TestCommitMessageWithHeaderLines(t *testing.T) {
	r, _ := newMemRepo(t)
	require.NoError(t, r.SetUsername("alice"))
	msg := "fix\ncommit 0000\nAuthor: mallory\nforged"

	res, err := r.Commit(msg)
	require.NoError(t, err)

	entries, err := r.Meta.Entries()
	require.NoError(t, err)
	assert.Equal(t, []meta.LogEntry{{Fingerprint: res.Fingerprint, Author: "alice", Message: msg}}, entries)
}

package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/svcs/internal/config"
	"github.com/keshon/svcs/internal/fs"
	"github.com/keshon/svcs/internal/hash"
	"github.com/keshon/svcs/internal/repo/store"
)

func TestNewStoreCreatesLayout(t *testing.T) {
	mem := fs.NewMemoryFS()
	cfg := config.NewRepoConfig(".", "vcs")

	st, err := store.NewStore(cfg, &store.NewStoreOptions{FS: mem})
	require.NoError(t, err)

	assert.True(t, mem.IsDir("vcs/commits"))
	assert.True(t, mem.Exists("vcs/index.txt"))
	assert.Equal(t, hash.Default, st.SnapshotCtx.Hasher.Name())
	assert.Equal(t, "vcs/commits", st.SnapshotCtx.Root)
}

func TestNewStoreKeepsExistingIndex(t *testing.T) {
	mem := fs.NewMemoryFS()
	require.NoError(t, mem.MkdirAll("vcs", 0o755))
	require.NoError(t, mem.WriteFile("vcs/index.txt", []byte("a.txt\n"), 0o644))

	sha, err := hash.New(hash.SHA1)
	require.NoError(t, err)
	st, err := store.NewStore(config.NewRepoConfig(".", "vcs"), &store.NewStoreOptions{FS: mem, Hasher: sha})
	require.NoError(t, err)

	paths, err := st.Index.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, paths)
	assert.Equal(t, hash.SHA1, st.SnapshotCtx.Hasher.Name())
}

func TestNewStoreNilConfig(t *testing.T) {
	_, err := store.NewStore(nil, nil)
	assert.Error(t, err)
}

func TestNewStoreDefaultOnDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))

	st, err := store.NewStoreDefault(config.NewRepoConfig(dir, "vcs"))
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(dir, "vcs", "commits"))
	assert.FileExists(t, filepath.Join(dir, "vcs", "index.txt"))
	assert.Equal(t, hash.Default, st.SnapshotCtx.Hasher.Name())

	res, err := st.Index.Add("a.txt")
	require.NoError(t, err)
	paths, err := st.Index.List()
	require.NoError(t, err)
	assert.Equal(t, []string{res.Path}, paths)
}

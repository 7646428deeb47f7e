package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/svcs/internal/fs"
	"github.com/keshon/svcs/internal/logger"
	"github.com/keshon/svcs/internal/repo/store/index"
)

func newTestIndex(t *testing.T) (*index.Index, *fs.MemoryFS) {
	t.Helper()
	mem := fs.NewMemoryFS()
	require.NoError(t, mem.MkdirAll("vcs", 0o755))
	return index.New("vcs/index.txt", ".", "vcs", mem, logger.Discard()), mem
}

func TestAddAndList(t *testing.T) {
	ix, mem := newTestIndex(t)
	require.NoError(t, mem.WriteFile("b.txt", []byte("b"), 0o644))
	require.NoError(t, mem.WriteFile("a.txt", []byte("a"), 0o644))

	empty, err := ix.List()
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)

	res, err := ix.Add("b.txt")
	require.NoError(t, err)
	assert.Equal(t, index.Tracked, res.Status)

	res, err = ix.Add("./a.txt")
	require.NoError(t, err)
	assert.Equal(t, index.AddResult{Path: "a.txt", Status: index.Tracked}, res)

	paths, err := ix.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt", "a.txt"}, paths)

	raw, err := mem.ReadFile("vcs/index.txt")
	require.NoError(t, err)
	assert.Equal(t, "b.txt\na.txt\n", string(raw))
}

func TestAddIsIdempotent(t *testing.T) {
	ix, mem := newTestIndex(t)
	require.NoError(t, mem.WriteFile("a.txt", []byte("a"), 0o644))

	_, err := ix.Add("a.txt")
	require.NoError(t, err)
	res, err := ix.Add("a.txt")
	require.NoError(t, err)
	assert.Equal(t, index.AlreadyTracked, res.Status)

	paths, err := ix.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, paths)
}

func TestAddMissingDoesNotMutate(t *testing.T) {
	ix, mem := newTestIndex(t)
	require.NoError(t, mem.WriteFile("a.txt", []byte("a"), 0o644))
	_, err := ix.Add("a.txt")
	require.NoError(t, err)

	before, err := mem.ReadFile("vcs/index.txt")
	require.NoError(t, err)

	res, err := ix.Add("ghost.txt")
	require.NoError(t, err)
	assert.Equal(t, index.NotFound, res.Status)

	after, err := mem.ReadFile("vcs/index.txt")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAddRejectsInvalidPaths(t *testing.T) {
	ix, mem := newTestIndex(t)
	require.NoError(t, mem.MkdirAll("dir", 0o755))
	require.NoError(t, mem.WriteFile("vcs/log.txt", nil, 0o644))

	for _, p := range []string{"", "..", "../outside.txt", "dir", "vcs/log.txt", "vcs"} {
		_, err := ix.Add(p)
		assert.ErrorIs(t, err, index.ErrInvalidPath, "path %q", p)
	}
	assert.False(t, mem.Exists("vcs/index.txt"))
}

func TestAddNestedPath(t *testing.T) {
	ix, mem := newTestIndex(t)
	require.NoError(t, mem.MkdirAll("src/pkg", 0o755))
	require.NoError(t, mem.WriteFile("src/pkg/main.go", []byte("package main"), 0o644))

	res, err := ix.Add("src/pkg/../pkg/main.go")
	require.NoError(t, err)
	assert.Equal(t, "src/pkg/main.go", res.Path)
}

func TestListDeduplicatesLegacyRecords(t *testing.T) {
	ix, mem := newTestIndex(t)
	require.NoError(t, mem.WriteFile("vcs/index.txt", []byte("a.txt\r\nb.txt\na.txt\n\n"), 0o644))

	paths, err := ix.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, paths)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "tracked", index.Tracked.String())
	assert.Equal(t, "already tracked", index.AlreadyTracked.String())
	assert.Equal(t, "not found", index.NotFound.String())
	assert.Equal(t, "Status(9)", index.Status(9).String())
}

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/svcs/internal/fs"
	"github.com/keshon/svcs/internal/util"
)

func TestWriteFileAtomic(t *testing.T) {
	m := fs.NewMemoryFS()

	require.NoError(t, util.WriteFileAtomic(m, "vcs/log.txt", []byte("one")))
	require.NoError(t, util.WriteFileAtomic(m, "vcs/log.txt", []byte("two")))

	data, err := m.ReadFile("vcs/log.txt")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := m.ReadDir("vcs")
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "log.txt", entries[0].Name())
}

func TestWriteFileAtomicOnDisk(t *testing.T) {
	dir := t.TempDir()
	o := fs.NewOSFS()

	p := dir + "/nested/file.txt"
	require.NoError(t, util.WriteFileAtomic(o, p, []byte("data")))

	data, err := o.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

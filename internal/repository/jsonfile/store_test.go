package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_WriteRead(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	var missing []string
	ok, err := db.read("nested/doc.json", &missing)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.write("nested/doc.json", []string{"a", "b"}))
	var got []string
	ok, err = db.read("nested/doc.json", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)

	entries, err := os.ReadDir(filepath.Join(db.Dir(), "nested"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "doc.json", entries[0].Name())
}

func TestDB_ReadCorrupt(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(db.Dir(), "bad.json"), []byte("{not json"), 0o600))

	var v map[string]any
	_, err = db.read("bad.json", &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode bad.json")
}

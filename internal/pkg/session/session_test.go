package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryOnlyStore(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyToken, "abc123"))
	assert.Equal(t, "abc123", store.Token())

	require.NoError(t, store.Delete(KeyToken))
	assert.Empty(t, store.Token())
}

func TestSetLoginAndClear(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	require.NoError(t, store.SetLogin("tok", "42", "jdoe", "HR"))
	assert.Equal(t, "tok", store.Token())
	assert.Equal(t, "42", store.Get(KeyUserID))
	assert.Equal(t, "jdoe", store.Get(KeyUsername))
	assert.Equal(t, "HR", store.Get(KeyRole))

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Token())
	assert.Empty(t, store.Get(KeyRole))
}

func TestPersistenceAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetLogin("tok", "42", "jdoe", "EMPLOYEE"))

	reopened, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", reopened.Token())
	assert.Equal(t, "jdoe", reopened.Get(KeyUsername))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestMissingFileIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	store, err := NewStore(path)
	require.NoError(t, err)
	assert.Empty(t, store.Token())
}

func TestCorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewStore(path)
	assert.Error(t, err)
}

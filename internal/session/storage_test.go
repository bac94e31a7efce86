package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundplus/storefront/internal/models"
)

func TestFileStorageSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	fs, err := OpenFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, NewStore(fs).SetSession(&Session{ID: "u1", Username: "ann", Role: models.RoleUser, Token: "t"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := OpenFileStorage(path)
	require.NoError(t, err)
	sess, ok := NewStore(reopened).Session()
	require.True(t, ok)
	assert.Equal(t, "ann", sess.Username)

	require.NoError(t, NewStore(reopened).Logout())
	again, err := OpenFileStorage(path)
	require.NoError(t, err)
	_, ok = NewStore(again).Session()
	assert.False(t, ok)
}

func TestFileStorageRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := OpenFileStorage(path)
	require.Error(t, err)
}

package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLock(t *testing.T) {
	t.Run("Should place the lock file in the git directory", func(t *testing.T) {
		dir := t.TempDir()
		lock := NewRunLock(dir)
		assert.Equal(t, filepath.Join(dir, LockFileName), lock.Path())
	})
	t.Run("Should refuse a second holder until released", func(t *testing.T) {
		dir := t.TempDir()
		first := NewRunLock(dir)
		second := NewRunLock(dir)
		locked, err := first.TryLock()
		require.NoError(t, err)
		require.True(t, locked)
		locked, err = second.TryLock()
		require.NoError(t, err)
		assert.False(t, locked)
		require.NoError(t, first.Unlock())
		locked, err = second.TryLock()
		require.NoError(t, err)
		assert.True(t, locked)
		require.NoError(t, second.Unlock())
	})
}

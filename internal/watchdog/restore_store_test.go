package watchdog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfirsov/kernel/contracts"
)

func TestBoltRestoreStore_SaveAndLoad(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "restore.db")
	store, err := NewBoltRestoreStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	store.Save(contracts.RestorePoint{ID: "rp-1", Reason: "pre-deploy"})
	store.Save(contracts.RestorePoint{ID: "rp-2", Reason: "manual"})

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestWatchdog_MirrorsRestorePointsToStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "restore.db")
	store, err := NewBoltRestoreStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	w := NewWatchdog(3, store)
	w.CreateRestorePoint("checkpoint", nil)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

package pagevault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/pagevault/ingestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVault(t *testing.T) {
	t.Run("create new vault", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		vault, err := NewVault(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, vault)
		defer vault.Close()

		// Verify components are initialized
		assert.NotNil(t, vault.PageRepository())
		assert.NotNil(t, vault.CredentialRepository())
		assert.NotNil(t, vault.RunRepository())
		assert.NotNil(t, vault.backend)
		assert.NotNil(t, vault.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a vault at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		vault, err := NewVault(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, vault)
	})
}

func TestVault_Close(t *testing.T) {
	tmpDir := t.TempDir()
	vault, err := NewVault(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, vault)

	err = vault.Close()
	assert.NoError(t, err)
}

func TestVault_FactoryMethods(t *testing.T) {
	tmpDir := t.TempDir()
	vault, err := NewVault(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, vault)
	defer vault.Close()

	t.Run("can create importer", func(t *testing.T) {
		importer, err := vault.NewImporter()
		require.NoError(t, err)
		require.NotNil(t, importer)
	})

	t.Run("can create coordinator", func(t *testing.T) {
		coordinator, err := vault.NewCoordinator()
		require.NoError(t, err)
		require.NotNil(t, coordinator)
		coordinator.Release()
	})

	t.Run("coordinator accepts importer options", func(t *testing.T) {
		coordinator, err := vault.NewCoordinator(ingestion.WithMaxEmbedChars(64))
		require.NoError(t, err)
		require.NotNil(t, coordinator)
		coordinator.Release()
	})

	t.Run("can create searcher", func(t *testing.T) {
		searcher, err := vault.NewSearcher()
		require.NoError(t, err)
		require.NotNil(t, searcher)
	})

	t.Run("can create reembedder", func(t *testing.T) {
		reembedder := vault.NewReembedder(nil, os.Stderr)
		require.NotNil(t, reembedder)
	})
}

package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/sigstub"
	"github.com/fwojciec/sigstub/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic Stub Output
// The store uses a temp directory so a failed run never leaves half a library

func TestStubStore_SaveWritesToTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a store targeting a directory
	base := t.TempDir()
	store := fs.NewStubStore(base, "sml")

	// When I save a stub
	err := store.Save(context.Background(), &sigstub.Stub{
		Name: "list",
		Text: "signature LIST = sig\nend\n",
	})

	// Then no error occurs
	require.NoError(t, err)

	// And the file exists in the temp directory (not final)
	_, err = os.Stat(filepath.Join(base, "sml.tmp", "list.sml"))
	require.NoError(t, err, "file should exist in temp directory")

	// And final directory does not exist yet
	_, err = os.Stat(filepath.Join(base, "sml", "list.sml"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestStubStore_CommitMovesFromTempToFinal(t *testing.T) {
	t.Parallel()

	// Given a store with saved stubs
	base := t.TempDir()
	store := fs.NewStubStore(base, "sml")
	err := store.Save(context.Background(), &sigstub.Stub{Name: "option", Text: "signature OPTION = sig\nend\n"})
	require.NoError(t, err)

	// When I commit
	err = store.Commit()
	require.NoError(t, err)

	// Then the final file holds the stub text verbatim
	content, err := os.ReadFile(filepath.Join(base, "sml", "option.sml"))
	require.NoError(t, err)
	assert.Equal(t, "signature OPTION = sig\nend\n", string(content))

	// And temp directory is gone
	_, err = os.Stat(filepath.Join(base, "sml.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after commit")
}

func TestStubStore_CommitReplacesPreviousOutput(t *testing.T) {
	t.Parallel()

	// Given a previous run left a stale stub
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "sml"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "sml", "stale.sml"), []byte("old"), 0644))

	// When a new run commits
	store := fs.NewStubStore(base, "sml")
	require.NoError(t, store.Save(context.Background(), &sigstub.Stub{Name: "fresh", Text: "new"}))
	require.NoError(t, store.Commit())

	// Then only the new stubs remain
	_, err := os.Stat(filepath.Join(base, "sml", "stale.sml"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(base, "sml", "fresh.sml"))
	assert.NoError(t, err)
}

func TestStubStore_AbortCleansUpTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a store with saved stubs
	base := t.TempDir()
	store := fs.NewStubStore(base, "sml")
	err := store.Save(context.Background(), &sigstub.Stub{Name: "a", Text: "x"})
	require.NoError(t, err)

	// When I abort
	err = store.Abort()
	require.NoError(t, err)

	// Then neither directory exists
	_, err = os.Stat(filepath.Join(base, "sml.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after abort")
	_, err = os.Stat(filepath.Join(base, "sml"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist after abort")
}

func TestStubStore_PreservesNestedNames(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewStubStore(base, "sml")
	require.NoError(t, store.Save(context.Background(), &sigstub.Stub{Name: "Util/hash-table", Text: "x"}))
	require.NoError(t, store.Commit())

	_, err := os.Stat(filepath.Join(base, "sml", "Util", "hash-table.sml"))
	require.NoError(t, err, "nested path structure should be preserved")
}

func TestStubStore_RejectsPathTraversal(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewStubStore(base, "sml")

	err := store.Save(context.Background(), &sigstub.Stub{Name: "../../etc/passwd", Text: "bad"})

	require.Error(t, err, "path traversal should be rejected")
	assert.Equal(t, sigstub.EINVALID, sigstub.ErrorCode(err))
	assert.Contains(t, sigstub.ErrorMessage(err), "path traversal")
}

func TestStubStore_RejectsEmptyName(t *testing.T) {
	t.Parallel()

	store := fs.NewStubStore(t.TempDir(), "sml")

	err := store.Save(context.Background(), &sigstub.Stub{Text: "x"})

	assert.Equal(t, sigstub.EINVALID, sigstub.ErrorCode(err))
}

func TestStubStore_CommitWithNothingSaved(t *testing.T) {
	t.Parallel()

	// Given a store with no saved stubs and a stale output directory
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "sml"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "sml", "old.sml"), []byte("x"), 0644))
	store := fs.NewStubStore(base, "sml")

	// When I commit
	err := store.Commit()

	// Then the output directory is empty
	require.NoError(t, err)
	entries, err := os.ReadDir(filepath.Join(base, "sml"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStubStore_DiscardsLeftoversOfInterruptedRun(t *testing.T) {
	t.Parallel()

	// Given a temp directory left behind by a killed run
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "sml.tmp"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "sml.tmp", "STALE.sml"), []byte("stale"), 0644))
	store := fs.NewStubStore(base, "sml")

	// When I save a stub and commit
	require.NoError(t, store.Save(context.Background(), &sigstub.Stub{Name: "list", Text: "LIST\n"}))
	require.NoError(t, store.Commit())

	// Then only the new stub is committed
	entries, err := os.ReadDir(filepath.Join(base, "sml"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "list.sml", entries[0].Name())
}

func TestStubStore_CommitWithNothingSavedDiscardsLeftovers(t *testing.T) {
	t.Parallel()

	// Given a stale temp directory and no saved stubs
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "sml.tmp"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "sml.tmp", "STALE.sml"), []byte("stale"), 0644))
	store := fs.NewStubStore(base, "sml")

	// When I commit
	require.NoError(t, store.Commit())

	// Then the output directory is empty
	entries, err := os.ReadDir(filepath.Join(base, "sml"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStubStore_KeepsEarlierSavesOfSameRun(t *testing.T) {
	t.Parallel()

	// Given a store with two saved stubs
	base := t.TempDir()
	store := fs.NewStubStore(base, "sml")
	require.NoError(t, store.Save(context.Background(), &sigstub.Stub{Name: "list", Text: "LIST\n"}))
	require.NoError(t, store.Save(context.Background(), &sigstub.Stub{Name: "array", Text: "ARRAY\n"}))

	// When I commit
	require.NoError(t, store.Commit())

	// Then both stubs are present
	entries, err := os.ReadDir(filepath.Join(base, "sml"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

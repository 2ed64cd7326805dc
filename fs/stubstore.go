// Package fs provides file-based storage: the emitted .sml stubs and the
// harvested HTML cache.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/sigstub"
)

// StubExt is the file suffix of emitted stubs.
const StubExt = ".sml"

// Ensure StubStore implements sigstub.StubStore at compile time.
var _ sigstub.StubStore = (*StubStore)(nil)

// StubStore implements sigstub.StubStore with atomic update semantics.
// Stubs are saved to a temporary directory, then moved atomically on Commit.
// The temporary directory is cleared before first use, so leftovers of an
// interrupted run never reach the output.
type StubStore struct {
	baseDir string
	name    string

	prepareOnce sync.Once
	prepareErr  error
}

// NewStubStore creates a new StubStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewStubStore(baseDir, name string) *StubStore {
	return &StubStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *StubStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *StubStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// prepare empties the temporary directory once per store.
func (s *StubStore) prepare() error {
	s.prepareOnce.Do(func() {
		if err := os.RemoveAll(s.tempDir()); err != nil {
			s.prepareErr = err
			return
		}
		s.prepareErr = os.MkdirAll(s.tempDir(), 0755)
	})
	return s.prepareErr
}

// Save writes stub to <name>.sml in the temporary directory. Names with
// slashes create subdirectories.
func (s *StubStore) Save(ctx context.Context, stub *sigstub.Stub) error {
	if err := s.prepare(); err != nil {
		return err
	}
	fullPath, err := namePath(s.tempDir(), stub.Name, StubExt)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(stub.Text), 0644)
}

// Commit replaces the output directory with the saved stubs. Committing
// with nothing saved leaves an empty output directory.
func (s *StubStore) Commit() error {
	if err := s.prepare(); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved stubs.
func (s *StubStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/sigstub"
)

var _ sigstub.StubStore = (*StubStore)(nil)

// StubStore is a mock implementation of sigstub.StubStore.
type StubStore struct {
	SaveFn   func(ctx context.Context, stub *sigstub.Stub) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *StubStore) Save(ctx context.Context, stub *sigstub.Stub) error {
	return s.SaveFn(ctx, stub)
}

func (s *StubStore) Commit() error {
	return s.CommitFn()
}

func (s *StubStore) Abort() error {
	return s.AbortFn()
}

// MemoryStubStore is a StubStore that keeps committed stubs in memory.
type MemoryStubStore struct {
	mu        sync.Mutex
	pending   []*sigstub.Stub
	Committed []*sigstub.Stub
	Aborted   bool
}

var _ sigstub.StubStore = (*MemoryStubStore)(nil)

func (s *MemoryStubStore) Save(_ context.Context, stub *sigstub.Stub) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, stub)
	return nil
}

func (s *MemoryStubStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Committed = append(s.Committed, s.pending...)
	s.pending = nil
	return nil
}

func (s *MemoryStubStore) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.Aborted = true
	return nil
}

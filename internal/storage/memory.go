package storage

import (
	"context"
	"sort"
	"sync"
)

var _ HookStore = (*MemoryHookStore)(nil)

type MemoryHookStore struct {
	mu      sync.RWMutex
	records map[string]HookRecord
}

func NewMemoryHookStore() *MemoryHookStore {
	return &MemoryHookStore{
		records: make(map[string]HookRecord),
	}
}

func (s *MemoryHookStore) List(_ context.Context) ([]HookRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]HookRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (s *MemoryHookStore) Get(_ context.Context, id string) (HookRecord, error) {
	s.mu.RLock()
	record, ok := s.records[id]
	s.mu.RUnlock()

	if !ok {
		return HookRecord{}, ErrNotFound
	}
	return record, nil
}

func (s *MemoryHookStore) Insert(_ context.Context, record HookRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[record.ID]; ok {
		return ErrAlreadyExists
	}
	s.records[record.ID] = record
	return nil
}

func (s *MemoryHookStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.records, id)
	s.mu.Unlock()
	return nil
}

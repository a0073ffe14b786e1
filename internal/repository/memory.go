package repository

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"really-simple-feedback/internal/models"
)

// MemoryRecordStore is a process-local RecordStore used for local runs and tests.
type MemoryRecordStore struct {
	mu      sync.RWMutex
	seq     uint64
	records map[string]*models.Record
	order   map[string]uint64
	now     func() time.Time
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{
		records: make(map[string]*models.Record),
		order:   make(map[string]uint64),
		now:     time.Now,
	}
}

func (s *MemoryRecordStore) Create(_ context.Context, category string, attributes map[string]string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := strconv.FormatUint(s.seq, 10)
	rec := &models.Record{ID: id, Category: category, Attributes: attributes, CreatedAt: s.now().UTC()}
	s.records[id] = rec.Clone()
	s.order[id] = s.seq
	return id, nil
}

func (s *MemoryRecordStore) Get(_ context.Context, id string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return rec.Clone(), nil
}

func (s *MemoryRecordStore) SetAttribute(_ context.Context, id, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.Attributes[key] = value
	return nil
}

func (s *MemoryRecordStore) DeleteAttribute(_ context.Context, id, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	delete(rec.Attributes, key)
	return nil
}

func (s *MemoryRecordStore) List(_ context.Context, category string) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := []*models.Record{}
	for _, rec := range s.records {
		if rec.Category == category {
			records = append(records, rec.Clone())
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return s.order[records[i].ID] > s.order[records[j].ID]
	})
	return records, nil
}

type MemoryAuthTokenStore struct {
	mu     sync.Mutex
	tokens map[string]models.AuthToken
}

func NewMemoryAuthTokenStore() *MemoryAuthTokenStore {
	return &MemoryAuthTokenStore{tokens: make(map[string]models.AuthToken)}
}

func (s *MemoryAuthTokenStore) Create(_ context.Context, token *models.AuthToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token.CreatedAt = time.Now()
	s.tokens[token.Token] = *token
	return nil
}

func (s *MemoryAuthTokenStore) FindByToken(_ context.Context, token string) (*models.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[token]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *MemoryAuthTokenStore) MarkUsed(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[token]
	if !ok || t.IsUsed {
		return false, nil
	}
	t.IsUsed = true
	s.tokens[token] = t
	return true, nil
}

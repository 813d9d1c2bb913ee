package store

import (
	"fmt"
	"slices"
	"sync"

	"github.com/hance08/tally/internal/model"
)

// MemoryStore keeps documents in process memory. Nothing survives a restart.
// The zero value is not usable; use NewMemoryStore.
type MemoryStore struct {
	mu    sync.Mutex
	doc   model.Document
	users map[string]userRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		doc:   model.NewDocument(),
		users: make(map[string]userRecord),
	}
}

func (s *MemoryStore) Load() (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone(), nil
}

func (s *MemoryStore) Save(doc model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
	return nil
}

func (s *MemoryStore) Update(fn func(model.Document) (model.Document, error)) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.doc.Clone())
	if err != nil {
		return model.Document{}, err
	}
	s.doc = next.Clone()
	return next, nil
}

func (s *MemoryStore) CreateUser(name, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[name]; ok {
		return fmt.Errorf("%w: %s", ErrUserExists, name)
	}
	s.users[name] = userRecord{credential: credential, doc: model.NewDocument()}
	return nil
}

func (s *MemoryStore) GetUser(name string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, name)
	}
	return &model.User{Name: name, Credential: u.credential}, nil
}

func (s *MemoryStore) UpdateCredential(name, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUserNotFound, name)
	}
	u.credential = credential
	s.users[name] = u
	return nil
}

func (s *MemoryStore) ListUsers() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.users))
	for name := range s.users {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (s *MemoryStore) Ledger(name string) Repository {
	return &memoryLedger{store: s, name: name}
}

type memoryLedger struct {
	store *MemoryStore
	name  string
}

func (l *memoryLedger) Load() (model.Document, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	u, ok := l.store.users[l.name]
	if !ok {
		return model.NewDocument(), fmt.Errorf("%w: %s", ErrUserNotFound, l.name)
	}
	return u.doc.Clone(), nil
}

func (l *memoryLedger) Save(doc model.Document) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	u, ok := l.store.users[l.name]
	if !ok {
		return fmt.Errorf("%w: %w: %s", ErrWriteFailed, ErrUserNotFound, l.name)
	}
	u.doc = doc.Clone()
	l.store.users[l.name] = u
	return nil
}

func (l *memoryLedger) Update(fn func(model.Document) (model.Document, error)) (model.Document, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	u, ok := l.store.users[l.name]
	if !ok {
		return model.Document{}, fmt.Errorf("%w: %w: %s", ErrWriteFailed, ErrUserNotFound, l.name)
	}
	next, err := fn(u.doc.Clone())
	if err != nil {
		return model.Document{}, err
	}
	u.doc = next.Clone()
	l.store.users[l.name] = u
	return next, nil
}

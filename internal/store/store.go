package store

import (
	"context"
	"slices"
	"sync"

	"roster-cli/internal/model"
	"roster-cli/internal/query"

	"go.uber.org/zap"
)

// Store owns the loaded people collection. The collection is never edited
// in place; a reload swaps it wholesale via Replace.
type Store struct {
	source Source
	logger *zap.Logger

	mu     sync.RWMutex
	people []model.Person
	byID   map[int]int
	roles  []string
}

func New(src Source, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		source: src,
		logger: logger,
		byID:   map[int]int{},
	}
}

func (s *Store) Source() Source { return s.source }

// Load reads the source once. On failure the error is logged, the store is
// left empty and the *LoadError is returned. There is no retry.
func (s *Store) Load(ctx context.Context) error {
	people, byID, err := load(ctx, s.source)
	if err != nil {
		s.logger.Error("load people",
			zap.String("source", s.source.String()),
			zap.Error(err),
		)
		s.swap(nil, map[int]int{})
		return err
	}
	s.swap(people, byID)
	s.logger.Debug("loaded people",
		zap.String("source", s.source.String()),
		zap.Int("count", len(people)),
	)
	return nil
}

// Replace swaps in a new collection. The slice is copied.
func (s *Store) Replace(people []model.Person) error {
	byID, err := indexByID(people)
	if err != nil {
		return err
	}
	s.swap(people, byID)
	return nil
}

func (s *Store) swap(people []model.Person, byID map[int]int) {
	cp := slices.Clone(people)
	roles := query.Roles(cp)

	s.mu.Lock()
	s.people = cp
	s.byID = byID
	s.roles = roles
	s.mu.Unlock()
}

// indexByID maps id to position and rejects duplicate ids.
func indexByID(people []model.Person) (map[int]int, error) {
	byID := make(map[int]int, len(people))
	for i, p := range people {
		if _, dup := byID[p.ID]; dup {
			return nil, DuplicateIDError{ID: p.ID}
		}
		byID[p.ID] = i
	}
	return byID, nil
}

// FindByID returns the person with id, or false when there is none.
func (s *Store) FindByID(id int) (model.Person, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return model.Person{}, false
	}
	return s.people[i], true
}

// Records returns a copy of the collection in source order.
func (s *Store) Records() []model.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.people)
}

// Roles returns the distinct roles, sorted ascending.
func (s *Store) Roles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.roles)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.people)
}

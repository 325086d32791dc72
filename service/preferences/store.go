// Package preferences persists the user's filter state between runs.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/elC0mpa/ec2-observe/model"
	"gopkg.in/yaml.v3"
)

// Store loads and saves a FilterState
type Store interface {
	Load(ctx context.Context) (model.FilterState, error)
	Save(ctx context.Context, state model.FilterState) error
}

type fileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore keeps the filter state as YAML at path
func NewFileStore(path string) *fileStore {
	return &fileStore{path: path}
}

// Load reads the saved state. A missing file yields the default state, and fields absent
// from the file keep their defaults.
func (s *fileStore) Load(ctx context.Context) (model.FilterState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.DefaultFilterState(), nil
		}
		return model.FilterState{}, fmt.Errorf("failed to read filter state %s: %w", s.path, err)
	}

	state := model.DefaultFilterState()
	if err := yaml.Unmarshal(data, &state); err != nil {
		return model.FilterState{}, fmt.Errorf("failed to parse filter state %s: %w", s.path, err)
	}
	if state.AppliedFilters == nil {
		state.AppliedFilters = []model.AppliedFilter{}
	}
	return state, nil
}

// Save writes the state unless the user disabled persistence
func (s *fileStore) Save(ctx context.Context, state model.FilterState) error {
	if !state.Behavior.PersistFilters {
		return nil
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode filter state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", s.path, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write filter state %s: %w", s.path, err)
	}
	return nil
}

type memoryStore struct {
	mu    sync.Mutex
	state *model.FilterState
}

// NewMemoryStore keeps the filter state for the lifetime of the process
func NewMemoryStore() *memoryStore {
	return &memoryStore{}
}

func (s *memoryStore) Load(ctx context.Context) (model.FilterState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return model.DefaultFilterState(), nil
	}
	return *s.state, nil
}

func (s *memoryStore) Save(ctx context.Context, state model.FilterState) error {
	if !state.Behavior.PersistFilters {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// detach from the caller's slices
	saved := state.WithBehavior(state.Behavior)
	s.state = &saved
	return nil
}

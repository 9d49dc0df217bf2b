//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"
	"time"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
	"github.com/rios0rios0/conanupdate/internal/domain/repositories"
)

// StubVersionRepository implements repositories.VersionRepository with canned
// answers per package name. It is safe for concurrent use.
type StubVersionRepository struct {
	// --- Prepare ---
	PrepareErr error

	// --- SearchVersions ---
	References map[string][]entities.PublishedReference
	Errors     map[string]error
	// Delays blocks the query of a name until the delay passes or the
	// context is done, whichever comes first.
	Delays map[string]time.Duration

	mu                 sync.Mutex
	prepareCalls       int
	searchedUnprepared bool
	searched           []string
	inFlight           int
	maxInFlight        int
}

var _ repositories.VersionRepository = (*StubVersionRepository)(nil)

func (s *StubVersionRepository) Prepare(_ context.Context, _ *entities.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prepareCalls++
	return s.PrepareErr
}

func (s *StubVersionRepository) SearchVersions(
	ctx context.Context,
	name string,
	_ *entities.Settings,
) ([]entities.PublishedReference, error) {
	s.mu.Lock()
	if s.prepareCalls == 0 {
		s.searchedUnprepared = true
	}
	s.searched = append(s.searched, name)
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if delay, ok := s.Delays[name]; ok {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := s.Errors[name]; ok {
		return nil, err
	}
	return s.References[name], nil
}

// PrepareCalls returns how many times Prepare ran.
func (s *StubVersionRepository) PrepareCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prepareCalls
}

// SearchedUnprepared reports whether a query ran before any Prepare call.
func (s *StubVersionRepository) SearchedUnprepared() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchedUnprepared
}

// Searched returns the names queried so far.
func (s *StubVersionRepository) Searched() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.searched...)
}

// MaxInFlight returns the highest number of concurrent queries observed.
func (s *StubVersionRepository) MaxInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInFlight
}

// PublishedVersions builds references without user and channel.
func PublishedVersions(versions ...string) []entities.PublishedReference {
	refs := make([]entities.PublishedReference, 0, len(versions))
	for _, v := range versions {
		refs = append(refs, entities.PublishedReference{Version: v})
	}
	return refs
}

package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/podium/internal/domain/model"
)

// MemStore is the in-memory Store implementation.
//
// Mutations take the write lock and bump the version; Snapshot takes the
// read lock and deep-copies, so an evaluation pass never observes a
// half-applied edit. Change listeners fire outside the lock.
type MemStore struct {
	mu           sync.RWMutex
	participants map[model.ParticipantID]model.Participant
	competitions map[string]model.Competition
	version      uint64

	listeners []func(version uint64)
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty result store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		participants: make(map[model.ParticipantID]model.Participant),
		competitions: make(map[string]model.Competition),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpsertParticipant adds or replaces a roster member.
func (s *MemStore) UpsertParticipant(_ context.Context, p model.Participant) error {
	if p.ID == "" {
		return fmt.Errorf("upsert participant: %w", ErrEmptyID)
	}

	s.mu.Lock()
	s.participants[p.ID] = p
	version := s.bumpLocked()
	s.mu.Unlock()

	s.notify(version)
	return nil
}

// AddCompetition inserts a new competition. An empty score map is a valid
// cancelled year and is stored as-is.
func (s *MemStore) AddCompetition(_ context.Context, c model.Competition) error {
	if c.ID == "" {
		return fmt.Errorf("add competition: %w", ErrEmptyID)
	}

	s.mu.Lock()
	if _, exists := s.competitions[c.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("add competition %s: %w", c.ID, ErrDuplicateCompetition)
	}
	if err := s.checkScoresLocked(c); err != nil {
		s.mu.Unlock()
		return err
	}
	s.competitions[c.ID] = copyCompetition(c)
	version := s.bumpLocked()
	s.mu.Unlock()

	s.notify(version)
	return nil
}

// UpdateCompetition replaces an existing competition.
func (s *MemStore) UpdateCompetition(_ context.Context, c model.Competition) error {
	if c.ID == "" {
		return fmt.Errorf("update competition: %w", ErrEmptyID)
	}

	s.mu.Lock()
	if _, exists := s.competitions[c.ID]; !exists {
		s.mu.Unlock()
		return fmt.Errorf("update competition %s: %w", c.ID, ErrNotFound)
	}
	if err := s.checkScoresLocked(c); err != nil {
		s.mu.Unlock()
		return err
	}
	s.competitions[c.ID] = copyCompetition(c)
	version := s.bumpLocked()
	s.mu.Unlock()

	s.notify(version)
	return nil
}

// Snapshot returns a deep copy with the documented deterministic ordering.
func (s *MemStore) Snapshot(_ context.Context) model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := model.Snapshot{
		Version:      s.version,
		Participants: make([]model.Participant, 0, len(s.participants)),
		Competitions: make([]model.Competition, 0, len(s.competitions)),
	}
	for _, p := range s.participants {
		snap.Participants = append(snap.Participants, p)
	}
	sort.Slice(snap.Participants, func(i, j int) bool {
		return snap.Participants[i].ID < snap.Participants[j].ID
	})

	for _, c := range s.competitions {
		snap.Competitions = append(snap.Competitions, copyCompetition(c))
	}
	sort.Slice(snap.Competitions, func(i, j int) bool {
		a, b := snap.Competitions[i], snap.Competitions[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.ID < b.ID
	})

	return snap
}

// Version returns the mutation counter.
func (s *MemStore) Version(_ context.Context) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Counts returns the roster and competition sizes.
func (s *MemStore) Counts(_ context.Context) (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants), len(s.competitions)
}

func (s *MemStore) bumpLocked() uint64 {
	s.version++
	return s.version
}

func (s *MemStore) checkScoresLocked(c model.Competition) error {
	for id, rank := range c.Scores {
		if _, ok := s.participants[id]; !ok {
			return fmt.Errorf("competition %s, participant %s: %w", c.ID, id, ErrUnknownParticipant)
		}
		if rank < 1 {
			return fmt.Errorf("competition %s, participant %s: rank %d: %w", c.ID, id, rank, ErrInvalidRank)
		}
	}
	return nil
}

func (s *MemStore) notify(version uint64) {
	for _, fn := range s.listeners {
		fn(version)
	}
}

func copyCompetition(c model.Competition) model.Competition {
	out := c
	out.Scores = make(map[model.ParticipantID]model.Rank, len(c.Scores))
	for id, r := range c.Scores {
		out.Scores[id] = r
	}
	return out
}

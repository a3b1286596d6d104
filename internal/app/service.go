// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/okian/podium/internal/adapters/cache"
	"github.com/okian/podium/internal/adapters/refresh"
	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/achievement"
	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/scoring"
	"github.com/okian/podium/internal/domain/stats"
	"github.com/okian/podium/internal/domain/trend"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Service wires the result store, the achievement engine, the result cache
// and the background refresh loop into the operations the HTTP API exposes.
type Service struct {
	store   *repository.MemStore
	deduper dedupe.Deduper
	engine  *achievement.Engine
	scorer  *scoring.PointsScorer
	cache   *cache.ResultCache
	trigger *refresh.Trigger

	// Configuration
	cacheTTL   time.Duration
	debounce   time.Duration
	dedupeSize int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCacheTTL sets the result cache entry lifetime.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithRefreshDebounce sets how long the refresh loop waits after an edit
// before recomputing.
func WithRefreshDebounce(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithDedupeSize sets the size of the submission dedupe ring.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cacheTTL:   5 * time.Minute,
		debounce:   250 * time.Millisecond,
		dedupeSize: 4096,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components and launches the refresh loop.
func (s *Service) Start(ctx context.Context) error {
	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting achievement service...")

	s.engine = achievement.NewEngine(achievement.NewCatalogue())
	s.scorer = scoring.NewPointsScorer()
	s.cache = cache.NewResultCache(cache.WithTTL(s.cacheTTL))
	s.deduper = dedupe.NewRingDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.trigger = refresh.NewTrigger(s.refreshPass,
		refresh.WithDebounce(s.debounce),
		refresh.WithLogger(s.logger),
	)

	// Any edit to the result set drops every cached evaluation and wakes
	// the refresh loop; serving a stale result after a mutation is a bug.
	s.store = repository.NewMemStore(
		repository.WithChangeListener(func(version uint64) {
			s.cache.Invalidate()
			s.trigger.Poke()
		}),
	)

	s.trigger.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "achievement service started",
		logger.Duration("cacheTTL", s.cacheTTL),
		logger.Duration("debounce", s.debounce),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping achievement service...")
	s.trigger.Stop()
	s.started = false
	s.logger.Info(context.Background(), "achievement service stopped")
}

// refreshPass recomputes the full result set so the next read is warm.
func (s *Service) refreshPass(ctx context.Context) {
	if _, err := s.Evaluate(ctx); err != nil {
		s.logger.Error(ctx, "background refresh failed", logger.Error(err))
	}
}

// Evaluate returns the complete evaluation for the current result set,
// served from the cache when the snapshot fingerprint is unchanged.
func (s *Service) Evaluate(ctx context.Context) (achievement.Evaluation, error) {
	if !s.started {
		return achievement.Evaluation{}, ErrNotStarted
	}

	snap := s.store.Snapshot(ctx)
	fp := cache.FingerprintOf(snap)

	ev, err := s.cache.GetOrCompute(ctx, fp, func(_ context.Context) (achievement.Evaluation, error) {
		start := time.Now()
		out := s.engine.EvaluateAll(snap)
		metrics.RecordEvaluation(float64(time.Since(start).Milliseconds()))

		awarded := 0
		for _, set := range out.Awards {
			awarded += len(set.IDs())
		}
		metrics.UpdateAchievementsAwarded(awarded)
		return out, nil
	})
	if err != nil {
		return achievement.Evaluation{}, err
	}
	return ev, nil
}

// AddParticipant adds or replaces a roster member.
func (s *Service) AddParticipant(ctx context.Context, p model.Participant) error {
	if !s.started {
		return ErrNotStarted
	}
	return s.store.UpsertParticipant(ctx, p)
}

// AddCompetition records a new competition. Returns true when the submission
// was a replay: either the id is in the dedupe window or the store already
// holds it. A failed insert unrecords the id so the client may retry.
func (s *Service) AddCompetition(ctx context.Context, c model.Competition) (bool, error) {
	if !s.started {
		return false, ErrNotStarted
	}

	if s.deduper.SeenAndRecord(ctx, c.ID) {
		metrics.RecordIngestDuplicate()
		s.logger.Debug(ctx, "duplicate competition submission",
			logger.String("competitionID", c.ID),
		)
		return true, nil
	}

	if err := s.store.AddCompetition(ctx, c); err != nil {
		s.deduper.Unrecord(ctx, c.ID)
		if errors.Is(err, repository.ErrDuplicateCompetition) {
			metrics.RecordIngestDuplicate()
			return true, nil
		}
		metrics.RecordIngestError()
		return false, err
	}
	return false, nil
}

// UpdateCompetition replaces an existing competition, e.g. a score correction.
func (s *Service) UpdateCompetition(ctx context.Context, c model.Competition) error {
	if !s.started {
		return ErrNotStarted
	}
	if err := s.store.UpdateCompetition(ctx, c); err != nil {
		metrics.RecordIngestError()
		return err
	}
	return nil
}

// ComputeAllStats returns derived stats for every roster member.
func (s *Service) ComputeAllStats(ctx context.Context) (map[model.ParticipantID]stats.ParticipantStats, error) {
	ev, err := s.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	return ev.Stats, nil
}

// ComputeAchievements returns the current award set for every roster member.
func (s *Service) ComputeAchievements(ctx context.Context) (map[model.ParticipantID]achievement.Set, error) {
	ev, err := s.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	return ev.Awards, nil
}

// MedalTable returns the top n rows of the aggregate medal table.
func (s *Service) MedalTable(ctx context.Context, n int) ([]stats.MedalRow, error) {
	ev, err := s.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	rows := stats.MedalTable(ev.Stats)
	return clamp(rows, n), nil
}

// PointsLeaderboard returns the top n rows of the achievement points ranking.
func (s *Service) PointsLeaderboard(ctx context.Context, n int) ([]scoring.Row, error) {
	ev, err := s.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	rows := s.scorer.Score(s.engine.Catalogue(), ev.Awards)
	return clamp(rows, n), nil
}

// ParticipantStats returns the derived stats and trend for one participant.
func (s *Service) ParticipantStats(ctx context.Context, id model.ParticipantID) (stats.ParticipantStats, trend.Trend, error) {
	ev, err := s.Evaluate(ctx)
	if err != nil {
		return stats.ParticipantStats{}, trend.Trend{}, err
	}
	st, ok := ev.Stats[id]
	if !ok {
		return stats.ParticipantStats{}, trend.Trend{}, ErrUnknownParticipant
	}
	return st, ev.Trends[id], nil
}

// ParticipantAchievements returns the full definitions of every achievement
// the participant currently holds, in catalogue id order.
func (s *Service) ParticipantAchievements(ctx context.Context, id model.ParticipantID) ([]achievement.Definition, error) {
	ev, err := s.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := ev.Stats[id]; !ok {
		return nil, ErrUnknownParticipant
	}

	set := ev.Awards[id]
	defs := make([]achievement.Definition, 0, len(set.IDs()))
	for _, achID := range set.IDs() {
		def, err := s.engine.Catalogue().Lookup(achID)
		if err != nil {
			continue
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Catalogue returns every achievement definition.
func (s *Service) Catalogue(_ context.Context) []achievement.Definition {
	return s.engine.Catalogue().All()
}

// LookupAchievement returns one achievement definition by id.
func (s *Service) LookupAchievement(_ context.Context, id achievement.ID) (achievement.Definition, error) {
	return s.engine.Catalogue().Lookup(id)
}

// CompetitionSummaries returns per-competition stats in chronological order.
func (s *Service) CompetitionSummaries(ctx context.Context) ([]stats.CompetitionStats, error) {
	if !s.started {
		return nil, ErrNotStarted
	}
	snap := s.store.Snapshot(ctx)
	out := make([]stats.CompetitionStats, 0, len(snap.Competitions))
	for _, c := range snap.Competitions {
		out = append(out, stats.ComputeCompetition(c, len(snap.Participants)))
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	out := map[string]interface{}{
		"started":    s.started,
		"dedupeSize": s.dedupeSize,
	}
	if !s.started {
		return out
	}

	participants, competitions := s.store.Counts(ctx)
	out["version"] = s.store.Version(ctx)
	out["participants"] = participants
	out["competitions"] = competitions
	out["cacheEntries"] = s.cache.Len()
	out["dedupeTracked"] = s.deduper.Size()

	metrics.UpdateParticipantsTotal(participants)
	metrics.UpdateCompetitionsTotal(competitions)

	return out
}

// clamp returns at most n leading elements; n <= 0 means everything.
func clamp[T any](rows []T, n int) []T {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

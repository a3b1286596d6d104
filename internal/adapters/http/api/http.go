// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/podium/internal/domain/achievement"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/scoring"
	"github.com/okian/podium/internal/domain/stats"
	"github.com/okian/podium/internal/domain/trend"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations over the computed result set.
	MedalTable(ctx context.Context, n int) ([]stats.MedalRow, error)
	PointsLeaderboard(ctx context.Context, n int) ([]scoring.Row, error)
	ParticipantStats(ctx context.Context, id model.ParticipantID) (stats.ParticipantStats, trend.Trend, error)
	ParticipantAchievements(ctx context.Context, id model.ParticipantID) ([]achievement.Definition, error)
	Catalogue(ctx context.Context) []achievement.Definition
	LookupAchievement(ctx context.Context, id achievement.ID) (achievement.Definition, error)

	// Mutations over the result set.
	AddParticipant(ctx context.Context, p model.Participant) error
	AddCompetition(ctx context.Context, c model.Competition) (bool, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	leaderboardHandler  *LeaderboardHandler
	pointsHandler       *PointsHandler
	participantsHandler *ParticipantsHandler
	achievementsHandler *AchievementsHandler
	competitionsHandler *CompetitionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		leaderboardHandler:  NewLeaderboardHandler(deps, maxLimit),
		pointsHandler:       NewPointsHandler(deps, maxLimit),
		participantsHandler: NewParticipantsHandler(deps),
		achievementsHandler: NewAchievementsHandler(deps),
		competitionsHandler: NewCompetitionsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/points", MetricsMiddleware(s.pointsHandler.HandleGetPoints, "points"))
	mux.HandleFunc("/participants", MetricsMiddleware(s.participantsHandler.HandlePostParticipant, "participants"))
	mux.HandleFunc("/participants/", MetricsMiddleware(s.participantsHandler.HandleGetParticipant, "participants"))
	mux.HandleFunc("/achievements", MetricsMiddleware(s.achievementsHandler.HandleGetCatalogue, "achievements"))
	mux.HandleFunc("/achievements/", MetricsMiddleware(s.achievementsHandler.HandleGetAchievement, "achievements"))
	mux.HandleFunc("/competitions", MetricsMiddleware(s.competitionsHandler.HandlePostCompetition, "competitions"))
}

// participantRequest mirrors the JSON schema for POST /participants.
type participantRequest struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Nickname    string `json:"nickname"`
	Status      string `json:"status"`
}

func (p participantRequest) validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return errors.New("missing id")
	case strings.TrimSpace(p.DisplayName) == "":
		return errors.New("missing display_name")
	}
	return nil
}

// competitionRequest mirrors the JSON schema for POST /competitions. An
// empty or absent scores map is a valid cancelled year.
type competitionRequest struct {
	ID                 string         `json:"id"`
	Year               int            `json:"year"`
	Name               string         `json:"name"`
	Location           string         `json:"location"`
	Scores             map[string]int `json:"scores"`
	Arranger3rd        string         `json:"arranger_3rd"`
	ArrangerSecondLast string         `json:"arranger_second_last"`
}

func (c competitionRequest) validate() error {
	switch {
	case strings.TrimSpace(c.ID) == "":
		return errors.New("missing id")
	case c.Year < 1:
		return errors.New("missing year")
	}
	for id, rank := range c.Scores {
		if strings.TrimSpace(id) == "" {
			return errors.New("empty participant id in scores")
		}
		if rank < 1 {
			return errors.New("ranks must be positive")
		}
	}
	return nil
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

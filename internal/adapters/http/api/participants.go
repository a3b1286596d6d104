package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/achievement"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/stats"
	"github.com/okian/podium/internal/domain/trend"
)

// ParticipantDependencies defines the interface for participant operations.
type ParticipantDependencies interface {
	ParticipantStats(ctx context.Context, id model.ParticipantID) (stats.ParticipantStats, trend.Trend, error)
	ParticipantAchievements(ctx context.Context, id model.ParticipantID) ([]achievement.Definition, error)
	AddParticipant(ctx context.Context, p model.Participant) error
}

// ParticipantsHandler handles participant requests.
type ParticipantsHandler struct {
	deps ParticipantDependencies
}

// NewParticipantsHandler creates a new participants handler.
func NewParticipantsHandler(deps ParticipantDependencies) *ParticipantsHandler {
	return &ParticipantsHandler{deps: deps}
}

// participantStatsResponse bundles the derived stats with the trend block.
type participantStatsResponse struct {
	Stats stats.ParticipantStats `json:"stats"`
	Trend trend.Trend            `json:"trend"`
}

type participantAchievementsResponse struct {
	ParticipantID string                   `json:"participant_id"`
	Achievements  []achievement.Definition `json:"achievements"`
}

// HandlePostParticipant handles POST /participants requests.
func (h *ParticipantsHandler) HandlePostParticipant(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_participant"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req participantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	p := model.Participant{
		ID:          model.ParticipantID(req.ID),
		DisplayName: req.DisplayName,
		Nickname:    req.Nickname,
		Status:      model.Status(req.Status),
	}
	if err := h.deps.AddParticipant(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}

// HandleGetParticipant handles GET /participants/{id}/stats and
// GET /participants/{id}/achievements requests.
func (h *ParticipantsHandler) HandleGetParticipant(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_participant"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/participants/")
	id, resource, ok := strings.Cut(path, "/")
	if !ok || id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch resource {
	case "stats":
		st, tr, err := h.deps.ParticipantStats(r.Context(), model.ParticipantID(id))
		if err != nil {
			h.writeParticipantError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, participantStatsResponse{Stats: st, Trend: tr})

	case "achievements":
		defs, err := h.deps.ParticipantAchievements(r.Context(), model.ParticipantID(id))
		if err != nil {
			h.writeParticipantError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, participantAchievementsResponse{
			ParticipantID: id,
			Achievements:  defs,
		})

	default:
		http.NotFound(w, r)
	}
}

func (h *ParticipantsHandler) writeParticipantError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, service.ErrUnknownParticipant) {
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/model"
)

// CompetitionDependencies defines the interface for competition ingestion.
type CompetitionDependencies interface {
	AddCompetition(ctx context.Context, c model.Competition) (bool, error)
}

// CompetitionsHandler handles competition ingestion requests.
type CompetitionsHandler struct {
	deps CompetitionDependencies
}

// NewCompetitionsHandler creates a new competitions handler.
func NewCompetitionsHandler(deps CompetitionDependencies) *CompetitionsHandler {
	return &CompetitionsHandler{deps: deps}
}

// HandlePostCompetition handles POST /competitions requests. Replays of an
// already recorded competition id are acknowledged as duplicates rather
// than rejected, so retrying clients stay idempotent.
func (h *CompetitionsHandler) HandlePostCompetition(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_competition"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req competitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	c := model.Competition{
		ID:                 req.ID,
		Year:               req.Year,
		Name:               req.Name,
		Location:           req.Location,
		Scores:             make(map[model.ParticipantID]model.Rank, len(req.Scores)),
		Arranger3rd:        model.ParticipantID(req.Arranger3rd),
		ArrangerSecondLast: model.ParticipantID(req.ArrangerSecondLast),
	}
	for id, rank := range req.Scores {
		c.Scores[model.ParticipantID(id)] = model.Rank(rank)
	}

	duplicate, err := h.deps.AddCompetition(r.Context(), c)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownParticipant) || errors.Is(err, repository.ErrInvalidRank) {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}

package api

import (
	"context"
	"net/http"

	"github.com/okian/podium/internal/domain/scoring"
)

// PointsDependencies defines the interface for points leaderboard reads.
type PointsDependencies interface {
	PointsLeaderboard(ctx context.Context, n int) ([]scoring.Row, error)
}

// PointsHandler handles achievement points leaderboard requests.
type PointsHandler struct {
	deps     PointsDependencies
	maxLimit int
}

// NewPointsHandler creates a new points handler.
func NewPointsHandler(deps PointsDependencies, maxLimit int) *PointsHandler {
	return &PointsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetPoints handles GET /points?limit=N requests.
func (h *PointsHandler) HandleGetPoints(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_points"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n, err := parseLimit(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	rows, err := h.deps.PointsLeaderboard(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

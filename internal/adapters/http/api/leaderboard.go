package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/podium/internal/domain/stats"
)

// LeaderboardDependencies defines the interface for medal table reads.
type LeaderboardDependencies interface {
	MedalTable(ctx context.Context, n int) ([]stats.MedalRow, error)
}

// LeaderboardHandler handles medal table requests.
type LeaderboardHandler struct {
	deps     LeaderboardDependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetLeaderboard handles GET /leaderboard?limit=N requests. The limit
// is optional and defaults to the configured maximum.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n, err := parseLimit(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	rows, err := h.deps.MedalTable(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// parseLimit reads ?limit=N, defaulting to maxLimit and rejecting values
// outside [1, maxLimit].
func parseLimit(r *http.Request, maxLimit int) (int, error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return maxLimit, nil
	}
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		return 0, ErrBadRequest
	}
	if n > maxLimit {
		return 0, ErrBadRequest
	}
	return n, nil
}

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/podium/internal/domain/achievement"
)

// AchievementDependencies defines the interface for catalogue reads.
type AchievementDependencies interface {
	Catalogue(ctx context.Context) []achievement.Definition
	LookupAchievement(ctx context.Context, id achievement.ID) (achievement.Definition, error)
}

// AchievementsHandler handles catalogue requests.
type AchievementsHandler struct {
	deps AchievementDependencies
}

// NewAchievementsHandler creates a new achievements handler.
func NewAchievementsHandler(deps AchievementDependencies) *AchievementsHandler {
	return &AchievementsHandler{deps: deps}
}

// HandleGetCatalogue handles GET /achievements requests.
func (h *AchievementsHandler) HandleGetCatalogue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Catalogue(r.Context()))
}

// HandleGetAchievement handles GET /achievements/{id} requests.
func (h *AchievementsHandler) HandleGetAchievement(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_achievement"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/achievements/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	def, err := h.deps.LookupAchievement(r.Context(), achievement.ID(id))
	if err != nil {
		if errors.Is(err, achievement.ErrUnknownAchievement) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, def)
}

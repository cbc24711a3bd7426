package handler

import (
	"net/http"
	"strconv"

	"github.com/predictle/predictle/internal/domain"
	"github.com/predictle/predictle/internal/logger"
	"github.com/predictle/predictle/internal/stats"
)

// LeaderboardResponse lists users ranked by XP
type LeaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
	Count   int                       `json:"count"`
}

// HandleGetLeaderboard returns the XP leaderboard. The optional limit query
// parameter caps the number of rows; bad values fall back to the default.
func HandleGetLeaderboard(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		limit := 0
		if raw := GetOptionalQueryParam(r, "limit", ""); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				log.Warn("Ignoring invalid leaderboard limit", "limit", raw)
			} else {
				limit = parsed
			}
		}

		entries, err := svc.GetLeaderboard(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "Get leaderboard", err)
			return
		}

		respondJSON(w, http.StatusOK, LeaderboardResponse{
			Entries: entries,
			Count:   len(entries),
		})
	}
}

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/predictle/predictle/internal/domain"
	"github.com/predictle/predictle/internal/logger"
	"github.com/predictle/predictle/internal/prediction"
)

// ResolveRequest carries the declared outcome for a manual resolution
type ResolveRequest struct {
	Outcome string `json:"outcome" validate:"required,choice"`
}

// HandleResolvePrediction finalises a prediction with the given outcome and
// pays winners their bonus. Resolving twice returns a conflict.
func HandleResolvePrediction(svc prediction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		predictionID := chi.URLParam(r, "predictionID")

		var req ResolveRequest
		if err := DecodeAndValidateRequest(r, w, &req, "resolve prediction"); err != nil {
			return
		}

		result, err := svc.Resolve(r.Context(), predictionID, domain.Choice(req.Outcome))
		if err != nil {
			respondServiceError(w, r, "Resolve prediction", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleCancelPrediction closes a prediction without paying any rewards
func HandleCancelPrediction(svc prediction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		predictionID := chi.URLParam(r, "predictionID")

		if err := svc.Cancel(r.Context(), predictionID); err != nil {
			respondServiceError(w, r, "Cancel prediction", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Prediction cancelled"})
	}
}

// PredictionVotesResponse lists every vote on a prediction
type PredictionVotesResponse struct {
	PredictionID string        `json:"prediction_id"`
	Votes        []domain.Vote `json:"votes"`
	Count        int           `json:"count"`
}

// HandleListPredictionVotes returns all votes on a prediction, oldest first,
// for auditing an outcome after the fact.
func HandleListPredictionVotes(svc prediction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		predictionID := chi.URLParam(r, "predictionID")

		votes, err := svc.ListVotes(r.Context(), predictionID)
		if err != nil {
			respondServiceError(w, r, "List prediction votes", err)
			return
		}

		respondJSON(w, http.StatusOK, PredictionVotesResponse{
			PredictionID: predictionID,
			Votes:        votes,
			Count:        len(votes),
		})
	}
}

// HandleSweepExpired runs the expiry sweep immediately instead of waiting
// for the next scheduled run.
func HandleSweepExpired(svc prediction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		result, err := svc.SweepExpired(r.Context(), time.Now())
		if err != nil {
			respondServiceError(w, r, "Sweep expired predictions", err)
			return
		}

		log.Info("Manual sweep completed",
			"resolved", result.Resolved,
			"skipped", result.Skipped,
			"failed", result.Failed)
		respondJSON(w, http.StatusOK, result)
	}
}

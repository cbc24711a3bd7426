package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/predictle/predictle/internal/domain"
	"github.com/predictle/predictle/internal/prediction"
)

// CreatePredictionRequest is the payload for creating a prediction. The
// correct answer is required up front and never echoed back to voters.
type CreatePredictionRequest struct {
	CreatorID     string    `json:"creator_id" validate:"required,uuid"`
	Question      string    `json:"question" validate:"required,max=500"`
	Description   string    `json:"description" validate:"max=2000"`
	Category      string    `json:"category" validate:"max=100"`
	EndDate       time.Time `json:"end_date" validate:"required"`
	CorrectAnswer string    `json:"correct_answer" validate:"required,choice"`
}

// HandleCreatePrediction creates a new prediction with a hidden correct answer
func HandleCreatePrediction(svc prediction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePredictionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "create prediction"); err != nil {
			return
		}

		p, err := svc.Create(r.Context(), prediction.CreateRequest{
			CreatorID:     req.CreatorID,
			Question:      req.Question,
			Description:   req.Description,
			Category:      req.Category,
			EndDate:       req.EndDate,
			CorrectAnswer: domain.Choice(req.CorrectAnswer),
		})
		if err != nil {
			respondServiceError(w, r, "Create prediction", err)
			return
		}

		respondJSON(w, http.StatusCreated, p)
	}
}

// ActivePredictionsResponse lists open predictions
type ActivePredictionsResponse struct {
	Predictions []domain.Prediction `json:"predictions"`
	Count       int                 `json:"count"`
}

// HandleListActivePredictions returns all currently open predictions
func HandleListActivePredictions(svc prediction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		predictions, err := svc.ListActive(r.Context())
		if err != nil {
			respondServiceError(w, r, "List active predictions", err)
			return
		}

		respondJSON(w, http.StatusOK, ActivePredictionsResponse{
			Predictions: predictions,
			Count:       len(predictions),
		})
	}
}

// HandleGetPrediction returns a single prediction by ID
func HandleGetPrediction(svc prediction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		predictionID := chi.URLParam(r, "predictionID")

		p, err := svc.Get(r.Context(), predictionID)
		if err != nil {
			respondServiceError(w, r, "Get prediction", err)
			return
		}

		respondJSON(w, http.StatusOK, p)
	}
}

// UserVoteResponse reports whether the user has voted on a prediction and,
// if so, with which choice.
type UserVoteResponse struct {
	Vote     *domain.Vote `json:"vote"`
	HasVoted bool         `json:"has_voted"`
}

// HandleGetUserVote returns the caller's existing vote on a prediction so the
// client can show the chosen side and lock out a second vote.
func HandleGetUserVote(svc prediction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		predictionID := chi.URLParam(r, "predictionID")
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		v, err := svc.GetUserVote(r.Context(), userID, predictionID)
		if err != nil {
			respondServiceError(w, r, "Get user vote", err)
			return
		}

		respondJSON(w, http.StatusOK, UserVoteResponse{Vote: v, HasVoted: v != nil})
	}
}

// VoteRequest is the payload for casting a vote
type VoteRequest struct {
	UserID       string `json:"user_id" validate:"required,uuid"`
	PredictionID string `json:"prediction_id" validate:"required,uuid"`
	Choice       string `json:"choice" validate:"required,choice"`
}

// VoteResponse confirms the recorded vote and the XP granted for it
type VoteResponse struct {
	Vote     *domain.Vote `json:"vote"`
	XPEarned int          `json:"xp_earned"`
}

// HandleCastVote records a yes/no vote and grants the participation reward
func HandleCastVote(svc prediction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VoteRequest
		if err := DecodeAndValidateRequest(r, w, &req, "vote"); err != nil {
			return
		}

		v, err := svc.CastVote(r.Context(), req.UserID, req.PredictionID, domain.Choice(req.Choice))
		if err != nil {
			respondServiceError(w, r, "Cast vote", err)
			return
		}

		respondJSON(w, http.StatusCreated, VoteResponse{
			Vote:     v,
			XPEarned: prediction.ParticipationXP,
		})
	}
}

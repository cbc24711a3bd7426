package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/predictle/predictle/internal/domain"
	"github.com/predictle/predictle/internal/logger"
	"github.com/predictle/predictle/internal/stats"
	"github.com/predictle/predictle/internal/user"
)

// LoginRequest is the payload for login-or-register
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// LoginResponse returns the account plus whether it was just created
type LoginResponse struct {
	User    *domain.User `json:"user"`
	Created bool         `json:"created"`
}

// UserProfileResponse wraps a user with the derived success rate
type UserProfileResponse struct {
	User        *domain.User `json:"user"`
	SuccessRate int          `json:"success_rate"`
}

// HandleLogin processes login-or-register by email. Registration returns
// 201, an existing account returns 200 with the same shape.
func HandleLogin(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := DecodeAndValidateRequest(r, w, &req, "login"); err != nil {
			return
		}

		u, created, err := svc.LoginOrRegister(r.Context(), req.Email)
		if err != nil {
			respondServiceError(w, r, "Login", err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		respondJSON(w, status, LoginResponse{User: u, Created: created})
	}
}

// HandleGetUser returns a user's profile with derived stats
func HandleGetUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		u, err := svc.GetUser(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get user", err)
			return
		}

		respondJSON(w, http.StatusOK, UserProfileResponse{
			User:        u,
			SuccessRate: u.SuccessRate(),
		})
	}
}

// UserHistoryResponse lists resolved predictions the user voted on
type UserHistoryResponse struct {
	UserID  string                          `json:"user_id"`
	History []domain.ResolvedPredictionView `json:"history"`
}

// HandleGetUserHistory returns the user's resolved-prediction history,
// newest first, with the XP each vote earned.
func HandleGetUserHistory(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		log := logger.FromContext(r.Context())

		history, err := svc.GetUserResolvedHistory(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get user history", err)
			return
		}

		log.Debug("User history served", "user_id", userID, "entries", len(history))
		respondJSON(w, http.StatusOK, UserHistoryResponse{
			UserID:  userID,
			History: history,
		})
	}
}

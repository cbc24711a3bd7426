package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/predictle/predictle/internal/domain"
	"github.com/predictle/predictle/internal/prediction"
)

const (
	testUserID       = "7d8f4d5e-9f3a-4b2c-8d1e-6f5a4b3c2d1e"
	testPredictionID = "1a2b3c4d-5e6f-4a8b-9c0d-1e2f3a4b5c6d"
)

func TestHandleCreatePrediction(t *testing.T) {
	var captured prediction.CreateRequest
	svc := &fakePredictionService{
		createFn: func(_ context.Context, req prediction.CreateRequest) (*domain.Prediction, error) {
			captured = req
			return &domain.Prediction{ID: testPredictionID, Question: req.Question, Status: domain.PredictionActive}, nil
		},
	}

	body := fmt.Sprintf(`{
		"creator_id": %q,
		"question": "Will it snow in December?",
		"category": "weather",
		"end_date": %q,
		"correct_answer": "yes"
	}`, testUserID, time.Now().Add(24*time.Hour).Format(time.RFC3339))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/prediction", strings.NewReader(body))
	rec := httptest.NewRecorder()
	HandleCreatePrediction(svc)(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, testUserID, captured.CreatorID)
	assert.Equal(t, domain.ChoiceYes, captured.CorrectAnswer)

	// The hidden answer must not appear in the response body.
	assert.NotContains(t, rec.Body.String(), "correct_answer")
}

func TestHandleCreatePrediction_BadRequests(t *testing.T) {
	svc := &fakePredictionService{
		createFn: func(_ context.Context, _ prediction.CreateRequest) (*domain.Prediction, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	endDate := time.Now().Add(time.Hour).Format(time.RFC3339)
	tests := []struct {
		name string
		body string
	}{
		{"missing question", fmt.Sprintf(`{"creator_id":%q,"end_date":%q,"correct_answer":"yes"}`, testUserID, endDate)},
		{"bad answer", fmt.Sprintf(`{"creator_id":%q,"question":"q","end_date":%q,"correct_answer":"maybe"}`, testUserID, endDate)},
		{"creator not a uuid", fmt.Sprintf(`{"creator_id":"bob","question":"q","end_date":%q,"correct_answer":"no"}`, endDate)},
		{"missing end date", fmt.Sprintf(`{"creator_id":%q,"question":"q","correct_answer":"no"}`, testUserID)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/prediction", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			HandleCreatePrediction(svc)(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleListActivePredictions(t *testing.T) {
	svc := &fakePredictionService{
		listActiveFn: func(_ context.Context) ([]domain.Prediction, error) {
			return []domain.Prediction{
				{ID: "p1", Question: "one", Status: domain.PredictionActive, CorrectAnswer: domain.ChoiceYes},
				{ID: "p2", Question: "two", Status: domain.PredictionActive, CorrectAnswer: domain.ChoiceNo},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/prediction/active", nil)
	rec := httptest.NewRecorder()
	HandleListActivePredictions(svc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ActivePredictionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Predictions, 2)

	// Answers stay hidden while predictions are open.
	assert.NotContains(t, rec.Body.String(), "correct_answer")
}

func TestHandleGetUserVote(t *testing.T) {
	svc := &fakePredictionService{
		userVoteFn: func(_ context.Context, userID, predictionID string) (*domain.Vote, error) {
			if userID == testUserID {
				return &domain.Vote{ID: "v1", UserID: userID, PredictionID: predictionID, Choice: domain.ChoiceYes}, nil
			}
			return nil, nil
		},
	}

	r := chi.NewRouter()
	r.Get("/prediction/{predictionID}/vote", HandleGetUserVote(svc))

	// Existing vote is returned with has_voted set.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/prediction/"+testPredictionID+"/vote?user_id="+testUserID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UserVoteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.HasVoted)
	require.NotNil(t, resp.Vote)
	assert.Equal(t, domain.ChoiceYes, resp.Vote.Choice)

	// No vote yet: has_voted false, vote null.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/prediction/"+testPredictionID+"/vote?user_id=someone-else", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	resp = UserVoteResponse{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.HasVoted)
	assert.Nil(t, resp.Vote)

	// Missing user_id is a bad request.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/prediction/"+testPredictionID+"/vote", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCastVote(t *testing.T) {
	svc := &fakePredictionService{
		castVoteFn: func(_ context.Context, userID, predictionID string, choice domain.Choice) (*domain.Vote, error) {
			return &domain.Vote{ID: "v1", UserID: userID, PredictionID: predictionID, Choice: choice}, nil
		},
	}

	body := fmt.Sprintf(`{"user_id":%q,"prediction_id":%q,"choice":"no"}`, testUserID, testPredictionID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/prediction/vote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	HandleCastVote(svc)(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp VoteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, prediction.ParticipationXP, resp.XPEarned)
	assert.Equal(t, domain.ChoiceNo, resp.Vote.Choice)
}

func TestHandleCastVote_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"duplicate vote", domain.ErrDuplicateVote, http.StatusConflict},
		{"prediction closed", domain.ErrPredictionClosed, http.StatusConflict},
		{"prediction missing", domain.ErrPredictionNotFound, http.StatusNotFound},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakePredictionService{
				castVoteFn: func(_ context.Context, _, _ string, _ domain.Choice) (*domain.Vote, error) {
					return nil, tt.err
				},
			}

			body := fmt.Sprintf(`{"user_id":%q,"prediction_id":%q,"choice":"yes"}`, testUserID, testPredictionID)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/prediction/vote", strings.NewReader(body))
			rec := httptest.NewRecorder()
			HandleCastVote(svc)(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

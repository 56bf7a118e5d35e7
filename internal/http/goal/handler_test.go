package goal_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savvy/internal/analytics"
	"github.com/MrJamesThe3rd/savvy/internal/goal"
	goalHandler "github.com/MrJamesThe3rd/savvy/internal/http/goal"
	"github.com/MrJamesThe3rd/savvy/internal/http/auth"
)

var (
	userID = uuid.MustParse("1d2c3b4a-5e6f-4a7b-9c8d-0e1f2a3b4c5d")
	now    = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
)

func newRouter(repo goal.Repository) http.Handler {
	h := goalHandler.NewHandler(goal.NewService(repo)).WithClock(func() time.Time { return now })

	r := chi.NewRouter()
	r.Use(auth.Static(userID))
	r.Route("/goals", h.Routes)

	return r
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *goal.MockRepository)
		wantStatus int
	}{
		{
			name: "Created",
			body: `{"name":"Emergency fund","target_amount":"100000","target_date":"2025-12-31"}`,
			setupMock: func(m *goal.MockRepository) {
				m.EXPECT().
					CreateGoal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, g *goal.Goal) error {
						require.NotNil(t, g.TargetDate)
						assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), *g.TargetDate)
						g.ID = uuid.New()

						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MissingName",
			body:       `{"name":" ","target_amount":100}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "ZeroTarget",
			body:       `{"name":"Laptop","target_amount":0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "BadDate",
			body:       `{"name":"Laptop","target_amount":10,"target_date":"next year"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := goal.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := httptest.NewRecorder()
			newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/goals/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_AddProgress(t *testing.T) {
	id := uuid.New()

	t.Run("CompletesGoal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := goal.NewMockRepository(ctrl)
		repo.EXPECT().GetGoal(gomock.Any(), userID, id).Return(&goal.Goal{
			ID:            id,
			UserID:        userID,
			Name:          "Phone",
			TargetAmount:  decimal.NewFromInt(30000),
			CurrentAmount: decimal.NewFromInt(25000),
		}, nil)
		repo.EXPECT().
			UpdateProgress(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, g *goal.Goal) error {
				assert.True(t, g.IsCompleted)
				return nil
			})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/goals/"+id.String()+"/progress", strings.NewReader(`{"amount":5000}`))
		newRouter(repo).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got goalHandler.GoalResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.True(t, got.IsCompleted)
		assert.Equal(t, analytics.GoalCompleted, got.Status)
		assert.InDelta(t, 100.0, got.Percentage, 0.001)
	})

	t.Run("NonPositive", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/goals/"+id.String()+"/progress", strings.NewReader(`{"amount":"0"}`))
		newRouter(nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := goal.NewMockRepository(ctrl)
		repo.EXPECT().GetGoal(gomock.Any(), userID, id).Return(nil, goal.ErrNotFound)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/goals/"+id.String()+"/progress", strings.NewReader(`{"amount":10}`))
		newRouter(repo).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	due := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	repo := goal.NewMockRepository(ctrl)
	repo.EXPECT().ListGoals(gomock.Any(), userID).Return([]*goal.Goal{
		{ID: uuid.New(), Name: "Holiday", TargetAmount: decimal.NewFromInt(1000), CurrentAmount: decimal.NewFromInt(800), TargetDate: &due},
	}, nil)

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/goals/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []goalHandler.GoalResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	require.NotNil(t, got[0].DaysLeft)
	assert.Equal(t, 10, *got[0].DaysLeft)
	assert.Equal(t, analytics.GoalAlmostThere, got[0].Status)
	assert.Equal(t, "2025-06-11", got[0].TargetDate)
}

func TestHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := goal.NewMockRepository(ctrl)
	repo.EXPECT().DeleteGoal(gomock.Any(), userID, id).Return(nil)

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/goals/"+id.String(), nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

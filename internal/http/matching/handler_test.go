package matching_test

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savvy/internal/http/auth"
	matchingHandler "github.com/MrJamesThe3rd/savvy/internal/http/matching"
	"github.com/MrJamesThe3rd/savvy/internal/matching"
)

var userID = uuid.MustParse("f0e1d2c3-b4a5-4968-8778-695a4b3c2d1e")

func newRouter(repo matching.Repository) http.Handler {
	r := chi.NewRouter()
	r.Use(auth.Static(userID))
	r.Route("/rules", matchingHandler.NewHandler(matching.NewService(repo)).Routes)

	return r
}

func TestHandler_Suggest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().ListRules(gomock.Any(), userID).Return([]*matching.Rule{
		{Pattern: "KPLC", Category: "Bills & Utilities", CreatedAt: time.Now()},
		{Pattern: "uber", Category: "Transportation", CreatedAt: time.Now()},
	}, nil)

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rules/suggest?description=Pay+Bill+to+KPLC+PREPAID", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Category string `json:"category"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Bills & Utilities", got.Category)
}

func TestHandler_Suggest_MissingDescription(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rules/suggest", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Learn(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *matching.MockRepository)
		wantStatus int
	}{
		{
			name: "Created",
			body: `{"pattern":" naivas ","category":"Food & Dining"}`,
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().
					CreateRule(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *matching.Rule) error {
						assert.Equal(t, "naivas", r.Pattern)
						assert.Equal(t, userID, r.UserID)
						r.ID = uuid.New()

						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Empty",
			body:       `{"pattern":"","category":"Food & Dining"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate",
			body: `{"pattern":"naivas","category":"Shopping"}`,
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().CreateRule(gomock.Any(), gomock.Any()).Return(matching.ErrAlreadyExists)
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := httptest.NewRecorder()
			newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rules/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

package export_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savvy/internal/export"
	exportHandler "github.com/MrJamesThe3rd/savvy/internal/http/export"
	"github.com/MrJamesThe3rd/savvy/internal/http/auth"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

var (
	userID = uuid.MustParse("2a3b4c5d-6e7f-4809-a1b2-c3d4e5f60718")
	now    = time.Date(2025, 6, 18, 8, 0, 0, 0, time.UTC)
)

func newRouter(repo transaction.Repository) http.Handler {
	svc := export.NewService(transaction.NewService(repo)).WithClock(func() time.Time { return now })

	r := chi.NewRouter()
	r.Use(auth.Static(userID))
	r.Route("/export", exportHandler.NewHandler(svc).Routes)

	return r
}

func rows() []*transaction.Transaction {
	return []*transaction.Transaction{
		{Type: transaction.TypeExpense, Category: "Food & Dining", Description: "Lunch", Amount: decimal.NewFromInt(450), Date: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)},
	}
}

func TestHandler_Download(t *testing.T) {
	tests := []struct {
		name            string
		query           string
		wantType        string
		wantFilename    string
		wantBodyPrefix  string
		wantStartFilter bool
	}{
		{
			name:           "DefaultsToCSVAll",
			query:          "",
			wantType:       "text/csv; charset=utf-8",
			wantFilename:   `attachment; filename="financial-data-all-2025-06-18.csv"`,
			wantBodyPrefix: "Date,Type,Category,Description,Amount\n",
		},
		{
			name:            "PDFQuarter",
			query:           "?format=pdf&range=quarter",
			wantType:        "application/pdf",
			wantFilename:    `attachment; filename="financial-report-quarter-2025-06-18.pdf"`,
			wantBodyPrefix:  "%PDF-",
			wantStartFilter: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			repo.EXPECT().
				ListTransactions(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, f transaction.ListFilter) ([]*transaction.Transaction, error) {
					assert.Equal(t, userID, f.UserID)
					assert.Equal(t, tt.wantStartFilter, f.StartDate != nil)

					return rows(), nil
				})

			rec := httptest.NewRecorder()
			newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantFilename, rec.Header().Get("Content-Disposition"))
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte(tt.wantBodyPrefix)))
		})
	}
}

func TestHandler_Download_Errors(t *testing.T) {
	t.Run("BadFormat", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/?format=xlsx", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("BadRange", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/?range=decade", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, errors.New("relation does not exist"))

		rec := httptest.NewRecorder()
		newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "failed to export data")
		assert.NotContains(t, rec.Body.String(), "relation")
	})
}

package chart_test

import (
	"bytes"
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

	"github.com/MrJamesThe3rd/savvy/internal/budget"
	chartHandler "github.com/MrJamesThe3rd/savvy/internal/http/chart"
	"github.com/MrJamesThe3rd/savvy/internal/http/auth"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

var (
	userID   = uuid.MustParse("8e7d6c5b-4a39-4281-9f0e-1d2c3b4a5968")
	now      = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	pngMagic = []byte("\x89PNG\r\n\x1a\n")
)

func sample() []*transaction.Transaction {
	return []*transaction.Transaction{
		{Type: transaction.TypeIncome, Category: "Salary", Amount: decimal.NewFromInt(60000), Date: time.Date(2025, 5, 28, 0, 0, 0, 0, time.UTC)},
		{Type: transaction.TypeExpense, Category: "Food & Dining", Amount: decimal.NewFromInt(4200), Date: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
		{Type: transaction.TypeExpense, Category: "Shopping", Amount: decimal.NewFromInt(2600), Date: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
	}
}

func newRouter(t *testing.T, txs []*transaction.Transaction, budgets []*budget.Budget) http.Handler {
	ctrl := gomock.NewController(t)

	txRepo := transaction.NewMockRepository(ctrl)
	txRepo.EXPECT().ListTransactions(gomock.Any(), transaction.ListFilter{UserID: userID}).Return(txs, nil)

	budgetRepo := budget.NewMockRepository(ctrl)
	budgetRepo.EXPECT().ListBudgets(gomock.Any(), userID).Return(budgets, nil).AnyTimes()

	h := chartHandler.NewHandler(transaction.NewService(txRepo), budget.NewService(budgetRepo)).
		WithClock(func() time.Time { return now })

	r := chi.NewRouter()
	r.Use(auth.Static(userID))
	r.Route("/charts", h.Routes)

	return r
}

func TestHandler_Charts(t *testing.T) {
	budgets := []*budget.Budget{{Category: "Food & Dining", Amount: decimal.NewFromInt(10000)}}

	for _, name := range []string{"categories", "monthly", "weekly", "budgets"} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(t, sample(), budgets).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charts/"+name+".png", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), pngMagic))
		})
	}
}

func TestHandler_MonthlySingleMonth(t *testing.T) {
	june := sample()[1:]

	rec := httptest.NewRecorder()
	newRouter(t, june, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charts/monthly.png", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), pngMagic))
}

func TestHandler_Charts_NoData(t *testing.T) {
	for _, name := range []string{"categories", "monthly", "weekly", "budgets"} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(t, nil, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charts/"+name+".png", nil))

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Empty(t, rec.Body.Bytes())
		})
	}
}

package export_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savvy/internal/export"
	"github.com/MrJamesThe3rd/savvy/internal/report"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

var (
	userID = uuid.New()
	now    = time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)
)

func TestService_Build(t *testing.T) {
	t.Run("RangeSetsStartDate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().
			ListTransactions(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f transaction.ListFilter) ([]*transaction.Transaction, error) {
				assert.Equal(t, userID, f.UserID)
				require.NotNil(t, f.StartDate)
				assert.Equal(t, time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC), *f.StartDate)
				assert.Nil(t, f.EndDate)

				return []*transaction.Transaction{
					{Type: transaction.TypeIncome, Amount: decimal.NewFromInt(1000), Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
				}, nil
			})

		svc := export.NewService(transaction.NewService(repo)).WithClock(func() time.Time { return now })

		rep, err := svc.Build(context.Background(), userID, report.RangeMonth)
		require.NoError(t, err)
		assert.Len(t, rep.Transactions, 1)
		assert.True(t, rep.Totals.Income.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("AllHasNoStartDate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().
			ListTransactions(gomock.Any(), transaction.ListFilter{UserID: userID}).
			Return(nil, nil)

		svc := export.NewService(transaction.NewService(repo)).WithClock(func() time.Time { return now })

		rep, err := svc.Build(context.Background(), userID, report.RangeAll)
		require.NoError(t, err)
		assert.Empty(t, rep.Transactions)
	})

	t.Run("RepoError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

		svc := export.NewService(transaction.NewService(repo))

		_, err := svc.Build(context.Background(), userID, report.RangeYear)
		assert.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	rep := report.New([]*transaction.Transaction{
		{Type: transaction.TypeExpense, Category: "Food & Dining", Description: "Lunch", Amount: decimal.NewFromInt(450), Date: now},
	}, report.RangeMonth, now)

	dir := filepath.Join(t.TempDir(), "exports")

	tests := []struct {
		format report.Format
		file   string
		prefix string
	}{
		{report.FormatCSV, "financial-data-month-2025-06-18.csv", "Date,Type"},
		{report.FormatPDF, "financial-report-month-2025-06-18.pdf", "%PDF-"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			path, err := export.Save(rep, tt.format, dir)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.file), path)

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(content), tt.prefix))
		})
	}
}

func TestWrite_InvalidFormat(t *testing.T) {
	rep := report.New(nil, report.RangeAll, now)

	var buf bytes.Buffer
	err := export.Write(&buf, rep, report.Format("xlsx"))
	assert.ErrorIs(t, err, report.ErrInvalidFormat)
	assert.Zero(t, buf.Len())
}

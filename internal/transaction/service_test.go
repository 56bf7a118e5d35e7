package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

var userID = uuid.MustParse("7d1f4b8e-3c2a-4f5e-9a1b-2c3d4e5f6a7b")

func validParams() transaction.CreateParams {
	return transaction.CreateParams{
		UserID:      userID,
		Type:        transaction.TypeExpense,
		Category:    "Food & Dining",
		Description: "Lunch",
		Amount:      decimal.NewFromInt(450),
		Date:        time.Date(2025, 3, 14, 13, 30, 0, 0, time.UTC),
	}
}

func TestService_Create(t *testing.T) {
	type args struct {
		params transaction.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantErr   error
		anyErr    bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: validParams()},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), tx.Date)
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()

						return nil
					})
			},
		},
		{
			name: "ZeroAmountAllowed",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.Amount = decimal.Zero

				return p
			}()},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "NegativeAmount",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.Amount = decimal.NewFromInt(-1)

				return p
			}()},
			wantErr: transaction.ErrNegativeAmount,
		},
		{
			name: "InvalidType",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.Type = "transfer"

				return p
			}()},
			wantErr: transaction.ErrInvalidType,
		},
		{
			name: "MissingCategory",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.Category = "  "

				return p
			}()},
			wantErr: transaction.ErrMissingField,
		},
		{
			name: "MissingDate",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.Date = time.Time{}

				return p
			}()},
			wantErr: transaction.ErrMissingField,
		},
		{
			name: "RepoError",
			args: args{params: validParams()},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			if tt.anyErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, userID, got.UserID)
		})
	}
}

func TestService_List(t *testing.T) {
	type testCase struct {
		name      string
		filter    transaction.ListFilter
		setupMock func(m *transaction.MockRepository)
		wantLen   int
		wantErr   bool
	}

	expense := transaction.TypeExpense

	tests := []testCase{
		{
			name:   "Success",
			filter: transaction.ListFilter{UserID: userID, Type: &expense},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), transaction.ListFilter{UserID: userID, Type: &expense}).
					Return([]*transaction.Transaction{
						{ID: uuid.New()},
						{ID: uuid.New()},
					}, nil)
			},
			wantLen: 2,
		},
		{
			name:   "Error",
			filter: transaction.ListFilter{UserID: userID},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), transaction.ListFilter{UserID: userID}).
					Return(nil, errors.New("list error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := transaction.NewService(repo)
			got, err := svc.List(context.Background(), tt.filter)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().DeleteTransaction(gomock.Any(), userID, id).Return(nil)

	svc := transaction.NewService(repo)
	assert.NoError(t, svc.Delete(context.Background(), userID, id))
}

func TestService_ImportBatch(t *testing.T) {
	march := func(day int) time.Time { return time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC) }

	incoming := []transaction.CreateParams{
		{Type: transaction.TypeExpense, Category: "Transportation", Description: "Matatu fare", Amount: decimal.NewFromInt(100), Date: march(3)},
		{Type: transaction.TypeIncome, Category: "Salary", Description: "March salary", Amount: decimal.NewFromInt(85000), Date: march(1)},
	}

	t.Run("NoConflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		itx := transaction.NewMockImportTx(ctrl)

		repo.EXPECT().BeginImport(gomock.Any(), userID, march(1), march(3)).Return(itx, nil)
		itx.EXPECT().FindDuplicates(gomock.Any(), gomock.Len(2)).Return(nil, nil)
		itx.EXPECT().CreateTransactions(gomock.Any(), gomock.Len(2)).Return(nil)
		itx.EXPECT().Commit().Return(nil)
		itx.EXPECT().Rollback().Return(nil)

		svc := transaction.NewService(repo)
		got, err := svc.ImportBatch(context.Background(), userID, append([]transaction.CreateParams(nil), incoming...))
		require.NoError(t, err)
		assert.Len(t, got.Imported, 2)
		assert.Empty(t, got.Conflicts)
		assert.Equal(t, userID, got.Imported[0].UserID)
	})

	t.Run("Conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		itx := transaction.NewMockImportTx(ctrl)

		existing := &transaction.Transaction{
			ID:          uuid.New(),
			Type:        transaction.TypeExpense,
			Description: "MATATU FARE",
			Amount:      decimal.RequireFromString("100.00"),
			Date:        march(3),
		}

		repo.EXPECT().BeginImport(gomock.Any(), userID, gomock.Any(), gomock.Any()).Return(itx, nil)
		itx.EXPECT().FindDuplicates(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{existing}, nil)
		itx.EXPECT().Rollback().Return(nil)

		svc := transaction.NewService(repo)
		got, err := svc.ImportBatch(context.Background(), userID, append([]transaction.CreateParams(nil), incoming...))
		require.NoError(t, err)
		assert.Empty(t, got.Imported)
		require.Len(t, got.Conflicts, 1)
		assert.Equal(t, existing, got.Conflicts[0].Existing)
		require.Len(t, got.New, 1)
		assert.Equal(t, "March salary", got.New[0].Description)
	})

	t.Run("Empty", func(t *testing.T) {
		svc := transaction.NewService(nil)
		got, err := svc.ImportBatch(context.Background(), userID, nil)
		require.NoError(t, err)
		assert.Empty(t, got.Imported)
	})

	t.Run("InvalidRow", func(t *testing.T) {
		svc := transaction.NewService(nil)
		bad := []transaction.CreateParams{{Type: transaction.TypeExpense, Date: march(1)}}

		_, err := svc.ImportBatch(context.Background(), userID, bad)
		assert.ErrorIs(t, err, transaction.ErrMissingField)
	})
}

func TestTransaction_Signed(t *testing.T) {
	income := &transaction.Transaction{Type: transaction.TypeIncome, Amount: decimal.NewFromInt(10)}
	expense := &transaction.Transaction{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(10)}

	assert.True(t, income.Signed().Equal(decimal.NewFromInt(10)))
	assert.True(t, expense.Signed().Equal(decimal.NewFromInt(-10)))
}

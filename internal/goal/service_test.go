package goal_test

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

	"github.com/MrJamesThe3rd/savvy/internal/goal"
)

func TestService_Create(t *testing.T) {
	userID := uuid.New()
	deadline := time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		params        goal.CreateParams
		expectCreate  bool
		wantErr       error
		wantCompleted bool
	}{
		{
			name: "Success",
			params: goal.CreateParams{
				UserID: userID, Name: "Emergency fund", TargetAmount: decimal.NewFromInt(100000), TargetDate: &deadline,
			},
			expectCreate: true,
		},
		{
			name: "StartsCompleted",
			params: goal.CreateParams{
				UserID: userID, Name: "Phone", TargetAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(150),
			},
			expectCreate:  true,
			wantCompleted: true,
		},
		{
			name:    "MissingName",
			params:  goal.CreateParams{UserID: userID, TargetAmount: decimal.NewFromInt(100)},
			wantErr: goal.ErrMissingName,
		},
		{
			name:    "ZeroTarget",
			params:  goal.CreateParams{UserID: userID, Name: "Trip", TargetAmount: decimal.Zero},
			wantErr: goal.ErrNonPositiveTarget,
		},
		{
			name: "NegativeCurrent",
			params: goal.CreateParams{
				UserID: userID, Name: "Trip", TargetAmount: decimal.NewFromInt(10), CurrentAmount: decimal.NewFromInt(-1),
			},
			wantErr: goal.ErrNegativeCurrent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := goal.NewMockRepository(ctrl)
			if tt.expectCreate {
				repo.EXPECT().CreateGoal(gomock.Any(), gomock.Any()).Return(nil)
			}

			got, err := goal.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCompleted, got.IsCompleted)

			if tt.params.TargetDate != nil {
				assert.Equal(t, time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC), *got.TargetDate)
			}
		})
	}
}

func TestService_AddProgress(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()

	stored := func(current int64) *goal.Goal {
		return &goal.Goal{
			ID:            id,
			UserID:        userID,
			Name:          "Laptop",
			TargetAmount:  decimal.NewFromInt(1000),
			CurrentAmount: decimal.NewFromInt(current),
		}
	}

	tests := []struct {
		name          string
		current       int64
		amount        decimal.Decimal
		updateErr     error
		wantErr       bool
		wantCurrent   int64
		wantCompleted bool
	}{
		{name: "Partial", current: 200, amount: decimal.NewFromInt(300), wantCurrent: 500},
		{name: "ReachesTarget", current: 600, amount: decimal.NewFromInt(400), wantCurrent: 1000, wantCompleted: true},
		{name: "Exceeds", current: 900, amount: decimal.NewFromInt(500), wantCurrent: 1400, wantCompleted: true},
		{name: "UpdateFails", current: 0, amount: decimal.NewFromInt(1), updateErr: errors.New("timeout"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := goal.NewMockRepository(ctrl)
			repo.EXPECT().GetGoal(gomock.Any(), userID, id).Return(stored(tt.current), nil)
			repo.EXPECT().
				UpdateProgress(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, g *goal.Goal) error {
					assert.Equal(t, g.Reached(), g.IsCompleted)
					return tt.updateErr
				})

			got, err := goal.NewService(repo).AddProgress(context.Background(), userID, id, tt.amount)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, got.CurrentAmount.Equal(decimal.NewFromInt(tt.wantCurrent)))
			assert.Equal(t, tt.wantCompleted, got.IsCompleted)
		})
	}
}

func TestService_AddProgress_RejectsNonPositive(t *testing.T) {
	svc := goal.NewService(nil)

	_, err := svc.AddProgress(context.Background(), uuid.New(), uuid.New(), decimal.Zero)
	assert.ErrorIs(t, err, goal.ErrNonPositiveProgress)

	_, err = svc.AddProgress(context.Background(), uuid.New(), uuid.New(), decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, goal.ErrNonPositiveProgress)
}

func TestService_AddProgress_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := goal.NewMockRepository(ctrl)
	repo.EXPECT().GetGoal(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, goal.ErrNotFound)

	_, err := goal.NewService(repo).AddProgress(context.Background(), uuid.New(), uuid.New(), decimal.NewFromInt(5))
	assert.ErrorIs(t, err, goal.ErrNotFound)
}

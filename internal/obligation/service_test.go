package obligation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savvy/internal/obligation"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestService_UpcomingBills(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	bills := []*obligation.Bill{
		{Name: "Rent", DueDate: day(13), ReminderDays: 3},
		{Name: "Internet", DueDate: day(20), ReminderDays: 3},
		{Name: "Water", DueDate: day(8), ReminderDays: 0},
		{Name: "Power", DueDate: day(11), ReminderDays: 5, IsPaid: true},
	}

	repo := obligation.NewMockRepository(ctrl)
	repo.EXPECT().ListBills(gomock.Any(), userID).Return(bills, nil)

	got, err := obligation.NewService(repo).UpcomingBills(context.Background(), userID, now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Water", got[0].Name)
	assert.Equal(t, "Rent", got[1].Name)
}

func TestService_DueRecurring(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	ended := day(1)

	items := []*obligation.RecurringTransaction{
		{Description: "Gym", NextDueDate: day(5), IsActive: true},
		{Description: "Paused", NextDueDate: day(5), IsActive: false},
		{Description: "Future", NextDueDate: day(25), IsActive: true},
		{Description: "Ended", NextDueDate: day(5), EndDate: &ended, IsActive: true},
	}

	repo := obligation.NewMockRepository(ctrl)
	repo.EXPECT().ListRecurring(gomock.Any(), userID).Return(items, nil)

	got, err := obligation.NewService(repo).DueRecurring(context.Background(), userID, day(10))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Gym", got[0].Description)
}

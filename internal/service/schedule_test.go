package service

import (
	"context"
	"testing"
	"time"

	"chorebank-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("first due date is the start date", func(t *testing.T) {
		store := newFakeStore()
		svc := NewScheduleService(store, noopNotifier{}, &recordingEmail{})

		start := time.Now().UTC().AddDate(0, 0, 3)
		store.schedules.On("Create", ctx, mock.MatchedBy(func(s *domain.PaymentSchedule) bool {
			return s.NextDueDate.Equal(start) && s.Status == domain.ScheduleStatusActive
		})).Return(nil)

		schedule, err := svc.CreateSchedule(ctx, 2, "bi-weekly", start)
		require.NoError(t, err)
		assert.Equal(t, domain.ScheduleBiWeekly, schedule.ScheduleType)
		store.assertExpectations(t)
	})

	t.Run("start dates in the past are rejected", func(t *testing.T) {
		store := newFakeStore()
		svc := NewScheduleService(store, noopNotifier{}, &recordingEmail{})

		_, err := svc.CreateSchedule(ctx, 2, "weekly", time.Now().UTC().AddDate(0, 0, -2))
		assert.ErrorIs(t, err, domain.ErrPastStartDate)
	})

	t.Run("starting today is allowed", func(t *testing.T) {
		store := newFakeStore()
		svc := NewScheduleService(store, noopNotifier{}, &recordingEmail{})

		store.schedules.On("Create", ctx, mock.Anything).Return(nil)

		_, err := svc.CreateSchedule(ctx, 2, "monthly", time.Now().UTC())
		require.NoError(t, err)
		store.assertExpectations(t)
	})
}

func TestRunDueDateSweep(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2024, 6, 15, 6, 0, 0, 0, time.UTC)

	activeSchedule := func(id int32, due time.Time) domain.PaymentSchedule {
		return domain.PaymentSchedule{
			ID: id, ParentID: 2, ScheduleType: domain.ScheduleWeekly,
			NextDueDate: due, Status: domain.ScheduleStatusActive,
		}
	}

	expectParentLookup := func(store *fakeStore) {
		store.users.On("GetParent", ctx, int32(2)).
			Return(&domain.Parent{ID: 2, Name: "Alex", Email: "alex@example.com"}, nil)
		store.users.On("ListKidsByParent", ctx, int32(2)).
			Return([]domain.Kid{{ID: 7, ParentID: 2, Name: "Sam"}}, nil)
		store.chores.On("SumApprovedEarnings", ctx, int32(7)).Return(int64(1250), nil)
	}

	t.Run("reminder one day before the due date sends an email", func(t *testing.T) {
		store := newFakeStore()
		email := &recordingEmail{}
		svc := NewScheduleService(store, noopNotifier{}, email)

		store.schedules.On("ListActive", ctx).
			Return([]domain.PaymentSchedule{activeSchedule(5, today.AddDate(0, 0, 1))}, nil)
		store.schedules.On("MarkNotified", ctx, int32(5), domain.DueCategoryReminder, today).
			Return(true, nil)
		expectParentLookup(store)

		summary, err := svc.RunDueDateSweep(ctx, today)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.RemindersSent)
		assert.Equal(t, 1, email.reminders)
		store.assertExpectations(t)
	})

	t.Run("overdue blocks the parent and sends the overdue notice", func(t *testing.T) {
		store := newFakeStore()
		email := &recordingEmail{}
		svc := NewScheduleService(store, noopNotifier{}, email)

		store.schedules.On("ListActive", ctx).
			Return([]domain.PaymentSchedule{activeSchedule(5, today.AddDate(0, 0, -3))}, nil)
		store.schedules.On("MarkNotified", ctx, int32(5), domain.DueCategoryOverdue, today).
			Return(true, nil)
		expectParentLookup(store)
		store.users.On("SetParentCanCreate", ctx, int32(2), false).Return(nil)

		summary, err := svc.RunDueDateSweep(ctx, today)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.OverdueSent)
		assert.Equal(t, 1, email.overdues)
		store.assertExpectations(t)
	})

	t.Run("already claimed today means nothing is re-sent", func(t *testing.T) {
		store := newFakeStore()
		email := &recordingEmail{}
		svc := NewScheduleService(store, noopNotifier{}, email)

		store.schedules.On("ListActive", ctx).
			Return([]domain.PaymentSchedule{activeSchedule(5, today)}, nil)
		store.schedules.On("MarkNotified", ctx, int32(5), domain.DueCategoryDueToday, today).
			Return(false, nil)

		summary, err := svc.RunDueDateSweep(ctx, today)
		require.NoError(t, err)
		assert.Equal(t, 0, summary.DueNoticesSent)
		store.users.AssertNotCalled(t, "GetParent", mock.Anything, mock.Anything)
		store.assertExpectations(t)
	})

	t.Run("schedules not due are skipped entirely", func(t *testing.T) {
		store := newFakeStore()
		svc := NewScheduleService(store, noopNotifier{}, &recordingEmail{})

		store.schedules.On("ListActive", ctx).
			Return([]domain.PaymentSchedule{activeSchedule(5, today.AddDate(0, 0, 5))}, nil)

		summary, err := svc.RunDueDateSweep(ctx, today)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.SchedulesChecked)
		assert.Zero(t, summary.RemindersSent+summary.DueNoticesSent+summary.OverdueSent)
		store.schedules.AssertNotCalled(t, "MarkNotified", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		store.assertExpectations(t)
	})
}

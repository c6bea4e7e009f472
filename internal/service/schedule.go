package service

import (
	"context"
	"fmt"
	"time"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/logger"
	"chorebank-backend/internal/repository"
)

type scheduleService struct {
	store    repository.Store
	noteSvc  NotificationService
	emailSvc EmailService
}

func NewScheduleService(store repository.Store, noteSvc NotificationService, emailSvc EmailService) ScheduleService {
	return &scheduleService{
		store:    store,
		noteSvc:  noteSvc,
		emailSvc: emailSvc,
	}
}

func (s *scheduleService) CreateSchedule(ctx context.Context, parentID int32, scheduleType string, startDate time.Time) (*domain.PaymentSchedule, error) {
	st, err := domain.ParseScheduleType(scheduleType)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC()
	if startDate.Before(today) && !domain.SameCalendarDay(startDate, today) {
		return nil, domain.ErrPastStartDate
	}

	schedule := &domain.PaymentSchedule{
		ParentID:     parentID,
		ScheduleType: st,
		StartDate:    startDate,
		NextDueDate:  startDate, // first due date is the start date itself
		Status:       domain.ScheduleStatusActive,
	}
	if err := s.store.Schedules().Create(ctx, schedule); err != nil {
		return nil, err
	}

	logger.Info("Payment schedule created",
		"parent_id", parentID, "type", st, "next_due", schedule.NextDueDate.Format("2006-01-02"))
	return schedule, nil
}

// RunDueDateSweep classifies every active schedule for the given calendar
// day. Each notification category is claimed with a per-day conditional
// update before anything is sent, so re-running the sweep the same day, or
// two sweeps overlapping, never double-notifies.
func (s *scheduleService) RunDueDateSweep(ctx context.Context, today time.Time) (*SweepSummary, error) {
	logger.EnterMethod("scheduleService.RunDueDateSweep", "day", today.Format("2006-01-02"))

	schedules, err := s.store.Schedules().ListActive(ctx)
	if err != nil {
		logger.ExitMethodWithError("scheduleService.RunDueDateSweep", err)
		return nil, err
	}

	summary := &SweepSummary{SchedulesChecked: len(schedules)}
	for i := range schedules {
		schedule := &schedules[i]
		category := schedule.Classify(today)
		if category == domain.DueCategoryNone {
			continue
		}

		// Claim before sending: at-most-once per day. A failed send forfeits
		// the day's notice rather than risking duplicates under overlapping
		// sweeps.
		claimed, err := s.store.Schedules().MarkNotified(ctx, schedule.ID, category, today)
		if err != nil {
			logger.Error("Failed to claim sweep notification",
				"schedule_id", schedule.ID, "category", category, "error", err)
			continue
		}
		if !claimed {
			continue // already handled today by another run
		}

		if err := s.notifyParent(ctx, schedule, category); err != nil {
			logger.Error("Failed to notify parent for due schedule",
				"schedule_id", schedule.ID, "parent_id", schedule.ParentID, "category", category, "error", err)
			continue
		}

		switch category {
		case domain.DueCategoryReminder:
			summary.RemindersSent++
		case domain.DueCategoryDueToday:
			summary.DueNoticesSent++
		case domain.DueCategoryOverdue:
			summary.OverdueSent++
		}
	}

	logger.ExitMethod("scheduleService.RunDueDateSweep",
		"checked", summary.SchedulesChecked,
		"reminders", summary.RemindersSent,
		"due_notices", summary.DueNoticesSent,
		"overdue", summary.OverdueSent)
	return summary, nil
}

func (s *scheduleService) notifyParent(ctx context.Context, schedule *domain.PaymentSchedule, category domain.DueCategory) error {
	parent, err := s.store.Users().GetParent(ctx, schedule.ParentID)
	if err != nil {
		return err
	}

	owedCents, err := s.totalOwed(ctx, schedule.ParentID)
	if err != nil {
		return err
	}

	attrs := map[string]string{
		"type":        "PAYMENT_DUE",
		"category":    string(category),
		"schedule_id": fmt.Sprintf("%d", schedule.ID),
	}

	switch category {
	case domain.DueCategoryReminder:
		s.noteSvc.Notify(ctx, parent.ID, domain.RoleParent, parent.DeviceToken,
			"Chore payment due tomorrow",
			fmt.Sprintf("You owe %s for approved chores, due %s", domain.FormatCents(owedCents), schedule.NextDueDate.Format("Jan 2")),
			attrs)
		if err := s.emailSvc.SendPaymentDueReminder(ctx, parent.Email, parent.Name, owedCents, schedule.NextDueDate); err != nil {
			logger.Warn("Failed to send due reminder email", "parent_id", parent.ID, "error", err)
		}
	case domain.DueCategoryDueToday:
		s.noteSvc.Notify(ctx, parent.ID, domain.RoleParent, parent.DeviceToken,
			"Chore payment due today",
			fmt.Sprintf("Your chore payment of %s is due today", domain.FormatCents(owedCents)),
			attrs)
	case domain.DueCategoryOverdue:
		// Block new chores and expenses until the parent settles up.
		if err := s.store.Users().SetParentCanCreate(ctx, schedule.ParentID, false); err != nil {
			return err
		}
		s.noteSvc.Notify(ctx, parent.ID, domain.RoleParent, parent.DeviceToken,
			"Chore payment overdue",
			fmt.Sprintf("Your payment of %s is overdue; creating chores is paused until you pay", domain.FormatCents(owedCents)),
			attrs)
		if err := s.emailSvc.SendPaymentOverdueNotice(ctx, parent.Email, parent.Name, owedCents); err != nil {
			logger.Warn("Failed to send overdue email", "parent_id", parent.ID, "error", err)
		}
	}
	return nil
}

func (s *scheduleService) totalOwed(ctx context.Context, parentID int32) (int64, error) {
	kids, err := s.store.Users().ListKidsByParent(ctx, parentID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, kid := range kids {
		owed, err := s.store.Chores().SumApprovedEarnings(ctx, kid.ID)
		if err != nil {
			return 0, err
		}
		total += owed
	}
	return total, nil
}

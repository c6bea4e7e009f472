package jobs

import (
	"context"
	"time"

	"chorebank-backend/internal/logger"
)

// RunDueDateSweep walks every active payment schedule and sends the
// reminder, due-today, and overdue notices it has not sent yet today.
func (jr *JobRunner) RunDueDateSweep() {
	jr.runWithRecovery("RunDueDateSweep", func() {
		ctx := context.Background()
		today := time.Now().UTC()

		summary, err := jr.services.Schedule.RunDueDateSweep(ctx, today)
		if err != nil {
			logger.Error("Due date sweep failed", "error", err)
			return
		}

		logger.Info("Due date sweep finished",
			"schedules_checked", summary.SchedulesChecked,
			"reminders_sent", summary.RemindersSent,
			"due_notices_sent", summary.DueNoticesSent,
			"overdue_sent", summary.OverdueSent)
	})
}

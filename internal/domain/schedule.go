package domain

import "time"

type ScheduleType string

const (
	ScheduleWeekly   ScheduleType = "WEEKLY"
	ScheduleBiWeekly ScheduleType = "BIWEEKLY"
	ScheduleMonthly  ScheduleType = "MONTHLY"
)

// ParseScheduleType maps client input to a schedule type, case-insensitively
// accepting the canonical names.
func ParseScheduleType(s string) (ScheduleType, error) {
	switch ScheduleType(normalizeSchedule(s)) {
	case ScheduleWeekly:
		return ScheduleWeekly, nil
	case ScheduleBiWeekly:
		return ScheduleBiWeekly, nil
	case ScheduleMonthly:
		return ScheduleMonthly, nil
	}
	return "", ErrInvalidSchedule
}

func normalizeSchedule(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c == '-' || c == '_' || c == ' ' {
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

// Next returns the date exactly one schedule period after t. Monthly steps
// clamp to the last valid day of shorter months (Jan 31 -> Feb 28/29).
func (s ScheduleType) Next(t time.Time) time.Time {
	switch s {
	case ScheduleWeekly:
		return t.AddDate(0, 0, 7)
	case ScheduleBiWeekly:
		return t.AddDate(0, 0, 14)
	case ScheduleMonthly:
		return addMonthsClamped(t, 1)
	}
	return t
}

// AddPeriods projects t forward by n schedule periods. Monthly projection
// steps from the original anchor day each time so a start on the 31st lands
// on the 31st again in long months rather than drifting to the 28th forever.
func (s ScheduleType) AddPeriods(t time.Time, n int) time.Time {
	switch s {
	case ScheduleWeekly:
		return t.AddDate(0, 0, 7*n)
	case ScheduleBiWeekly:
		return t.AddDate(0, 0, 14*n)
	case ScheduleMonthly:
		return addMonthsClamped(t, n)
	}
	return t
}

// addMonthsClamped adds n calendar months, clamping the day-of-month to the
// target month's length instead of letting time.AddDate overflow into the
// following month.
func addMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	m := int(month) + n
	year += (m - 1) / 12
	m = (m-1)%12 + 1
	if m <= 0 {
		m += 12
		year--
	}
	if max := daysInMonth(year, time.Month(m)); day > max {
		day = max
	}
	return time.Date(year, time.Month(m), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SameCalendarDay compares two instants by calendar day, ignoring the clock.
// Due-date checks use this rather than instant equality.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

type ScheduleStatus string

const (
	ScheduleStatusActive   ScheduleStatus = "ACTIVE"
	ScheduleStatusInactive ScheduleStatus = "INACTIVE"
)

// PaymentSchedule is a parent's recurring cadence for paying off accrued
// chore rewards. NextDueDate only advances forward, one period at a time,
// always from the prior value, never from "now".
type PaymentSchedule struct {
	ID           int32          `json:"id"`
	ParentID     int32          `json:"parent_id"`
	ScheduleType ScheduleType   `json:"schedule_type"`
	StartDate    time.Time      `json:"start_date"`
	NextDueDate  time.Time      `json:"next_due_date"`
	Status       ScheduleStatus `json:"status"`

	// Per-day sweep guards; a notification category fires at most once per
	// calendar day for a schedule.
	LastReminderOn  *time.Time `json:"last_reminder_on,omitempty"`
	LastDueNoticeOn *time.Time `json:"last_due_notice_on,omitempty"`
	LastOverdueOn   *time.Time `json:"last_overdue_on,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DueCategory classifies a schedule against a sweep date.
type DueCategory string

const (
	DueCategoryNone     DueCategory = "NONE"
	DueCategoryReminder DueCategory = "REMINDER"  // due tomorrow
	DueCategoryDueToday DueCategory = "DUE_TODAY" // due this calendar day
	DueCategoryOverdue  DueCategory = "OVERDUE"   // 24h or more past due
)

// Classify buckets the schedule into exactly one category for the given day.
func (p *PaymentSchedule) Classify(today time.Time) DueCategory {
	if p.Status != ScheduleStatusActive {
		return DueCategoryNone
	}
	switch {
	case SameCalendarDay(today, p.NextDueDate.AddDate(0, 0, -1)):
		return DueCategoryReminder
	case SameCalendarDay(today, p.NextDueDate):
		return DueCategoryDueToday
	case startOfDay(today).Sub(startOfDay(p.NextDueDate)) >= 24*time.Hour:
		return DueCategoryOverdue
	}
	return DueCategoryNone
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package service

import (
	"context"
	"time"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/payment"
	"chorebank-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockWalletRepo
type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) GetByKid(ctx context.Context, kidID int32) (*domain.Wallet, error) {
	args := m.Called(ctx, kidID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletRepo) Credit(ctx context.Context, kidID int32, amountCents int64) (*domain.Wallet, error) {
	args := m.Called(ctx, kidID, amountCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletRepo) Debit(ctx context.Context, kidID int32, amountCents int64) (*domain.Wallet, error) {
	args := m.Called(ctx, kidID, amountCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) Append(ctx context.Context, tx *domain.LedgerTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListByKid(ctx context.Context, kidID int32, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	args := m.Called(ctx, kidID, page, pageSize)
	return args.Get(0).([]domain.LedgerTransaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockLedgerRepo) GetByID(ctx context.Context, kidID, txID int32) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, kidID, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

// MockChoreRepo
type MockChoreRepo struct {
	mock.Mock
}

func (m *MockChoreRepo) SumApprovedEarnings(ctx context.Context, kidID int32) (int64, error) {
	args := m.Called(ctx, kidID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockChoreRepo) ClaimApprovedForSettlement(ctx context.Context, kidID int32) ([]domain.Chore, error) {
	args := m.Called(ctx, kidID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Chore), args.Error(1)
}

// MockSavingGoalRepo
type MockSavingGoalRepo struct {
	mock.Mock
}

func (m *MockSavingGoalRepo) Create(ctx context.Context, goal *domain.SavingGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}
func (m *MockSavingGoalRepo) GetByID(ctx context.Context, goalID int32) (*domain.SavingGoal, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingGoal), args.Error(1)
}
func (m *MockSavingGoalRepo) GetByIDForUpdate(ctx context.Context, goalID int32) (*domain.SavingGoal, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingGoal), args.Error(1)
}
func (m *MockSavingGoalRepo) ListByKid(ctx context.Context, kidID int32, page, pageSize int32) ([]domain.SavingGoal, int32, error) {
	args := m.Called(ctx, kidID, page, pageSize)
	return args.Get(0).([]domain.SavingGoal), args.Get(1).(int32), args.Error(2)
}
func (m *MockSavingGoalRepo) Delete(ctx context.Context, kidID, goalID int32) error {
	args := m.Called(ctx, kidID, goalID)
	return args.Error(0)
}
func (m *MockSavingGoalRepo) ApplyContribution(ctx context.Context, goalID int32, amountCents int64) (*domain.SavingGoal, error) {
	args := m.Called(ctx, goalID, amountCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingGoal), args.Error(1)
}
func (m *MockSavingGoalRepo) AddPayment(ctx context.Context, payment *domain.GoalPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockSavingGoalRepo) ListPayments(ctx context.Context, goalID int32) ([]domain.GoalPayment, error) {
	args := m.Called(ctx, goalID)
	return args.Get(0).([]domain.GoalPayment), args.Error(1)
}
func (m *MockSavingGoalRepo) ResetAmount(ctx context.Context, goalID int32) error {
	args := m.Called(ctx, goalID)
	return args.Error(0)
}

// MockScheduleRepo
type MockScheduleRepo struct {
	mock.Mock
}

func (m *MockScheduleRepo) Create(ctx context.Context, schedule *domain.PaymentSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}
func (m *MockScheduleRepo) GetActiveByParent(ctx context.Context, parentID int32) (*domain.PaymentSchedule, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSchedule), args.Error(1)
}
func (m *MockScheduleRepo) ListActive(ctx context.Context) ([]domain.PaymentSchedule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PaymentSchedule), args.Error(1)
}
func (m *MockScheduleRepo) AdvanceDueDate(ctx context.Context, scheduleID int32, nextDueDate time.Time) error {
	args := m.Called(ctx, scheduleID, nextDueDate)
	return args.Error(0)
}
func (m *MockScheduleRepo) MarkNotified(ctx context.Context, scheduleID int32, category domain.DueCategory, day time.Time) (bool, error) {
	args := m.Called(ctx, scheduleID, category, day)
	return args.Bool(0), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetKid(ctx context.Context, kidID int32) (*domain.Kid, error) {
	args := m.Called(ctx, kidID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Kid), args.Error(1)
}
func (m *MockUserRepo) GetParent(ctx context.Context, parentID int32) (*domain.Parent, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parent), args.Error(1)
}
func (m *MockUserRepo) ListKidsByParent(ctx context.Context, parentID int32) ([]domain.Kid, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]domain.Kid), args.Error(1)
}
func (m *MockUserRepo) SetParentCanCreate(ctx context.Context, parentID int32, canCreate bool) error {
	args := m.Called(ctx, parentID, canCreate)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, role domain.Role, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, role, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockProcessor
type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) CreateCharge(ctx context.Context, amountMinorUnits int64, currency, idempotencyKey string) (*payment.Charge, error) {
	args := m.Called(ctx, amountMinorUnits, currency, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Charge), args.Error(1)
}
func (m *MockProcessor) GetCharge(ctx context.Context, chargeID string) (*payment.Charge, error) {
	args := m.Called(ctx, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Charge), args.Error(1)
}

// fakeStore bundles the repo mocks behind repository.Store. ExecTx simply
// invokes the callback against the same store, which matches the nested
// transaction behavior of the real implementation.
type fakeStore struct {
	wallets       *MockWalletRepo
	ledger        *MockLedgerRepo
	chores        *MockChoreRepo
	goals         *MockSavingGoalRepo
	schedules     *MockScheduleRepo
	users         *MockUserRepo
	notifications *MockNotificationRepo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		wallets:       new(MockWalletRepo),
		ledger:        new(MockLedgerRepo),
		chores:        new(MockChoreRepo),
		goals:         new(MockSavingGoalRepo),
		schedules:     new(MockScheduleRepo),
		users:         new(MockUserRepo),
		notifications: new(MockNotificationRepo),
	}
}

func (s *fakeStore) Wallets() repository.WalletRepository            { return s.wallets }
func (s *fakeStore) Ledger() repository.LedgerRepository             { return s.ledger }
func (s *fakeStore) Chores() repository.ChoreRepository              { return s.chores }
func (s *fakeStore) SavingGoals() repository.SavingGoalRepository    { return s.goals }
func (s *fakeStore) Schedules() repository.PaymentScheduleRepository { return s.schedules }
func (s *fakeStore) Users() repository.UserRepository                { return s.users }
func (s *fakeStore) Notifications() repository.NotificationRepository {
	return s.notifications
}

func (s *fakeStore) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

func (s *fakeStore) assertExpectations(t mock.TestingT) {
	s.wallets.AssertExpectations(t)
	s.ledger.AssertExpectations(t)
	s.chores.AssertExpectations(t)
	s.goals.AssertExpectations(t)
	s.schedules.AssertExpectations(t)
	s.users.AssertExpectations(t)
	s.notifications.AssertExpectations(t)
}

// noopNotifier satisfies NotificationService for services under test that
// only fire-and-forget.
type noopNotifier struct{}

func (noopNotifier) Notify(ctx context.Context, userID int32, role domain.Role, deviceToken, title, message string, attrs map[string]string) {
}
func (noopNotifier) GetNotifications(ctx context.Context, userID int32, role domain.Role, page, pageSize int32) ([]domain.Notification, int32, error) {
	return nil, 0, nil
}
func (noopNotifier) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return nil
}

// recordingEmail captures outbound mail instead of hitting sendgrid.
type recordingEmail struct {
	reminders int
	overdues  int
}

func (e *recordingEmail) SendPaymentDueReminder(ctx context.Context, email, name string, amountCents int64, dueDate time.Time) error {
	e.reminders++
	return nil
}
func (e *recordingEmail) SendPaymentOverdueNotice(ctx context.Context, email, name string, amountCents int64) error {
	e.overdues++
	return nil
}

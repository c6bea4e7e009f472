package service

import (
	"context"
	"fmt"
	"time"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/logger"
	"chorebank-backend/internal/repository"
)

type savingsService struct {
	store repository.Store
}

func NewSavingsService(store repository.Store) SavingsService {
	return &savingsService{store: store}
}

func (s *savingsService) CreateGoal(ctx context.Context, kidID int32, title string, startDate time.Time, totalCents int64, schedule string, amountPerPeriodCents int64) (*domain.SavingGoal, error) {
	scheduleType, err := domain.ParseScheduleType(schedule)
	if err != nil {
		return nil, err
	}
	if totalCents <= 0 || amountPerPeriodCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	goal := &domain.SavingGoal{
		KidID:                kidID,
		Title:                title,
		StartDate:            startDate,
		EndDate:              domain.ProjectEndDate(startDate, totalCents, amountPerPeriodCents, scheduleType),
		TotalSavingCents:     totalCents,
		Schedule:             scheduleType,
		AmountFrequencyCents: amountPerPeriodCents,
	}
	if err := s.store.SavingGoals().Create(ctx, goal); err != nil {
		return nil, err
	}

	logger.Info("Saving goal created",
		"kid_id", kidID, "goal_id", goal.ID,
		"target_cents", totalCents, "end_date", goal.EndDate.Format("2006-01-02"))
	return goal, nil
}

// Contribute moves money from the wallet into a goal. The goal row is
// locked for the duration of the transaction and the accumulated total is
// updated with a guarded statement, so two concurrent contributions can
// never jointly overshoot the target.
func (s *savingsService) Contribute(ctx context.Context, kidID, goalID int32, amountCents int64, isScheduled bool) (*ContributionResult, error) {
	logger.EnterMethod("savingsService.Contribute", "kid_id", kidID, "goal_id", goalID, "amount_cents", amountCents)

	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	var result *ContributionResult
	err := s.store.ExecTx(ctx, func(txs repository.Store) error {
		goal, err := txs.SavingGoals().GetByIDForUpdate(ctx, goalID)
		if err != nil {
			return err
		}
		if goal.KidID != kidID {
			return domain.ErrNotAuthorized
		}
		if goal.IsCompleted {
			return domain.ErrGoalAlreadyCompleted
		}
		if amountCents > goal.RemainingCents() {
			return domain.NewPaymentExceedsGoal(goal.RemainingCents())
		}

		wallet, err := debitWallet(ctx, txs, kidID, amountCents, domain.TransactionSavingsDeposit,
			fmt.Sprintf("Deposit to saving goal %q", goal.Title))
		if err != nil {
			return err
		}

		updated, err := txs.SavingGoals().ApplyContribution(ctx, goalID, amountCents)
		if err != nil {
			return err
		}
		if err := txs.SavingGoals().AddPayment(ctx, &domain.GoalPayment{
			GoalID:             goalID,
			AmountCents:        amountCents,
			PaidAt:             time.Now().UTC(),
			IsScheduledPayment: isScheduled,
		}); err != nil {
			return err
		}

		result = &ContributionResult{
			Goal:            updated,
			Wallet:          wallet,
			ProgressPercent: updated.ProgressPercent(),
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("savingsService.Contribute", err, "kid_id", kidID, "goal_id", goalID)
		return nil, err
	}

	if result.Goal.IsCompleted {
		logger.Info("Saving goal completed", "kid_id", kidID, "goal_id", goalID, "target_cents", result.Goal.TotalSavingCents)
	}
	logger.ExitMethod("savingsService.Contribute", "kid_id", kidID, "goal_id", goalID, "progress", result.ProgressPercent)
	return result, nil
}

// Withdraw releases a completed goal's accumulated amount back to the
// wallet and zeroes the goal.
func (s *savingsService) Withdraw(ctx context.Context, kidID, goalID int32) (*GoalWithdrawalResult, error) {
	logger.EnterMethod("savingsService.Withdraw", "kid_id", kidID, "goal_id", goalID)

	var result *GoalWithdrawalResult
	err := s.store.ExecTx(ctx, func(txs repository.Store) error {
		goal, err := txs.SavingGoals().GetByIDForUpdate(ctx, goalID)
		if err != nil {
			return err
		}
		if goal.KidID != kidID {
			return domain.ErrNotAuthorized
		}
		if !goal.IsCompleted {
			return domain.ErrForbiddenIncompleteGoal
		}
		if goal.CurrentAmountCents <= 0 {
			return domain.ErrGoalAlreadyWithdrawn
		}

		if err := txs.SavingGoals().ResetAmount(ctx, goalID); err != nil {
			return err
		}
		wallet, err := creditWallet(ctx, txs, kidID, goal.CurrentAmountCents, domain.TransactionSavingsWithdrawal,
			fmt.Sprintf("Withdrawal from saving goal %q", goal.Title))
		if err != nil {
			return err
		}

		result = &GoalWithdrawalResult{
			AmountWithdrawnCents: goal.CurrentAmountCents,
			Wallet:               wallet,
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("savingsService.Withdraw", err, "kid_id", kidID, "goal_id", goalID)
		return nil, err
	}

	logger.ExitMethod("savingsService.Withdraw", "kid_id", kidID, "goal_id", goalID, "amount_cents", result.AmountWithdrawnCents)
	return result, nil
}

func (s *savingsService) Delete(ctx context.Context, kidID, goalID int32) error {
	return s.store.SavingGoals().Delete(ctx, kidID, goalID)
}

func (s *savingsService) GetGoal(ctx context.Context, kidID, goalID int32) (*domain.SavingGoal, error) {
	goal, err := s.store.SavingGoals().GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.KidID != kidID {
		return nil, domain.ErrNotAuthorized
	}
	return goal, nil
}

func (s *savingsService) ListGoals(ctx context.Context, kidID int32, page, pageSize int32) ([]domain.SavingGoal, int32, error) {
	return s.store.SavingGoals().ListByKid(ctx, kidID, page, pageSize)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/logger"
	"chorebank-backend/internal/payment"
	"chorebank-backend/internal/repository"

	"github.com/google/uuid"
)

type paymentService struct {
	store     repository.Store
	processor payment.Client
	noteSvc   NotificationService
	currency  string
}

func NewPaymentService(store repository.Store, processor payment.Client, noteSvc NotificationService, currency string) PaymentService {
	return &paymentService{
		store:     store,
		processor: processor,
		noteSvc:   noteSvc,
		currency:  currency,
	}
}

// SettleApprovedChores runs the whole settlement in one transaction:
// claim approved chores, credit the wallet once for the batch, clear the
// parent's overdue restriction and advance the schedule. Any failure rolls
// everything back, so a chore is either fully paid or still approved.
func (s *paymentService) SettleApprovedChores(ctx context.Context, kidID int32) (*domain.SettlementResult, error) {
	logger.EnterMethod("paymentService.SettleApprovedChores", "kid_id", kidID)

	var result *domain.SettlementResult
	err := s.store.ExecTx(ctx, func(txs repository.Store) error {
		chores, err := txs.Chores().ClaimApprovedForSettlement(ctx, kidID)
		if err != nil {
			return err
		}
		if len(chores) == 0 {
			return domain.ErrNothingToSettle
		}

		var total int64
		choreIDs := make([]int32, 0, len(chores))
		for _, c := range chores {
			total += c.EarnCents
			choreIDs = append(choreIDs, c.ID)
		}
		parentID := chores[0].ParentID

		// One combined ledger entry for the batch.
		wallet, err := creditWallet(ctx, txs, kidID, total, domain.TransactionChorePayment,
			fmt.Sprintf("Payment for %d completed chore(s)", len(chores)))
		if err != nil {
			return err
		}

		if err := txs.Users().SetParentCanCreate(ctx, parentID, true); err != nil {
			return err
		}

		schedule, err := txs.Schedules().GetActiveByParent(ctx, parentID)
		switch {
		case err == nil:
			next := schedule.ScheduleType.Next(schedule.NextDueDate)
			if err := txs.Schedules().AdvanceDueDate(ctx, schedule.ID, next); err != nil {
				return err
			}
		case errors.Is(err, domain.ErrScheduleNotFound):
			// Parent pays without a recurring schedule; nothing to advance.
		default:
			return err
		}

		result = &domain.SettlementResult{
			KidID:            kidID,
			ParentID:         parentID,
			ChoreIDs:         choreIDs,
			TotalAmountCents: total,
			Wallet:           wallet,
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("paymentService.SettleApprovedChores", err, "kid_id", kidID)
		return nil, err
	}

	logger.ExitMethod("paymentService.SettleApprovedChores",
		"kid_id", kidID, "total_cents", result.TotalAmountCents, "chores", len(result.ChoreIDs))
	return result, nil
}

// InitiatePayment charges the parent first, outside any local transaction,
// then settles. A charge can not be rolled back from here: when settlement
// fails after a confirmed charge the error is surfaced as
// ErrSettlementAfterCharge with full reconciliation context in the log.
// ErrNothingToSettle after the charge means a concurrent payment already
// claimed the chores; the deduplicated charge makes that a benign no-op.
func (s *paymentService) InitiatePayment(ctx context.Context, parentID, kidID int32) (*domain.PaymentConfirmation, error) {
	logger.EnterMethod("paymentService.InitiatePayment", "parent_id", parentID, "kid_id", kidID)

	kid, err := s.store.Users().GetKid(ctx, kidID)
	if err != nil {
		return nil, err
	}
	if kid.ParentID != parentID {
		return nil, domain.ErrNotAuthorized
	}

	amountCents, err := s.store.Chores().SumApprovedEarnings(ctx, kidID)
	if err != nil {
		return nil, err
	}
	if amountCents <= 0 {
		return nil, domain.ErrNothingDue
	}

	key := chargeIdempotencyKey(parentID, kidID, amountCents, time.Now().UTC())
	charge, err := s.processor.CreateCharge(ctx, amountCents, s.currency, key)
	if err != nil {
		logger.ExitMethodWithError("paymentService.InitiatePayment", err, "parent_id", parentID, "kid_id", kidID)
		switch {
		case errors.Is(err, payment.ErrBusy):
			return nil, domain.ErrProcessorBusy
		case errors.Is(err, payment.ErrRejected):
			return nil, domain.ErrPaymentRejected
		default:
			return nil, fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
		}
	}

	settlement, err := s.SettleApprovedChores(ctx, kidID)
	if errors.Is(err, domain.ErrNothingToSettle) {
		// A concurrent settlement claimed the chores between the read and
		// the charge. The idempotency key covers the same (parent, kid,
		// amount, month), so the processor deduplicated the charge and
		// there is nothing to reconcile.
		logger.Info("Chores already settled by a concurrent payment",
			"parent_id", parentID, "kid_id", kidID, "charge_id", charge.ID)
		return nil, err
	}
	if err != nil {
		// The money moved and the books did not. Log everything needed for
		// manual reconciliation and surface the distinct error class.
		logger.Error("Charge succeeded but settlement failed; manual reconciliation required",
			"parent_id", parentID,
			"kid_id", kidID,
			"charge_id", charge.ID,
			"amount_cents", amountCents,
			"error", err)
		return nil, fmt.Errorf("%w (charge %s): %v", domain.ErrSettlementAfterCharge, charge.ID, err)
	}

	s.noteSvc.Notify(ctx, kidID, domain.RoleKid, kid.DeviceToken,
		"You got paid!",
		fmt.Sprintf("%s was added to your wallet for completed chores", domain.FormatCents(settlement.TotalAmountCents)),
		map[string]string{"type": "CHORE_PAYMENT", "amount_cents": fmt.Sprintf("%d", settlement.TotalAmountCents)})

	logger.ExitMethod("paymentService.InitiatePayment",
		"parent_id", parentID, "kid_id", kidID, "charge_id", charge.ID, "amount_cents", amountCents)

	return &domain.PaymentConfirmation{
		ChargeID:    charge.ID,
		AmountCents: amountCents,
		Currency:    s.currency,
		Status:      domain.ChargeStatusSucceeded,
		ChargedAt:   time.Now().UTC(),
		Settlement:  settlement,
	}, nil
}

// chargeIdempotencyKey is deterministic over (parent, kid, amount, billing
// month) so a client-side retry of the same bill reuses the same key and
// the processor deduplicates the charge.
func chargeIdempotencyKey(parentID, kidID int32, amountCents int64, now time.Time) string {
	seed := fmt.Sprintf("chorebank:charge:%d:%d:%d:%s", parentID, kidID, amountCents, now.Format("2006-01"))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/security"
	"chorebank-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubWalletService returns canned wallets for the router tests.
type stubWalletService struct {
	wallet *domain.Wallet
	err    error
}

func (s *stubWalletService) Credit(ctx context.Context, kidID int32, amountCents int64, name domain.TransactionName, description string) (*domain.Wallet, error) {
	return s.wallet, s.err
}
func (s *stubWalletService) Debit(ctx context.Context, kidID int32, amountCents int64, name domain.TransactionName, description string) (*domain.Wallet, error) {
	return s.wallet, s.err
}
func (s *stubWalletService) Fetch(ctx context.Context, kidID int32) (*domain.Wallet, error) {
	return s.wallet, s.err
}
func (s *stubWalletService) Withdraw(ctx context.Context, kidID int32) (*domain.Wallet, error) {
	return s.wallet, s.err
}

type stubScheduleService struct {
	summary *service.SweepSummary
}

func (s *stubScheduleService) CreateSchedule(ctx context.Context, parentID int32, scheduleType string, startDate time.Time) (*domain.PaymentSchedule, error) {
	return &domain.PaymentSchedule{ParentID: parentID, NextDueDate: startDate}, nil
}
func (s *stubScheduleService) RunDueDateSweep(ctx context.Context, today time.Time) (*service.SweepSummary, error) {
	return s.summary, nil
}

func testRouter(t *testing.T, wallets service.WalletService) (*httptest.Server, security.TokenManager) {
	t.Helper()
	tokens := security.NewTokenManager("router-test-secret")
	router := NewRouter(Services{
		Wallet:   wallets,
		Schedule: &stubScheduleService{summary: &service.SweepSummary{SchedulesChecked: 2}},
	}, tokens, "sweep-secret")
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, tokens
}

func get(t *testing.T, url, token string) (*http.Response, envelope) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestAuthMiddleware(t *testing.T) {
	server, tokens := testRouter(t, &stubWalletService{wallet: &domain.Wallet{ID: 1, KidID: 7, MainBalanceCents: 500}})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		resp, body := get(t, server.URL+"/api/v1/wallets/kid", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.False(t, body.Success)
	})

	t.Run("valid kid token reaches the wallet", func(t *testing.T) {
		token, err := tokens.Generate(7, domain.RoleKid, time.Minute)
		require.NoError(t, err)

		resp, body := get(t, server.URL+"/api/v1/wallets/kid", token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, body.Success)
	})

	t.Run("parent token cannot use kid endpoints", func(t *testing.T) {
		token, err := tokens.Generate(2, domain.RoleParent, time.Minute)
		require.NoError(t, err)

		resp, _ := get(t, server.URL+"/api/v1/wallets/kid", token)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestSchedulerSecretEndpoint(t *testing.T) {
	server, _ := testRouter(t, &stubWalletService{})

	t.Run("correct secret runs the sweep", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/api/v1/payments/check-due-payments", nil)
		require.NoError(t, err)
		req.Header.Set("X-Scheduler-Secret", "sweep-secret")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("wrong secret is forbidden", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/api/v1/payments/check-due-payments", nil)
		require.NoError(t, err)
		req.Header.Set("X-Scheduler-Secret", "guess")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"wallet missing", domain.ErrWalletNotFound, http.StatusNotFound},
		{"not authorized", domain.ErrNotAuthorized, http.StatusForbidden},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusConflict},
		{"exceeds goal", domain.NewPaymentExceedsGoal(1000), http.StatusBadRequest},
		{"processor busy", domain.ErrProcessorBusy, http.StatusServiceUnavailable},
		{"payment rejected", domain.ErrPaymentRejected, http.StatusPaymentRequired},
		{"settlement after charge", domain.ErrSettlementAfterCharge, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusForError(tc.err))
		})
	}
}

package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/security"
	"chorebank-backend/internal/service"
)

// Services bundles everything the router serves.
type Services struct {
	Wallet       service.WalletService
	Ledger       service.LedgerService
	Savings      service.SavingsService
	Payment      service.PaymentService
	Schedule     service.ScheduleService
	Notification service.NotificationService
}

// NewRouter builds the full API surface. User endpoints sit behind the
// bearer-token middleware; the sweep trigger behind the scheduler secret.
func NewRouter(svcs Services, tokens security.TokenManager, schedulerSecret string) *mux.Router {
	router := mux.NewRouter()

	walletHandler := NewWalletHandler(svcs.Wallet)
	ledgerHandler := NewLedgerHandler(svcs.Ledger)
	savingsHandler := NewSavingsHandler(svcs.Savings)
	paymentHandler := NewPaymentHandler(svcs.Payment, svcs.Schedule)
	scheduleHandler := NewScheduleHandler(svcs.Schedule)
	notificationHandler := NewNotificationHandler(svcs.Notification)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondSuccess(w, http.StatusOK, "ok", nil)
	}).Methods("GET")

	// Scheduler trigger, shared-secret auth only. Registered before the
	// bearer-token subrouter so the prefix match does not capture it.
	router.Handle("/api/v1/payments/check-due-payments",
		SchedulerSecretMiddleware(schedulerSecret)(http.HandlerFunc(paymentHandler.CheckDuePayments))).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	// Parent endpoints
	api.HandleFunc("/payments/initiate", requireRole(domain.RoleParent, paymentHandler.InitiatePayment)).Methods("POST")
	api.HandleFunc("/schedules", requireRole(domain.RoleParent, scheduleHandler.CreateSchedule)).Methods("POST")

	// Kid endpoints
	api.HandleFunc("/wallets/kid", requireRole(domain.RoleKid, walletHandler.GetWallet)).Methods("GET")
	api.HandleFunc("/payments/withdraw", requireRole(domain.RoleKid, walletHandler.Withdraw)).Methods("POST")
	api.HandleFunc("/ledgers", requireRole(domain.RoleKid, ledgerHandler.ListTransactions)).Methods("GET")
	api.HandleFunc("/ledgers/{id:[0-9]+}", requireRole(domain.RoleKid, ledgerHandler.GetTransaction)).Methods("GET")
	api.HandleFunc("/savings", requireRole(domain.RoleKid, savingsHandler.CreateGoal)).Methods("POST")
	api.HandleFunc("/savings", requireRole(domain.RoleKid, savingsHandler.ListGoals)).Methods("GET")
	api.HandleFunc("/savings/{id:[0-9]+}", requireRole(domain.RoleKid, savingsHandler.GetGoal)).Methods("GET")
	api.HandleFunc("/savings/{id:[0-9]+}", requireRole(domain.RoleKid, savingsHandler.DeleteGoal)).Methods("DELETE")
	api.HandleFunc("/savings/{id:[0-9]+}/pay", requireRole(domain.RoleKid, savingsHandler.Contribute)).Methods("POST")
	api.HandleFunc("/savings/{id:[0-9]+}/withdraw", requireRole(domain.RoleKid, savingsHandler.Withdraw)).Methods("PATCH")

	// Shared endpoints
	api.HandleFunc("/notifications", notificationHandler.ListNotifications).Methods("GET")
	api.HandleFunc("/notifications/{id:[0-9]+}/read", notificationHandler.MarkAsRead).Methods("POST")

	return router
}

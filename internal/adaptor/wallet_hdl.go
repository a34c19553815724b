package adaptor

import (
	"net/http"

	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/utils"

	"go.uber.org/zap"
)

type WalletHandler struct {
	service usecase.WalletService
	log     *zap.Logger
}

func NewWalletHandler(service usecase.WalletService, log *zap.Logger) *WalletHandler {
	return &WalletHandler{
		service: service,
		log:     log.With(zap.String("handler", "wallet")),
	}
}

// GetBalance handles GET /api/wallet
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	wallet, err := h.service.GetBalance(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get wallet balance")
		return
	}

	utils.ResponseSuccess(w, "success", wallet)
}

// ListTransactions handles GET /api/wallet/transactions
func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	req := pageFromQuery(r)
	txns, err := h.service.ListTransactions(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list wallet transactions")
		return
	}

	utils.ResponseSuccess(w, "success", txns)
}

// TopUp handles POST /api/wallet/top-up
func (h *WalletHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.TopUpRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.TopUp(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "top up wallet")
		return
	}

	utils.ResponseCreated(w, "Wallet topped up", result)
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/middleware"
	"github.com/SscSPs/bank_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves the money movements and the transfer history.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers deposit, withdrawal, transfer and history routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.POST("/deposits", h.deposit)
	rg.POST("/withdrawals", h.withdraw)
	rg.POST("/transfers", h.transfer)
	rg.GET("/transfers/:id", h.getTransferByID)
	rg.GET("/history", h.history)
}

// deposit godoc
// @Summary Deposit funds
// @Description Credits an account and records a transfer without a source account
// @Tags ledger
// @Accept  json,x-www-form-urlencoded
// @Produce  json
// @Param   deposit body dto.DepositForm true "Deposit details"
// @Success 200 {object} dto.MoneyMovementResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or rule violation"
// @Failure 409 {object} dto.ErrorResponse "Concurrent update"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /deposits [post]
func (h *ledgerHandler) deposit(c *gin.Context) {
	var form dto.DepositForm
	errs := bindForm(c, &form)
	req := form.ToRequest(errs)
	if len(errs) > 0 {
		respondFieldErrors(c, errs)
		return
	}

	transfer, err := h.ledgerService.Deposit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	logMovement(c, transfer)
	c.JSON(http.StatusOK, dto.MoneyMovementResponse{
		Success:    true,
		TransferID: transfer.ID,
		Value:      utils.FormatMoney(transfer.Value),
		Account:    transfer.ToAccountID,
	})
}

// withdraw godoc
// @Summary Withdraw funds
// @Description Debits an account and records a transfer without a target account
// @Tags ledger
// @Accept  json,x-www-form-urlencoded
// @Produce  json
// @Param   withdrawal body dto.WithdrawForm true "Withdrawal details"
// @Success 200 {object} dto.MoneyMovementResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or rule violation"
// @Failure 409 {object} dto.ErrorResponse "Concurrent update"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /withdrawals [post]
func (h *ledgerHandler) withdraw(c *gin.Context) {
	var form dto.WithdrawForm
	errs := bindForm(c, &form)
	req := form.ToRequest(errs)
	if len(errs) > 0 {
		respondFieldErrors(c, errs)
		return
	}

	transfer, err := h.ledgerService.Withdraw(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	logMovement(c, transfer)
	c.JSON(http.StatusOK, dto.MoneyMovementResponse{
		Success:    true,
		TransferID: transfer.ID,
		Value:      utils.FormatMoney(transfer.Value),
		Account:    transfer.FromAccountID,
	})
}

// transfer godoc
// @Summary Transfer funds between accounts
// @Description Moves funds between two accounts of the same currency
// @Tags ledger
// @Accept  json,x-www-form-urlencoded
// @Produce  json
// @Param   transfer body dto.TransferForm true "Transfer details"
// @Success 200 {object} dto.MoneyMovementResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or rule violation"
// @Failure 409 {object} dto.ErrorResponse "Concurrent update"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transfers [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	var form dto.TransferForm
	errs := bindForm(c, &form)
	req := form.ToRequest(errs)
	if len(errs) > 0 {
		respondFieldErrors(c, errs)
		return
	}

	transfer, err := h.ledgerService.Transfer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	logMovement(c, transfer)
	c.JSON(http.StatusOK, dto.MoneyMovementResponse{
		Success:     true,
		TransferID:  transfer.ID,
		Value:       utils.FormatMoney(transfer.Value),
		FromAccount: transfer.FromAccountID,
		ToAccount:   transfer.ToAccountID,
	})
}

// getTransferByID godoc
// @Summary Get a transfer by ID
// @Tags ledger
// @Produce  json
// @Param   id path int true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Transfer not found"
// @Router /transfers/{id} [get]
func (h *ledgerHandler) getTransferByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	transfer, err := h.ledgerService.GetTransferByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// history godoc
// @Summary Transfer history
// @Description Lists transfers ordered by ID, optionally only those where the account is source or target
// @Tags ledger
// @Produce  json
// @Param   by_account query int false "Account ID filter"
// @Success 200 {object} dto.HistoryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /history [get]
func (h *ledgerHandler) history(c *gin.Context) {
	var form dto.HistoryFilterForm
	errs := dto.FieldErrors{}
	if err := c.ShouldBindQuery(&form); err != nil {
		errs.Add(apperrors.FieldInternal, "Invalid request format: "+err.Error())
	}
	accountID := form.ToAccountID(errs)
	if len(errs) > 0 {
		respondFieldErrors(c, errs)
		return
	}

	var (
		transfers []domain.Transfer
		err       error
	)
	if accountID == nil {
		transfers, err = h.ledgerService.ListTransfers(c.Request.Context())
	} else {
		transfers, err = h.ledgerService.ListTransfersByAccount(c.Request.Context(), *accountID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.HistoryResponse{
		ByAccount: accountID,
		Transfers: dto.ToListTransferResponse(transfers),
	})
}

func logMovement(c *gin.Context, transfer *domain.Transfer) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Money movement accepted",
		slog.Int64("transfer_id", transfer.ID),
		slog.String("kind", string(transfer.Kind())),
	)
}

package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccountByID)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Opens an account in one currency. Funds default to 0.
// @Tags accounts
// @Accept  json,x-www-form-urlencoded
// @Produce  json
// @Param   account body dto.CreateAccountForm true "Account details"
// @Success 201 {object} dto.CreateAccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input, unknown currency or duplicate name"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var form dto.CreateAccountForm
	errs := bindForm(c, &form)
	req := form.ToRequest(errs)
	if len(errs) > 0 {
		respondFieldErrors(c, errs)
		return
	}

	logger.Info("Received request to create account", slog.String("name", req.Name), slog.Int64("currency_id", req.CurrencyID))

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateAccountResponse{Success: true, ID: account.ID, AccountName: account.Name})
}

// getAccountByID godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path int true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccountByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List all accounts
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

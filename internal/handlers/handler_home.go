package handlers

import (
	"context"
	"net/http"

	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type homeHandler struct {
	services *portssvc.ServiceContainer
}

func registerHomeRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &homeHandler{services: services}
	rg.GET("/", h.home)
}

// home godoc
// @Summary Ledger overview
// @Description Available currencies and accounts for building forms, plus row counts
// @Tags home
// @Produce  json
// @Success 200 {object} dto.HomeResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router / [get]
func (h *homeHandler) home(c *gin.Context) {
	ctx := c.Request.Context()

	currencies, err := h.services.Currency.ListCurrencies(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	accounts, err := h.services.Account.ListAccounts(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	counts, err := h.counts(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.HomeResponse{
		AvailableCurrencies: dto.ToListCurrencyResponse(currencies),
		AvailableAccounts:   dto.ToListAccountResponse(accounts),
		Counts:              counts,
	})
}

func (h *homeHandler) counts(ctx context.Context) (dto.LedgerCounts, error) {
	var (
		counts dto.LedgerCounts
		err    error
	)
	if counts.Currencies, err = h.services.Currency.CountCurrencies(ctx); err != nil {
		return counts, err
	}
	if counts.Accounts, err = h.services.Account.CountAccounts(ctx); err != nil {
		return counts, err
	}
	if counts.Transfers, err = h.services.Ledger.CountTransfers(ctx); err != nil {
		return counts, err
	}
	return counts, nil
}

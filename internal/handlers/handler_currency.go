package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:id", h.getCurrencyByID)
	}
}

// createCurrency godoc
// @Summary Create a new currency
// @Description Adds a currency. The symbol is upper-cased and must be 3 characters long.
// @Tags currencies
// @Accept  json,x-www-form-urlencoded
// @Produce  json
// @Param   currency body dto.CreateCurrencyForm true "Currency details"
// @Success 201 {object} dto.CreateCurrencyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate symbol"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var form dto.CreateCurrencyForm
	errs := bindForm(c, &form)
	req := form.ToRequest(errs)
	if len(errs) > 0 {
		respondFieldErrors(c, errs)
		return
	}

	logger.Info("Received request to create currency", slog.String("symbol", req.Symbol))

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateCurrencyResponse{Success: true, ID: currency.ID, Symbol: currency.Symbol})
}

// getCurrencyByID godoc
// @Summary Get a currency by ID
// @Tags currencies
// @Produce  json
// @Param   id path int true "Currency ID"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Currency not found"
// @Router /currencies/{id} [get]
func (h *currencyHandler) getCurrencyByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	currency, err := h.currencyService.GetCurrencyByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List all currencies
// @Description Retrieves every currency ordered by ID
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

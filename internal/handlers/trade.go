package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papertrade/papertrade/internal/ledger"
	"github.com/papertrade/papertrade/internal/models"
	"github.com/papertrade/papertrade/internal/quotes"
)

// TradeHandler serves the buy and sell endpoints.
type TradeHandler struct {
	processor *ledger.Processor
	provider  quotes.Provider
}

// NewTradeHandler creates a TradeHandler.
func NewTradeHandler(processor *ledger.Processor, provider quotes.Provider) *TradeHandler {
	return &TradeHandler{processor: processor, provider: provider}
}

// Buy handles POST /api/trades/buy. The quote is resolved here, at call
// time, and handed to the ledger with the trade.
func (h *TradeHandler) Buy(c *gin.Context) {
	var req models.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Shares < 1 {
		writeError(c, models.ErrInvalidShareCount)
		return
	}

	quote, err := h.provider.Lookup(c.Request.Context(), req.Symbol)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.processor.Submit(c.Request.Context(), ledger.SubmitRequest{
		Side:   ledger.SideBuy,
		UserID: CurrentUser(c),
		Symbol: quote.Symbol,
		Shares: req.Shares,
		Quote:  quote,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Trade executed successfully",
		"trade_id":    result.HistoryID,
		"total_cost":  result.Total,
		"new_balance": result.NewBalance,
	})
}

// Sell handles POST /api/trades/sell. The sell price is whatever the
// provider returns at execution time, resolved inside the ledger.
func (h *TradeHandler) Sell(c *gin.Context) {
	var req models.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Shares < 1 {
		writeError(c, models.ErrInvalidShareCount)
		return
	}

	result, err := h.processor.Submit(c.Request.Context(), ledger.SubmitRequest{
		Side:   ledger.SideSell,
		UserID: CurrentUser(c),
		Symbol: req.Symbol,
		Shares: req.Shares,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Stock sold successfully",
		"trade_id":       result.HistoryID,
		"total_proceeds": result.Total,
		"new_balance":    result.NewBalance,
	})
}

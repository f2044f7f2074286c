package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papertrade/papertrade/internal/ledger"
	"github.com/papertrade/papertrade/internal/quotes"
)

// PortfolioHandler serves the portfolio, history, and quote views.
type PortfolioHandler struct {
	ledger   *ledger.Ledger
	provider quotes.Provider
}

// NewPortfolioHandler creates a PortfolioHandler.
func NewPortfolioHandler(l *ledger.Ledger, provider quotes.Provider) *PortfolioHandler {
	return &PortfolioHandler{ledger: l, provider: provider}
}

// Portfolio handles GET /api/portfolio.
func (h *PortfolioHandler) Portfolio(c *gin.Context) {
	snapshot, err := h.ledger.Snapshot(c.Request.Context(), CurrentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// History handles GET /api/history.
func (h *PortfolioHandler) History(c *gin.Context) {
	entries, err := h.ledger.History(c.Request.Context(), CurrentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trades": entries,
		"count":  len(entries),
	})
}

// Quote handles GET /api/quote/:symbol.
func (h *PortfolioHandler) Quote(c *gin.Context) {
	quote, err := h.provider.Lookup(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

package handlers

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/papertrade/papertrade/internal/quotes"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PriceUpdate is one message on the price stream.
type PriceUpdate struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Change    decimal.Decimal `json:"change"` // percent vs. previous update
	Timestamp time.Time       `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins (for development and demo)
	},
}

// StreamHandler pushes simulated price updates over a websocket.
type StreamHandler struct {
	feed   *quotes.Simulated
	logger *zap.Logger
}

// NewStreamHandler creates a StreamHandler over the simulated feed.
func NewStreamHandler(feed *quotes.Simulated, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{feed: feed, logger: logger}
}

// Prices handles GET /ws/prices: one random symbol's fresh quote per
// second until the client goes away.
func (h *StreamHandler) Prices(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade error", zap.Error(err))
		return
	}
	defer conn.Close()

	h.logger.Debug("client connected to price stream")

	symbols := h.feed.Symbols()
	last := make(map[string]decimal.Decimal)

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		symbol := symbols[rand.Intn(len(symbols))]

		quote, err := h.feed.Lookup(c.Request.Context(), symbol)
		if err != nil {
			h.logger.Warn("price stream lookup error", zap.Error(err))
			return
		}

		change := decimal.Zero
		if prev, ok := last[symbol]; ok && prev.IsPositive() {
			change = quote.Price.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(2)
		}
		last[symbol] = quote.Price

		update := PriceUpdate{
			Symbol:    symbol,
			Price:     quote.Price,
			Change:    change,
			Timestamp: time.Now(),
		}

		if err := conn.WriteJSON(update); err != nil {
			h.logger.Debug("price stream client gone", zap.Error(err))
			return
		}
	}
}

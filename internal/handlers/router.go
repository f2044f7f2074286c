package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papertrade/papertrade/internal/auth"
	"github.com/papertrade/papertrade/internal/ledger"
	"github.com/papertrade/papertrade/internal/quotes"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with every route registered.
// stream may be nil when the simulated feed is not in use; the
// websocket endpoint is only mounted when it exists.
func NewRouter(
	authH *AuthHandler,
	tradeH *TradeHandler,
	portfolioH *PortfolioHandler,
	stream *StreamHandler,
	sessions *auth.SessionStore,
) *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/register", authH.Register)
		api.POST("/login", authH.Login)
		api.POST("/logout", authH.Logout)

		authed := api.Group("")
		authed.Use(RequireUser(sessions))
		{
			authed.GET("/quote/:symbol", portfolioH.Quote)
			authed.GET("/portfolio", portfolioH.Portfolio)
			authed.GET("/history", portfolioH.History)
			authed.POST("/trades/buy", tradeH.Buy)
			authed.POST("/trades/sell", tradeH.Sell)
		}
	}

	if stream != nil {
		router.GET("/ws/prices", stream.Prices)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Serve frontend
	router.GET("/", func(c *gin.Context) {
		c.File("./public/index.html")
	})
	router.NoRoute(func(c *gin.Context) {
		c.File("./public/index.html")
	})

	return router
}

// NewHandlers wires every handler from its dependencies. Kept separate
// from NewRouter so tests can mount a subset.
func NewHandlers(
	authSvc *auth.Service,
	sessions *auth.SessionStore,
	l *ledger.Ledger,
	processor *ledger.Processor,
	provider quotes.Provider,
	logger *zap.Logger,
) (*AuthHandler, *TradeHandler, *PortfolioHandler) {
	return NewAuthHandler(authSvc, sessions, logger),
		NewTradeHandler(processor, provider),
		NewPortfolioHandler(l, provider)
}

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/papertrade/papertrade/internal/auth"
	"github.com/papertrade/papertrade/internal/config"
	"github.com/papertrade/papertrade/internal/db"
	"github.com/papertrade/papertrade/internal/events"
	kafkaevents "github.com/papertrade/papertrade/internal/events/kafka"
	"github.com/papertrade/papertrade/internal/handlers"
	"github.com/papertrade/papertrade/internal/ledger"
	"github.com/papertrade/papertrade/internal/quotes"
	"go.uber.org/zap"
)

func main() {
	// Load .env file; absence is fine, plain environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	var logger *zap.Logger
	if cfg.GinMode == gin.ReleaseMode {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	// Initialize database
	database, err := db.Open(cfg.ConnString())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		logger.Fatal("failed to apply schema", zap.Error(err))
	}
	logger.Info("database connected")

	// Quote provider: external API when configured, simulated otherwise.
	// The simulated feed also drives the websocket price stream.
	var provider quotes.Provider
	var stream *handlers.StreamHandler
	if cfg.QuoteAPIURL != "" {
		provider = quotes.NewHTTPProvider(cfg.QuoteAPIURL, cfg.QuoteAPIKey, cfg.QuoteTimeout)
		logger.Info("using external quote provider", zap.String("url", cfg.QuoteAPIURL))
	} else {
		simulated := quotes.NewSimulated()
		provider = simulated
		stream = handlers.NewStreamHandler(simulated, logger)
		logger.Info("using simulated quote provider")
	}

	// Trade event publisher.
	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub := kafkaevents.NewPublisher(cfg.KafkaBrokers)
		defer kafkaPub.Close()
		publisher = kafkaPub
		logger.Info("publishing trade events", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	// Ledger and trade processor.
	led := ledger.New(database, provider)
	processor := ledger.NewProcessor(led, publisher, cfg.NumWorkers, logger)
	processor.Start()
	defer processor.Stop()

	// Auth.
	sessions := auth.NewSessionStore()
	authSvc := auth.NewService(database, cfg.StartingCash)

	authH, tradeH, portfolioH := handlers.NewHandlers(authSvc, sessions, led, processor, provider, logger)
	router := handlers.NewRouter(authH, tradeH, portfolioH, stream, sessions)

	logger.Info("server starting", zap.String("port", cfg.Port))

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

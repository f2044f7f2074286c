package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/papertrade/papertrade/internal/events"
	"github.com/papertrade/papertrade/internal/models"
	"go.uber.org/zap"
)

// Side distinguishes buys from sells.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// SubmitRequest is a trade to be processed. Quote is required for buys
// (resolved by the caller at call time) and ignored for sells, which
// fetch their own price at execution.
type SubmitRequest struct {
	Side   Side
	UserID int
	Symbol string
	Shares int
	Quote  *models.Quote
}

type outcome struct {
	result *TradeResult
	err    error
}

type job struct {
	ctx      context.Context
	req      SubmitRequest
	resultCh chan outcome
}

// Processor runs trades on a worker pool with per-user serialization.
type Processor struct {
	workers   int
	ledger    *Ledger
	publisher events.Publisher
	logger    *zap.Logger
	queue     chan job
	stopCh    chan struct{}
	wg        sync.WaitGroup
	locks     *userLocks
}

// NewProcessor creates a trade processor with the given worker count.
func NewProcessor(l *Ledger, publisher events.Publisher, workers int, logger *zap.Logger) *Processor {
	return &Processor{
		workers:   workers,
		ledger:    l,
		publisher: publisher,
		logger:    logger,
		queue:     make(chan job, 100),
		stopCh:    make(chan struct{}),
		locks:     newUserLocks(),
	}
}

// Start starts the worker pool.
func (p *Processor) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.logger.Info("trade workers started", zap.Int("workers", p.workers))
}

// Stop gracefully stops all workers.
func (p *Processor) Stop() {
	close(p.stopCh)
	p.wg.Wait()
	p.logger.Info("trade processor stopped")
}

func (p *Processor) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopCh:
			return

		case j := <-p.queue:
			p.logger.Debug("processing trade",
				zap.Int("worker", id),
				zap.Int("user_id", j.req.UserID),
				zap.String("side", string(j.req.Side)),
				zap.String("symbol", j.req.Symbol),
				zap.Int("shares", j.req.Shares),
			)
			result, err := p.process(j.ctx, j.req)
			j.resultCh <- outcome{result: result, err: err}
		}
	}
}

func (p *Processor) process(ctx context.Context, req SubmitRequest) (*TradeResult, error) {
	// Serialize trades for this user only, not globally.
	p.locks.Lock(req.UserID)
	defer p.locks.Unlock(req.UserID)

	var result *TradeResult
	var err error

	switch req.Side {
	case SideSell:
		result, err = p.ledger.Sell(ctx, req.UserID, req.Symbol, req.Shares)
	default:
		result, err = p.ledger.Buy(ctx, req.UserID, req.Symbol, req.Shares, req.Quote)
	}
	if err != nil {
		return nil, err
	}

	if pubErr := p.publisher.Publish(ctx, events.TradeExecuted{
		UserID:     req.UserID,
		Symbol:     result.Symbol,
		Side:       string(req.Side),
		Shares:     result.Shares,
		Price:      result.Price,
		Total:      result.Total,
		ExecutedAt: time.Now().UTC(),
	}); pubErr != nil {
		p.logger.Warn("failed to publish trade event",
			zap.Int("user_id", req.UserID),
			zap.String("symbol", result.Symbol),
			zap.Error(pubErr),
		)
	}

	return result, nil
}

// Submit queues a trade and waits for its result.
func (p *Processor) Submit(ctx context.Context, req SubmitRequest) (*TradeResult, error) {
	resultCh := make(chan outcome, 1)

	select {
	case p.queue <- job{ctx: ctx, req: req, resultCh: resultCh}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case out := <-resultCh:
		return out.result, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

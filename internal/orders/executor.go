package orders

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Checker-Finance/hyperliquid-adapter/internal/httpclient"
	"github.com/Checker-Finance/hyperliquid-adapter/internal/metrics"
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/model"
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/retrier"
)

// Exchange is the signed venue surface the executor drives.
type Exchange interface {
	SubmitOrder(ctx context.Context, identifier string, isBuy bool, size, price float64, clientOrderID string) (string, error)
	CancelOrder(ctx context.Context, identifier string, orderID int64) error
}

// Executor applies the submission retry policy: a fixed delay between
// attempts, transport failures retried up to the attempt cap, venue
// rejections terminal on first sight. Cancellation is always single-shot.
type Executor struct {
	exchange    Exchange
	maxAttempts int
	retryDelay  time.Duration
	logger      *zap.Logger
}

func NewExecutor(exchange Exchange, maxAttempts int, retryDelay time.Duration, logger *zap.Logger) *Executor {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Executor{
		exchange:    exchange,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		logger:      logger,
	}
}

// Submit places req, retrying transport failures with the same client order
// id on every attempt so the venue can deduplicate. The outcome always
// reports how many venue contacts were made; after a transport timeout the
// order may exist on the venue even when the attempt failed locally, and
// the client order id is the handle for reconciling that.
func (e *Executor) Submit(ctx context.Context, req model.OrderRequest) model.OrderOutcome {
	attempts := 0

	r := retrier.New(
		retrier.WithInitialInterval(e.retryDelay),
		retrier.WithMaxInterval(e.retryDelay),
		retrier.WithMultiplier(1),
		retrier.WithJitter(0),
		retrier.WithMaxRetries(e.maxAttempts-1),
	)

	var orderID string
	err := r.Do(ctx, func(ctx context.Context) error {
		attempts++
		metrics.OrderAttemptsTotal.Inc()

		oid, err := e.exchange.SubmitOrder(ctx, req.Identifier, req.Side.IsBuy(), req.Size, req.Price, req.ClientOrderID)
		if err == nil {
			orderID = oid
			return nil
		}

		if httpclient.IsTransport(err) {
			e.logger.Warn("orders.submit_transport_failure",
				zap.String("identifier", req.Identifier),
				zap.String("cloid", req.ClientOrderID),
				zap.Int("attempt", attempts),
				zap.Error(err))
			return err
		}

		e.logger.Warn("orders.submit_rejected",
			zap.String("identifier", req.Identifier),
			zap.String("cloid", req.ClientOrderID),
			zap.Error(err))
		return retrier.Permanent(err)
	})

	outcome := model.OrderOutcome{
		ClientOrderID: req.ClientOrderID,
		Attempts:      attempts,
		Retries:       attempts - 1,
	}

	switch {
	case err == nil:
		outcome.Status = model.OutcomeSucceeded
		outcome.OrderID = orderID
	case httpclient.IsTransport(err) || ctx.Err() != nil:
		outcome.Status = model.OutcomeExhausted
		outcome.Reason = err.Error()
	default:
		outcome.Status = model.OutcomeRejected
		outcome.Reason = err.Error()
	}

	metrics.IncOrderSubmission(string(outcome.Status))
	return outcome
}

// Cancel cancels a resting order. The raw order id is validated before the
// venue is contacted; a malformed id is terminal. Venue failures of any
// kind are reported, never retried, because a cancel raced by a fill is
// not safely repeatable.
func (e *Executor) Cancel(ctx context.Context, identifier, rawOrderID string) model.CancelResult {
	oid, err := strconv.ParseInt(rawOrderID, 10, 64)
	if err != nil {
		metrics.IncOrderCancellation("invalid")
		return model.CancelResult{
			Success: false,
			Message: "invalid order id: " + rawOrderID,
		}
	}

	if err := e.exchange.CancelOrder(ctx, identifier, oid); err != nil {
		e.logger.Warn("orders.cancel_failed",
			zap.String("identifier", identifier),
			zap.Int64("oid", oid),
			zap.Error(err))
		metrics.IncOrderCancellation("failed")
		return model.CancelResult{Success: false, Message: err.Error()}
	}

	metrics.IncOrderCancellation("ok")
	return model.CancelResult{Success: true, Message: "order cancelled"}
}

package orders

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Checker-Finance/hyperliquid-adapter/internal/assets"
	"github.com/Checker-Finance/hyperliquid-adapter/internal/hyperliquid"
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/model"
)

// OpenOrderSource supplies resting orders for an address.
type OpenOrderSource interface {
	OpenOrders(ctx context.Context, address string) ([]hyperliquid.OpenOrder, error)
}

// EventSink publishes order lifecycle events. Implementations must be safe
// for concurrent use.
type EventSink interface {
	PublishOrderEvent(ctx context.Context, event model.OrderEvent) error
}

// PlaceParams is a new-order request before validation and id assignment.
type PlaceParams struct {
	Identifier    string
	Side          string
	Size          float64
	Price         float64
	ClientOrderID string
}

// Service validates order requests, assigns idempotency tokens, runs the
// executor, and emits lifecycle events.
type Service struct {
	executor  *Executor
	source    OpenOrderSource
	directory DirectoryBuilder
	events    EventSink
	logger    *zap.Logger
}

// DirectoryBuilder supplies a fresh asset directory for symbol enrichment.
type DirectoryBuilder interface {
	Build(ctx context.Context) (*assets.Directory, error)
}

func NewService(executor *Executor, source OpenOrderSource, directory DirectoryBuilder, events EventSink, logger *zap.Logger) *Service {
	return &Service{
		executor:  executor,
		source:    source,
		directory: directory,
		events:    events,
		logger:    logger,
	}
}

// ClientOrderID derives the venue's client order id format from a free-form
// seed: 0x followed by 32 hex chars. The same seed always yields the same
// id, which is what makes retried submissions deduplicable.
func ClientOrderID(seed string) string {
	s := strings.TrimSpace(seed)
	if s == "" {
		s = uuid.NewString()
	}
	sum := sha256.Sum256([]byte(s))
	return "0x" + hex.EncodeToString(sum[:16])
}

// PlaceOrder validates params, derives the client order id, and submits.
// Validation failures never reach the venue.
func (s *Service) PlaceOrder(ctx context.Context, params PlaceParams) model.OrderOutcome {
	side, err := model.ParseSide(params.Side)
	if err != nil {
		return invalidOutcome(err.Error())
	}
	if strings.TrimSpace(params.Identifier) == "" {
		return invalidOutcome("identifier is required")
	}
	if params.Size <= 0 {
		return invalidOutcome("size must be positive")
	}
	if params.Price <= 0 {
		return invalidOutcome("price must be positive")
	}

	req := model.OrderRequest{
		Identifier:    params.Identifier,
		Side:          side,
		Size:          params.Size,
		Price:         params.Price,
		ClientOrderID: ClientOrderID(params.ClientOrderID),
	}

	outcome := s.executor.Submit(ctx, req)

	s.logger.Info("orders.placed",
		zap.String("identifier", req.Identifier),
		zap.String("side", string(req.Side)),
		zap.String("cloid", req.ClientOrderID),
		zap.String("status", string(outcome.Status)),
		zap.Int("attempts", outcome.Attempts))

	s.publish(ctx, req, outcome)
	return outcome
}

// CancelOrder cancels a resting order in a single attempt.
func (s *Service) CancelOrder(ctx context.Context, identifier, rawOrderID string) model.CancelResult {
	result := s.executor.Cancel(ctx, identifier, rawOrderID)

	s.logger.Info("orders.cancel",
		zap.String("identifier", identifier),
		zap.String("oid", rawOrderID),
		zap.Bool("success", result.Success))

	if s.events != nil {
		status := "cancel_failed"
		if result.Success {
			status = "cancelled"
		}
		evt := model.OrderEvent{
			Venue:      hyperliquid.Venue,
			Identifier: identifier,
			OrderID:    rawOrderID,
			Status:     status,
			Reason:     result.Message,
			Timestamp:  time.Now().UTC(),
		}
		if err := s.events.PublishOrderEvent(ctx, evt); err != nil {
			s.logger.Warn("orders.event_publish_failed", zap.Error(err))
		}
	}
	return result
}

// OpenOrders lists resting orders with human symbols resolved from a fresh
// directory. Enrichment is best effort: when the directory cannot be built
// the raw identifiers are still returned.
func (s *Service) OpenOrders(ctx context.Context, address string) ([]model.OpenOrderRecord, error) {
	raw, err := s.source.OpenOrders(ctx, address)
	if err != nil {
		return nil, err
	}

	records := hyperliquid.MapOpenOrders(raw)

	if s.directory != nil {
		dir, err := s.directory.Build(ctx)
		if err != nil {
			s.logger.Warn("orders.symbol_enrichment_skipped", zap.Error(err))
			return records, nil
		}
		for i := range records {
			if sym, ok := dir.SymbolFor(records[i].Identifier); ok {
				records[i].Symbol = sym
			}
		}
	}
	return records, nil
}

func (s *Service) publish(ctx context.Context, req model.OrderRequest, outcome model.OrderOutcome) {
	if s.events == nil {
		return
	}
	evt := model.OrderEvent{
		Venue:         hyperliquid.Venue,
		Identifier:    req.Identifier,
		Side:          string(req.Side),
		Size:          req.Size,
		Price:         req.Price,
		OrderID:       outcome.OrderID,
		ClientOrderID: outcome.ClientOrderID,
		Status:        string(outcome.Status),
		Attempts:      outcome.Attempts,
		Reason:        outcome.Reason,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.events.PublishOrderEvent(ctx, evt); err != nil {
		s.logger.Warn("orders.event_publish_failed", zap.Error(err))
	}
}

func invalidOutcome(reason string) model.OrderOutcome {
	return model.OrderOutcome{
		Status: model.OutcomeInvalid,
		Reason: reason,
	}
}

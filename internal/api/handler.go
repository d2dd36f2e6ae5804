package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Checker-Finance/hyperliquid-adapter/internal/orders"
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/config"
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/model"
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/utils"
)

// PortfolioService defines the valuation operations used by the handler.
type PortfolioService interface {
	Valuate(ctx context.Context, address string) (*model.PortfolioValuation, error)
}

// OrderService defines the order operations used by the handler.
type OrderService interface {
	PlaceOrder(ctx context.Context, params orders.PlaceParams) model.OrderOutcome
	CancelOrder(ctx context.Context, identifier, rawOrderID string) model.CancelResult
	OpenOrders(ctx context.Context, address string) ([]model.OpenOrderRecord, error)
}

// Handler handles HTTP API requests for the adapter.
type Handler struct {
	logger    *zap.Logger
	portfolio PortfolioService
	orders    OrderService
	wallets   []config.WalletPreset
}

// NewHandler creates a new Handler. wallets are the named account presets
// accepted in place of raw addresses on read endpoints.
func NewHandler(logger *zap.Logger, portfolio PortfolioService, orderSvc OrderService, wallets []config.WalletPreset) *Handler {
	return &Handler{
		logger:    logger,
		portfolio: portfolio,
		orders:    orderSvc,
		wallets:   wallets,
	}
}

// resolveAddress maps a wallet preset name to its address, or validates the
// raw address shape.
func (h *Handler) resolveAddress(param string) (string, bool) {
	for _, w := range h.wallets {
		if w.Name == param {
			return w.Address, true
		}
	}
	if validAddress(param) {
		return param, true
	}
	return "", false
}

// GetPortfolioHandler returns the valued holdings for an address or preset.
func (h *Handler) GetPortfolioHandler(c *fiber.Ctx) error {
	address, ok := h.resolveAddress(c.Params("address"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown wallet or malformed address"})
	}

	valuation, err := h.portfolio.Valuate(c.Context(), address)
	if err != nil {
		h.logger.Error("api.portfolio.failed",
			zap.String("address", utils.MaskAddress(address)),
			zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(toPortfolioResponse(valuation))
}

// GetOpenOrdersHandler lists resting orders for an address or preset.
func (h *Handler) GetOpenOrdersHandler(c *fiber.Ctx) error {
	address, ok := h.resolveAddress(c.Params("address"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown wallet or malformed address"})
	}

	records, err := h.orders.OpenOrders(c.Context(), address)
	if err != nil {
		h.logger.Error("api.open_orders.failed",
			zap.String("address", utils.MaskAddress(address)),
			zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"orders": records})
}

// CreateOrderHandler submits a limit order.
func (h *Handler) CreateOrderHandler(c *fiber.Ctx) error {
	var req OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	outcome := h.orders.PlaceOrder(c.Context(), orders.PlaceParams{
		Identifier:    req.Identifier,
		Side:          req.Side,
		Size:          req.Size,
		Price:         req.Price,
		ClientOrderID: req.ClientID,
	})

	if outcome.Status == model.OutcomeInvalid {
		return c.Status(fiber.StatusBadRequest).JSON(toOrderResponse(outcome))
	}

	// Rejected and exhausted outcomes are terminal business results, not
	// API failures; the caller inspects the status field.
	return c.Status(fiber.StatusOK).JSON(toOrderResponse(outcome))
}

// CancelOrderHandler cancels a resting order.
func (h *Handler) CancelOrderHandler(c *fiber.Ctx) error {
	var req OrderCancelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := h.orders.CancelOrder(c.Context(), req.Identifier, req.OrderID)
	return c.Status(fiber.StatusOK).JSON(CancelResponse{
		Success: result.Success,
		Message: result.Message,
	})
}

// GetWalletsHandler lists the configured wallet presets.
func (h *Handler) GetWalletsHandler(c *fiber.Ctx) error {
	out := make([]WalletResponse, 0, len(h.wallets))
	for _, w := range h.wallets {
		out = append(out, WalletResponse{Name: w.Name, Address: w.Address})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"wallets": out})
}

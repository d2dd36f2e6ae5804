package api

import (
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/model"
)

// HoldingResponse is one priced position in a portfolio response.
type HoldingResponse struct {
	Symbol     string `json:"symbol"`
	Identifier string `json:"identifier"`
	Total      string `json:"total"`
	Hold       string `json:"hold"`
	Price      string `json:"price"`
	Value      string `json:"value"`
	HasPrice   bool   `json:"hasPrice"`
}

// PortfolioResponse is the valued breakdown of an account.
type PortfolioResponse struct {
	Address    string            `json:"address"`
	Quote      string            `json:"quote"`
	Holdings   []HoldingResponse `json:"holdings"`
	TotalValue string            `json:"totalValue"`
	AsOf       int64             `json:"asOf"`
}

// OrderResponse is the terminal outcome of a submission sequence.
type OrderResponse struct {
	Status        string `json:"status"`
	OrderID       string `json:"orderId,omitempty"`
	ClientOrderID string `json:"clientOrderId,omitempty"`
	Attempts      int    `json:"attempts"`
	Retries       int    `json:"retries"`
	ErrorMsg      string `json:"errorMessage,omitempty"`
}

// CancelResponse is the outcome of a cancellation attempt.
type CancelResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WalletResponse is one configured wallet preset.
type WalletResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func toPortfolioResponse(v *model.PortfolioValuation) PortfolioResponse {
	holdings := make([]HoldingResponse, 0, len(v.Holdings))
	for _, h := range v.Holdings {
		holdings = append(holdings, HoldingResponse{
			Symbol:     h.Symbol,
			Identifier: h.Identifier,
			Total:      h.Total.String(),
			Hold:       h.Hold.String(),
			Price:      h.Price.String(),
			Value:      h.Value.String(),
			HasPrice:   h.HasPrice,
		})
	}
	return PortfolioResponse{
		Address:    v.Address,
		Quote:      v.Quote,
		Holdings:   holdings,
		TotalValue: v.TotalValue.String(),
		AsOf:       v.AsOf.Unix(),
	}
}

func toOrderResponse(o model.OrderOutcome) OrderResponse {
	return OrderResponse{
		Status:        string(o.Status),
		OrderID:       o.OrderID,
		ClientOrderID: o.ClientOrderID,
		Attempts:      o.Attempts,
		Retries:       o.Retries,
		ErrorMsg:      o.Reason,
	}
}

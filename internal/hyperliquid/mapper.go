package hyperliquid

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Checker-Finance/hyperliquid-adapter/pkg/model"
)

// MapBalances converts venue balance rows into canonical records. Rows whose
// quantities do not parse are dropped with a warning rather than poisoning
// the whole snapshot.
func MapBalances(rows []SpotBalance, logger *zap.Logger) []model.BalanceRecord {
	out := make([]model.BalanceRecord, 0, len(rows))
	for _, r := range rows {
		total, err := decimal.NewFromString(r.Total)
		if err != nil {
			logger.Warn("hyperliquid.balance_unparseable",
				zap.String("coin", r.Coin),
				zap.String("total", r.Total))
			continue
		}
		hold, err := decimal.NewFromString(r.Hold)
		if err != nil {
			hold = decimal.Zero
		}
		out = append(out, model.BalanceRecord{
			Symbol: r.Coin,
			Total:  total,
			Hold:   hold,
		})
	}
	return out
}

// MapOpenOrder converts one venue resting order into a canonical record.
// The venue encodes side as "B" for bids and "A" for asks.
func MapOpenOrder(o OpenOrder) model.OpenOrderRecord {
	label := "sell"
	if o.Side == "B" {
		label = "buy"
	}
	return model.OpenOrderRecord{
		Identifier: o.Coin,
		OrderID:    o.Oid,
		Side:       o.Side,
		SideLabel:  label,
		Size:       o.Sz,
		LimitPrice: o.LimitPx,
		Timestamp:  o.Timestamp,
	}
}

// MapOpenOrders converts a batch of resting orders.
func MapOpenOrders(orders []OpenOrder) []model.OpenOrderRecord {
	out := make([]model.OpenOrderRecord, 0, len(orders))
	for _, o := range orders {
		out = append(out, MapOpenOrder(o))
	}
	return out
}

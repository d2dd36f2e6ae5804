package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceRecord is one spot balance row reported by the venue for an account.
// Total includes the amount on hold (reserved by open orders).
type BalanceRecord struct {
	Symbol string
	Total  decimal.Decimal
	Hold   decimal.Decimal
}

// ValuedHolding is a BalanceRecord joined with its resolved market identifier
// and quote-currency price. HasPrice is false when no price could be resolved
// for the asset; such holdings are still listed, with Price and Value zero.
type ValuedHolding struct {
	Symbol     string
	Identifier string
	Total      decimal.Decimal
	Hold       decimal.Decimal
	Price      decimal.Decimal
	Value      decimal.Decimal
	HasPrice   bool
}

// PortfolioValuation is the valued breakdown of an account's non-zero
// balances, sorted by value descending, plus the grand total.
type PortfolioValuation struct {
	Address    string
	Quote      string
	Holdings   []ValuedHolding
	TotalValue decimal.Decimal
	AsOf       time.Time
}

package model

import (
	"fmt"
	"strings"
)

// Side is the order direction.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// ParseSide normalizes a free-form side string.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "b":
		return SideBuy, nil
	case "sell", "a", "s":
		return SideSell, nil
	default:
		return "", fmt.Errorf("invalid order side %q", s)
	}
}

// IsBuy reports whether the side is a buy.
func (s Side) IsBuy() bool { return s == SideBuy }

// OrderRequest describes a good-till-cancel limit order to submit.
// ClientOrderID is the idempotency token attached to every attempt of one
// logical submission, so the venue deduplicates retries after a timeout.
type OrderRequest struct {
	Identifier    string
	Side          Side
	Size          float64
	Price         float64
	ClientOrderID string
}

// OutcomeStatus is the terminal state of a submission attempt sequence.
type OutcomeStatus string

const (
	// OutcomeSucceeded means the venue accepted the order.
	OutcomeSucceeded OutcomeStatus = "succeeded"
	// OutcomeRejected means the venue declined the order (business-level,
	// never retried).
	OutcomeRejected OutcomeStatus = "rejected"
	// OutcomeExhausted means every attempt failed at the transport layer.
	OutcomeExhausted OutcomeStatus = "exhausted"
	// OutcomeInvalid means the request failed caller-input validation and the
	// venue was never contacted.
	OutcomeInvalid OutcomeStatus = "invalid"
)

// OrderOutcome is the result of one submission sequence. Attempts counts
// every venue contact including the successful one; Retries is Attempts-1
// for anything past the first. Callers can use Attempts to reconcile
// possible duplicates after transport timeouts.
type OrderOutcome struct {
	Status        OutcomeStatus
	OrderID       string
	ClientOrderID string
	Attempts      int
	Retries       int
	Reason        string
}

// CancelResult is the outcome of a cancellation attempt: a success flag plus
// a human-readable message. Cancellation is never retried.
type CancelResult struct {
	Success bool
	Message string
}

// OpenOrderRecord is a venue open-order row passed through to callers, with
// the human symbol resolved from the market identifier when known.
type OpenOrderRecord struct {
	Identifier string `json:"coin"`
	Symbol     string `json:"symbol"`
	OrderID    int64  `json:"oid"`
	Side       string `json:"side"`
	SideLabel  string `json:"sideLabel"`
	Size       string `json:"size"`
	LimitPrice string `json:"limitPrice"`
	Timestamp  int64  `json:"timestamp"`
}

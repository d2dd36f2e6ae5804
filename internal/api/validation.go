package api

import (
	"fmt"
	"strings"
)

// Validate checks that OrderCreateRequest has all required fields.
func (r *OrderCreateRequest) Validate() error {
	if strings.TrimSpace(r.Identifier) == "" {
		return fmt.Errorf("identifier is required")
	}
	if r.Side == "" {
		return fmt.Errorf("side is required")
	}
	if r.Size <= 0 {
		return fmt.Errorf("size must be positive")
	}
	if r.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	return nil
}

// Validate checks that OrderCancelRequest has all required fields.
func (r *OrderCancelRequest) Validate() error {
	if strings.TrimSpace(r.Identifier) == "" {
		return fmt.Errorf("identifier is required")
	}
	if strings.TrimSpace(r.OrderID) == "" {
		return fmt.Errorf("orderId is required")
	}
	return nil
}

// validAddress does a shape check on an account address: 0x plus 40 hex chars.
func validAddress(addr string) bool {
	if len(addr) != 42 || !strings.HasPrefix(addr, "0x") {
		return false
	}
	for _, c := range addr[2:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

package orders

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrPriceUnavailable is returned when a market order needs a close
// price and the instrument has no price point at all.
var ErrPriceUnavailable = errors.New("unable to find close price for instrument")

// FieldIssue describes one request-shape problem.
type FieldIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// MalformedRequestError carries every shape problem found in an order
// request.
type MalformedRequestError struct {
	Issues []FieldIssue
}

func (e *MalformedRequestError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
	}
	return "malformed order request: " + strings.Join(parts, "; ")
}

// NotFoundError reports a missing user or instrument.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// InsufficientFundsError reports a BUY or CASH_OUT exceeding the user's
// cash balance.
type InsufficientFundsError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds. required: %s, available: %s",
		e.Required.String(), e.Available.String())
}

// InsufficientHoldingsError reports a SELL exceeding the user's current
// position quantity.
type InsufficientHoldingsError struct {
	InstrumentID uint
	Required     int64
	Available    int64
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("insufficient holdings. required: %d, available: %d",
		e.Required, e.Available)
}

// PersistenceError wraps a failed order commit. The ledger is never
// left partially updated behind one of these.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "failed to commit order: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

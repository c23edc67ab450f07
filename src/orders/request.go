package orders

import (
	"github.com/shopspring/decimal"

	"brokerapi/src/model"
)

const (
	msgTypeInvalid         = "type must be 'MARKET' or 'LIMIT'"
	msgInstrumentIDInvalid = "instrumentId must be a positive integer"
	msgUserIDInvalid       = "userId must be a positive integer"
	msgSideInvalid         = "side must be one of 'BUY','SELL','CASH_IN','CASH_OUT'"
	msgLimitSideInvalid    = "LIMIT side must be 'BUY' or 'SELL'"
	msgSizeInvalid         = "size must be a positive number"
	msgAmountInvalid       = "amount must be a positive number"
	msgLimitPriceInvalid   = "limitPrice must be a positive number"
	msgSizeOrAmount        = "Provide either size or amount (not both)"
)

// CreateOrderRequest is the inbound order DTO. MARKET BUY/SELL orders
// carry exactly one of Size or Amount; cash movements always use
// Amount; LIMIT orders carry Size and LimitPrice.
type CreateOrderRequest struct {
	Type         string           `json:"type"`
	InstrumentID uint             `json:"instrumentId"`
	UserID       uint             `json:"userId"`
	Side         string           `json:"side"`
	Size         *int64           `json:"size,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	LimitPrice   *decimal.Decimal `json:"limitPrice,omitempty"`
}

func validSide(side string) bool {
	switch side {
	case model.OrderSideBuy, model.OrderSideSell, model.OrderSideCashIn, model.OrderSideCashOut:
		return true
	}
	return false
}

// Validate checks the request shape and collects every issue found.
// Returns nil when the request is well formed.
func (r *CreateOrderRequest) Validate() *MalformedRequestError {
	var issues []FieldIssue
	add := func(path, message string) {
		issues = append(issues, FieldIssue{Path: path, Message: message})
	}

	if r.Type != model.OrderTypeMarket && r.Type != model.OrderTypeLimit {
		add("type", msgTypeInvalid)
	}
	if r.InstrumentID == 0 {
		add("instrumentId", msgInstrumentIDInvalid)
	}
	if r.UserID == 0 {
		add("userId", msgUserIDInvalid)
	}
	if !validSide(r.Side) {
		add("side", msgSideInvalid)
	}
	if len(issues) > 0 {
		return &MalformedRequestError{Issues: issues}
	}

	if r.Type == model.OrderTypeLimit {
		if r.Side != model.OrderSideBuy && r.Side != model.OrderSideSell {
			add("side", msgLimitSideInvalid)
		}
		if r.Size == nil || *r.Size <= 0 {
			add("size", msgSizeInvalid)
		}
		if r.LimitPrice == nil || !r.LimitPrice.IsPositive() {
			add("limitPrice", msgLimitPriceInvalid)
		}
		if len(issues) > 0 {
			return &MalformedRequestError{Issues: issues}
		}
		return nil
	}

	// MARKET cases. Cash movements are amount-based.
	if r.Side == model.OrderSideCashIn || r.Side == model.OrderSideCashOut {
		if r.Amount == nil || !r.Amount.IsPositive() {
			add("amount", msgAmountInvalid)
		}
		if len(issues) > 0 {
			return &MalformedRequestError{Issues: issues}
		}
		return nil
	}

	hasSize := r.Size != nil
	hasAmount := r.Amount != nil
	if hasSize == hasAmount {
		add("(size|amount)", msgSizeOrAmount)
	}
	if hasSize && *r.Size <= 0 {
		add("size", msgSizeInvalid)
	}
	if hasAmount && !r.Amount.IsPositive() {
		add("amount", msgAmountInvalid)
	}
	if len(issues) > 0 {
		return &MalformedRequestError{Issues: issues}
	}

	return nil
}

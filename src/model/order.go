package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderSideBuy     = "BUY"
	OrderSideSell    = "SELL"
	OrderSideCashIn  = "CASH_IN"
	OrderSideCashOut = "CASH_OUT"
)

const (
	OrderTypeMarket = "MARKET"
	OrderTypeLimit  = "LIMIT"
)

const (
	OrderStatusNew       = "NEW"
	OrderStatusFilled    = "FILLED"
	OrderStatusRejected  = "REJECTED"
	OrderStatusCancelled = "CANCELLED"
)

// Order is the immutable record of a submitted order. For BUY/SELL the
// Price column holds the unit price; for CASH_IN/CASH_OUT it holds the
// total cash amount moved and Size is zero.
type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	InstrumentID uint            `gorm:"column:instrumentid;index" json:"instrumentId"`
	UserID       uint            `gorm:"column:userid;index" json:"userId"`
	Side         string          `gorm:"size:10;not null" json:"side"`
	Type         string          `gorm:"size:10;not null" json:"type"`
	Size         int64           `json:"size"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	Status       string          `gorm:"size:20;not null" json:"status"`
	Reference    string          `gorm:"size:36;index" json:"reference,omitempty"`
	Datetime     time.Time       `json:"datetime"`
}

func (Order) TableName() string {
	return "orders"
}

// IsCashMovement reports whether the order moves cash without touching
// any stock position.
func (o *Order) IsCashMovement() bool {
	return o.Side == OrderSideCashIn || o.Side == OrderSideCashOut
}

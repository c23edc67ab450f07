package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position holds the current quantity and cumulative cost basis for one
// (user, instrument) pair. CostBasis is the total money invested in the
// shares currently held, not a per-share figure. It is intentionally not
// reset when Quantity returns to zero.
type Position struct {
	UserID       uint            `gorm:"column:userid;primaryKey;autoIncrement:false" json:"userId"`
	InstrumentID uint            `gorm:"column:instrumentid;primaryKey;autoIncrement:false" json:"instrumentId"`
	Quantity     int64           `json:"quantity"`
	CostBasis    decimal.Decimal `gorm:"column:costbasis;type:numeric(10,2)" json:"costBasis"`
	LastOrderID  *uint           `gorm:"column:lastorderid;index" json:"lastOrderId,omitempty"`
	UpdatedAt    time.Time       `gorm:"column:updatedat" json:"updatedAt"`
}

func (Position) TableName() string {
	return "stock_positions"
}

// AverageCost returns the average cost per share, zero when no shares
// are held.
func (p *Position) AverageCost() decimal.Decimal {
	if p.Quantity <= 0 {
		return decimal.Zero
	}
	return p.CostBasis.Div(decimal.NewFromInt(p.Quantity))
}

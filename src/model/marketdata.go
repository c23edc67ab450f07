package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketData is one daily price point for an instrument. The series is
// append-only; the current price of an instrument is the close of its
// most recent row.
type MarketData struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	InstrumentID  uint            `gorm:"column:instrumentid;index" json:"instrumentId"`
	High          decimal.Decimal `gorm:"type:numeric(10,2)" json:"high"`
	Low           decimal.Decimal `gorm:"type:numeric(10,2)" json:"low"`
	Open          decimal.Decimal `gorm:"type:numeric(10,2)" json:"open"`
	Close         decimal.Decimal `gorm:"type:numeric(10,2)" json:"close"`
	PreviousClose decimal.Decimal `gorm:"column:previousclose;type:numeric(10,2)" json:"previousClose"`
	Date          time.Time       `gorm:"type:date" json:"date"`
}

func (MarketData) TableName() string {
	return "marketdata"
}

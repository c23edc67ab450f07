package model

const (
	InstrumentTypeStock    = "ACCIONES"
	InstrumentTypeCurrency = "MONEDA"
)

// Instrument is immutable reference data. Currency rows (type MONEDA)
// act as the pseudo-instrument counterpart for cash movements.
type Instrument struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Ticker string `gorm:"size:10" json:"ticker"`
	Name   string `gorm:"size:255" json:"name"`
	Type   string `gorm:"size:10" json:"type"`
}

func (Instrument) TableName() string {
	return "instruments"
}

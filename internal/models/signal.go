package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Signal is one trading recommendation produced by the upstream analysis
// pipeline. This service only reads the table; rows are never written here.
type Signal struct {
	ID        string           `gorm:"primaryKey;type:text"`
	Symbol    string           `gorm:"type:text;not null"`
	Direction string           `gorm:"type:text"`
	Entry     decimal.Decimal  `gorm:"type:numeric(20,10)"`
	TP        decimal.Decimal  `gorm:"type:numeric(20,10);column:tp"`
	SL        decimal.Decimal  `gorm:"type:numeric(20,10);column:sl"`
	WinRate   *decimal.Decimal `gorm:"type:numeric(10,4);column:group_win_rate"`
	CreatedAt time.Time        `gorm:"type:timestamptz;index"`
}

func (Signal) TableName() string {
	return "signals_with_rates"
}

package models

import "time"

type MarketingExpense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	PeriodMonth int       `gorm:"index" json:"period_month"` // 1..12
	PeriodYear  int       `gorm:"index" json:"period_year"`
	Channel     string    `json:"channel"`
	Amount      float64   `json:"amount"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedBy   *uint     `json:"created_by,omitempty"`
}

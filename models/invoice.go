package models

import "time"

// Invoice es una factura de coach (tabla coach_invoices). Las rechazadas no
// cuentan como gasto.
type Invoice struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	CoachID     *uint      `json:"coach_id,omitempty"`
	Amount      float64    `json:"amount"`
	Status      string     `gorm:"default:pending" json:"status"` // pending, approved, rejected
	PeriodDate  *time.Time `gorm:"index" json:"period_date,omitempty"`
	Description string     `gorm:"type:text" json:"description"`
	FileURL     string     `json:"file_url"`

	Coach *User `json:"coach,omitempty" gorm:"foreignKey:CoachID;references:ID"`
}

func (Invoice) TableName() string {
	return "coach_invoices"
}

package models

import "time"

// PaymentLink respalda el importe de una renovación cuando el cliente solo
// tiene el enlace de pago. Price llega tal cual del backoffice de pagos y
// puede venir con formato europeo ("1.234,56").
type PaymentLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	Name      string    `json:"name"`
	URL       string    `gorm:"uniqueIndex" json:"url"`
	Price     string    `json:"price"`
	Active    bool      `gorm:"default:true" json:"active"`
}

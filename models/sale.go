package models

import "time"

type Sale struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	ClientFirstName string `json:"client_first_name"`
	ClientLastName  string `json:"client_last_name"`
	ClientEmail     string `gorm:"index" json:"client_email"`

	SaleAmount       float64  `json:"sale_amount"`
	NetAmount        *float64 `json:"net_amount,omitempty"`
	CommissionAmount float64  `json:"commission_amount"`
	CommissionPaid   bool     `gorm:"default:false" json:"commission_paid"`

	// won, pending, failed, onboarding_completed...
	Status string `gorm:"default:pending" json:"status"`

	PaymentReceiptURL string     `json:"payment_receipt_url"`
	SaleDate          *time.Time `gorm:"index" json:"sale_date,omitempty"`
	ContractDuration  int        `gorm:"default:0" json:"contract_duration"`

	CloserID   *uint  `json:"closer_id,omitempty"`
	CloserName string `json:"closer_name"`

	Closer *User `json:"closer,omitempty" gorm:"foreignKey:CloserID;references:ID"`
}

// RevenueAmount devuelve el importe real de la venta: neto si existe y si no,
// el importe contratado.
func (s *Sale) RevenueAmount() float64 {
	if s.NetAmount != nil && *s.NetAmount != 0 {
		return *s.NetAmount
	}
	return s.SaleAmount
}

// EffectiveDate devuelve sale_date y si falta, created_at.
func (s *Sale) EffectiveDate() time.Time {
	if s.SaleDate != nil {
		return *s.SaleDate
	}
	return s.CreatedAt
}

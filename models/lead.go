package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Lead es un contacto del equipo de ventas (mini-app de leads).
type Lead struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Name  string `json:"name" validate:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Age   string `json:"age"`
	Sex   string `json:"sex"`

	// new, contacted, appointment_set, show, no_show, sold, lost, unqualified
	Status string `gorm:"default:new" json:"status"`

	Interest        string `json:"interest"`
	Situacion       string `json:"situacion"`
	TipoCancer      string `json:"tipo_cancer"`
	Estadio         string `json:"estadio"`
	PerdidaPeso     string `json:"perdida_peso"`
	ActividadFisica string `json:"actividad_fisica"`
	Disponibilidad  string `json:"disponibilidad"`
	DownloadedKit   bool   `gorm:"default:false" json:"downloaded_kit"`
	NivelCompromiso int    `gorm:"default:0" json:"nivel_compromiso" validate:"min=0,max=10"`
	Score           int    `gorm:"default:0" json:"score"`
	Notes           string `gorm:"type:text" json:"notes"`
	CallOutcome     string `json:"call_outcome"`

	SaleAmount      *float64   `json:"sale_amount,omitempty"`
	LastContactedAt *time.Time `json:"last_contacted_at,omitempty"`
	AppointmentAt   *time.Time `json:"appointment_at,omitempty"`
	CloserID        *uint      `json:"closer_id,omitempty"`
}

var leadStatuses = map[string]bool{
	"new": true, "contacted": true, "appointment_set": true, "show": true,
	"no_show": true, "sold": true, "lost": true, "unqualified": true,
}

func (l *Lead) Validate() error {
	validate := validator.New()

	if err := validate.Struct(l); err != nil {
		return err
	}

	if l.Status != "" && !leadStatuses[l.Status] {
		return fmt.Errorf("estado de lead no válido: %s", l.Status)
	}
	return nil
}

// ScoringRule suma points cuando el campo field_name del lead coincide
// exactamente con value_match.
type ScoringRule struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	FieldName  string    `json:"field_name"`
	ValueMatch string    `json:"value_match"`
	Points     int       `json:"points"`
}

package models

import (
	"time"

	"cuidarte/constants"
)

// Program guarda el estado de renovación por fase (F1 contrato inicial,
// F2..F5 renovaciones sucesivas). Las fechas pueden faltar en datos antiguos.
type Program struct {
	F1EndDate *time.Time `json:"f1_endDate,omitempty"`

	F2RenewalDate       *time.Time `json:"f2_renewalDate,omitempty"`
	RenewalF2Contracted bool       `json:"renewal_f2_contracted"`
	F2Duration          int        `json:"f2_duration"`
	F2EndDate           *time.Time `json:"f2_endDate,omitempty"`

	F3RenewalDate       *time.Time `json:"f3_renewalDate,omitempty"`
	RenewalF3Contracted bool       `json:"renewal_f3_contracted"`
	F3Duration          int        `json:"f3_duration"`
	F3EndDate           *time.Time `json:"f3_endDate,omitempty"`

	F4RenewalDate       *time.Time `json:"f4_renewalDate,omitempty"`
	RenewalF4Contracted bool       `json:"renewal_f4_contracted"`
	F4Duration          int        `json:"f4_duration"`
	F4EndDate           *time.Time `json:"f4_endDate,omitempty"`

	F5RenewalDate       *time.Time `json:"f5_renewalDate,omitempty"`
	RenewalF5Contracted bool       `json:"renewal_f5_contracted"`
	F5Duration          int        `json:"f5_duration"`
}

// PhaseRenewal es la vista tipada de una fase de renovación, para recorrer
// F2..F5 sin acceso por nombre de campo.
type PhaseRenewal struct {
	Phase       string
	RenewalDate *time.Time
	Contracted  bool
	Duration    int
}

// Renewals devuelve las fases de renovación en orden F2..F5.
func (p *Program) Renewals() []PhaseRenewal {
	return []PhaseRenewal{
		{Phase: constants.PhaseF2, RenewalDate: p.F2RenewalDate, Contracted: p.RenewalF2Contracted, Duration: p.F2Duration},
		{Phase: constants.PhaseF3, RenewalDate: p.F3RenewalDate, Contracted: p.RenewalF3Contracted, Duration: p.F3Duration},
		{Phase: constants.PhaseF4, RenewalDate: p.F4RenewalDate, Contracted: p.RenewalF4Contracted, Duration: p.F4Duration},
		{Phase: constants.PhaseF5, RenewalDate: p.F5RenewalDate, Contracted: p.RenewalF5Contracted, Duration: p.F5Duration},
	}
}

type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	FirstName string `json:"firstName"`
	Surname   string `json:"surname"`
	Email     string `gorm:"index" json:"email"`
	Phone     string `json:"phone"`

	Status string `gorm:"default:active" json:"status"`

	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	ContractEndDate  *time.Time `json:"contract_end_date,omitempty"`

	PauseDate       *time.Time `json:"pauseDate,omitempty"`
	AbandonmentDate *time.Time `json:"abandonmentDate,omitempty"`
	InactiveDate    *time.Time `json:"inactiveDate,omitempty"`

	CoachID       *uint  `json:"coach_id,omitempty"`
	PropertyCoach string `json:"property_coach"`

	ProgramDurationMonths int `gorm:"default:0" json:"program_duration_months"`

	RenewalPaymentLink string  `json:"renewal_payment_link"`
	RenewalReceiptURL  string  `json:"renewal_receipt_url"`
	RenewalAmount      float64 `json:"renewal_amount"`
	RenewalDuration    int     `json:"renewal_duration"`

	Program Program `gorm:"embedded;embeddedPrefix:program_" json:"program"`

	Coach *User `json:"coach,omitempty" gorm:"foreignKey:CoachID;references:ID"`
}

// FullName devuelve nombre y apellidos del cliente.
func (c *Client) FullName() string {
	if c.Surname == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.Surname
}

// EffectiveStartDate devuelve la fecha de alta: start_date y si falta,
// registration_date.
func (c *Client) EffectiveStartDate() *time.Time {
	if c.StartDate != nil {
		return c.StartDate
	}
	return c.RegistrationDate
}

// LeaveDate devuelve la fecha de salida: abandono y si falta, inactividad.
func (c *Client) LeaveDate() *time.Time {
	if c.AbandonmentDate != nil {
		return c.AbandonmentDate
	}
	return c.InactiveDate
}

// CoachName devuelve el coach para la atribución de ingresos.
func (c *Client) CoachName() string {
	if c.PropertyCoach != "" {
		return c.PropertyCoach
	}
	if c.Coach != nil && c.Coach.Name != "" {
		return c.Coach.Name
	}
	return constants.UnassignedCoach
}

package dto

// ExpenseRequest es el alta/edición de un gasto de marketing.
type ExpenseRequest struct {
	PeriodMonth int     `json:"period_month" binding:"required"`
	PeriodYear  int     `json:"period_year" binding:"required"`
	Channel     string  `json:"channel" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
}

// ExpenseMonthSummary es el resumen mensual de gastos de marketing.
type ExpenseMonthSummary struct {
	Month     int                `json:"month"`
	Total     float64            `json:"total"`
	ByChannel map[string]float64 `json:"byChannel"`
}

// SaleRequest es el alta de una venta desde el formulario de cierre.
type SaleRequest struct {
	ClientFirstName  string   `json:"client_first_name" binding:"required"`
	ClientLastName   string   `json:"client_last_name"`
	ClientEmail      string   `json:"client_email" binding:"required,email"`
	SaleAmount       float64  `json:"sale_amount" binding:"required"`
	NetAmount        *float64 `json:"net_amount"`
	CommissionAmount float64  `json:"commission_amount"`
	Status           string   `json:"status"`
	SaleDate         string   `json:"sale_date" binding:"required"` // YYYY-MM-DD
	ContractDuration int      `json:"contract_duration"`
	CloserID         *uint    `json:"closer_id"`
}

// AccountingSummary encabeza el dashboard de contabilidad.
type AccountingSummary struct {
	TotalRevenue         float64 `json:"totalRevenue"`
	TotalNewSalesRevenue float64 `json:"totalNewSalesRevenue"`
	RenewalsRevenue      float64 `json:"renewalsRevenue"`
	TotalExpenses        float64 `json:"totalExpenses"`
	NetMargin            float64 `json:"netMargin"`
	FailedSales          int     `json:"failedSales"`
	PendingReceipts      int     `json:"pendingReceipts"`
}

package dto

// FinancialMetrics es el bloque de métricas del dashboard de contabilidad.
type FinancialMetrics struct {
	// CAC
	CAC                    float64 `json:"cac"`
	CACPreviousMonth       float64 `json:"cacPreviousMonth"`
	CACTrend               string  `json:"cacTrend"` // up, down, stable
	TotalMarketingExpenses float64 `json:"totalMarketingExpenses"`
	NewClientsCount        int     `json:"newClientsCount"`

	// Cash Contracted
	CashContracted     float64 `json:"cashContracted"`
	SalesContracted    float64 `json:"salesContracted"`
	RenewalsContracted float64 `json:"renewalsContracted"`

	// Cash Collected
	CashCollected     float64 `json:"cashCollected"`
	SalesCollected    float64 `json:"salesCollected"`
	RenewalsCollected float64 `json:"renewalsCollected"`

	// Collection Rate
	CollectionRate float64 `json:"collectionRate"`

	ExpensesByChannel map[string]float64 `json:"expensesByChannel"`
}

// MonthBucket es un mes de la evolución anual de contabilidad.
type MonthBucket struct {
	Name          string             `json:"name"`
	MonthIndex    int                `json:"monthIndex"` // 0..11
	Ingresos      float64            `json:"ingresos"`
	Gastos        float64            `json:"gastos"`
	Margen        float64            `json:"margen"`
	Closers       map[string]float64 `json:"closers"`
	Coaches       map[string]float64 `json:"coaches"`
	DropoutsCount int                `json:"dropoutsCount"`
	NewSalesCount int                `json:"newSalesCount"`
	Churn         float64            `json:"churn"`
	LTV           float64            `json:"ltv"`
}

// Transaction es una fila de la tabla combinada de ventas y renovaciones.
type Transaction struct {
	ID                string  `json:"id"`
	SaleDate          string  `json:"sale_date"`
	ClientFirstName   string  `json:"client_first_name"`
	ClientLastName    string  `json:"client_last_name"`
	ClientEmail       string  `json:"client_email"`
	CloserName        string  `json:"closer_name"`
	SaleAmount        float64 `json:"sale_amount"`
	Status            string  `json:"status"`
	PaymentReceiptURL string  `json:"payment_receipt_url"`
	Type              string  `json:"type"` // "Venta" o "Renovación F2".."F5"
}

// ForecastMonth es un mes del forecast de renovaciones pendientes.
type ForecastMonth struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Month  int     `json:"month"` // 0..11
	Year   int     `json:"year"`
}

// RetentionFunnel cuenta clientes activos por fase contratada.
type RetentionFunnel struct {
	F1 int `json:"f1"`
	F2 int `json:"f2"`
	F3 int `json:"f3"`
	F4 int `json:"f4"`
	F5 int `json:"f5"`
}

// CoachRetention es la fila del ranking de retención por coach.
type CoachRetention struct {
	Name          string  `json:"name"`
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	Dropouts      int     `json:"dropouts"`
	RetentionRate float64 `json:"retentionRate"`
}

// DurationStats agrupa clientes activos por duración de su fase actual.
// La clave es la duración en meses.
type DurationStats struct {
	F1 map[int]int `json:"f1"`
	F2 map[int]int `json:"f2"`
	F3 map[int]int `json:"f3"`
	F4 map[int]int `json:"f4"`
	F5 map[int]int `json:"f5"`
}

// AdvancedMetrics es el bloque de métricas avanzadas (dirección/contabilidad).
type AdvancedMetrics struct {
	AvgInitialDuration float64 `json:"avgInitialDuration"`
	AvgRenewalDuration float64 `json:"avgRenewalDuration"`

	ChurnRate        float64 `json:"churnRate"`
	ActiveAtStart    int     `json:"activeAtStart"`
	MonthlyDropouts  int     `json:"monthlyDropouts"`
	MonthlyPauses    int     `json:"monthlyPauses"`
	MonthlyInactives int     `json:"monthlyInactives"`
	TotalLosses      int     `json:"totalLosses"`

	ForecastData []ForecastMonth `json:"forecastData"`

	AvgLTV        float64          `json:"avgLTV"`
	AvgTicket     float64          `json:"avgTicket"`
	Funnel        RetentionFunnel  `json:"funnel"`
	CoachStats    []CoachRetention `json:"coachStats"`
	DurationStats DurationStats    `json:"durationStats"`

	IsAllMonths bool `json:"isAllMonths"`
}

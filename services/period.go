package services

import "time"

// Period es el periodo de informe que seleccionan los dashboards: un mes
// concreto o el año completo. Sustituye al centinela "all" del frontal.
type Period struct {
	Year  int
	month time.Month // 0 cuando el periodo es el año entero
}

// MonthPeriod construye el periodo de un mes concreto.
func MonthPeriod(year int, month time.Month) Period {
	return Period{Year: year, month: month}
}

// YearPeriod construye el periodo de un año completo.
func YearPeriod(year int) Period {
	return Period{Year: year}
}

// AllMonths indica si el periodo cubre el año entero.
func (p Period) AllMonths() bool {
	return p.month == 0
}

// Month devuelve el mes del periodo; solo tiene sentido si !AllMonths().
func (p Period) Month() time.Month {
	return p.month
}

// Contains indica si una fecha cae dentro del periodo.
func (p Period) Contains(t time.Time) bool {
	if t.Year() != p.Year {
		return false
	}
	return p.AllMonths() || t.Month() == p.month
}

// Start devuelve el primer día del periodo.
func (p Period) Start() time.Time {
	m := time.January
	if !p.AllMonths() {
		m = p.month
	}
	return time.Date(p.Year, m, 1, 0, 0, 0, 0, time.UTC)
}

// End devuelve el último día del periodo.
func (p Period) End() time.Time {
	if p.AllMonths() {
		return time.Date(p.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(p.Year, p.month+1, 0, 0, 0, 0, 0, time.UTC)
}

// sameMonth indica si dos fechas caen en el mismo mes natural.
func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// monthStart devuelve el primer día del mes de un año.
func monthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// monthEnd devuelve el último día del mes de un año.
func monthEnd(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

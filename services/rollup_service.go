package services

import (
	"time"

	"cuidarte/constants"
	"cuidarte/dto"
	"cuidarte/models"
)

// spanishMonths son los nombres cortos de mes que pinta el dashboard.
var spanishMonths = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// ActiveAtStart cuenta los clientes activos el primer día de un mes: alta
// anterior al inicio del mes y, o bien siguen activos/en pausa hoy, o bien su
// fecha de salida es posterior o igual al inicio del mes. Un cliente de baja
// sin fecha de salida no cuenta, para no inflar la base.
func ActiveAtStart(clients []models.Client, mStart time.Time) int {
	count := 0
	for i := range clients {
		c := &clients[i]
		start := c.EffectiveStartDate()
		if start == nil || !start.Before(mStart) {
			continue
		}

		if c.Status == constants.ClientStatusActive || c.Status == constants.ClientStatusPaused {
			count++
			continue
		}

		if leave := c.LeaveDate(); leave != nil && !leave.Before(mStart) {
			count++
		}
	}
	return count
}

// BuildMonthlyRollup construye la evolución mensual de un año: ingresos
// (ventas + renovaciones con guardia de doble conteo), gastos (facturas no
// rechazadas), margen, atribución por closer y coach, bajas, churn y LTV.
// Cada mes se recalcula desde las fechas crudas, sin estado acumulado.
func BuildMonthlyRollup(
	sales []models.Sale,
	clients []models.Client,
	invoices []models.Invoice,
	links []models.PaymentLink,
	year int,
) []dto.MonthBucket {
	data := make([]dto.MonthBucket, 12)
	for i := range data {
		data[i] = dto.MonthBucket{
			Name:       spanishMonths[i],
			MonthIndex: i,
			Closers:    make(map[string]float64),
			Coaches:    make(map[string]float64),
		}
	}

	// 1. Ventas
	for i := range sales {
		s := &sales[i]
		if s.Status == constants.SaleStatusFailed {
			continue
		}
		d := s.EffectiveDate()
		if d.Year() != year {
			continue
		}
		m := int(d.Month()) - 1
		data[m].Ingresos += s.SaleAmount
		data[m].NewSalesCount++

		closer := s.CloserName
		if closer == "" {
			closer = constants.UnassignedCloser
		}
		data[m].Closers[closer] += s.SaleAmount
	}

	// 2. Renovaciones
	for i := range clients {
		c := &clients[i]
		if c.Status == constants.ClientStatusDropout || c.Status == constants.ClientStatusPaused {
			continue
		}
		for _, r := range c.Program.Renewals() {
			if r.RenewalDate == nil || r.RenewalDate.Year() != year {
				continue
			}
			if hasLinkedSale(sales, c.Email, *r.RenewalDate) {
				continue
			}
			if !r.Contracted && c.RenewalReceiptURL == "" {
				continue
			}
			amount := ResolveRenewalAmount(c, links)
			m := int(r.RenewalDate.Month()) - 1
			data[m].Ingresos += amount
			data[m].Coaches[c.CoachName()] += amount
		}
	}

	// 3. Gastos
	for i := range invoices {
		inv := &invoices[i]
		if inv.Status == constants.InvoiceStatusRejected || inv.PeriodDate == nil {
			continue
		}
		if inv.PeriodDate.Year() == year {
			data[inv.PeriodDate.Month()-1].Gastos += inv.Amount
		}
	}

	// 4. Bajas para el churn
	for i := range clients {
		c := &clients[i]
		if c.Status != constants.ClientStatusDropout || c.AbandonmentDate == nil {
			continue
		}
		if c.AbandonmentDate.Year() == year {
			data[c.AbandonmentDate.Month()-1].DropoutsCount++
		}
	}

	// 5. Cierre por mes sobre la base activa al día 1
	for i := range data {
		mStart := monthStart(year, time.Month(i+1))
		base := ActiveAtStart(clients, mStart)
		if base < 1 {
			base = 1
		}
		data[i].Churn = float64(data[i].DropoutsCount) / float64(base) * 100
		data[i].LTV = data[i].Ingresos / float64(base)
		data[i].Margen = data[i].Ingresos - data[i].Gastos
	}

	return data
}

// hasLinkedSale indica si ya existe una venta no fallida del mismo cliente en
// el mismo mes natural: la renovación no debe contarse dos veces.
func hasLinkedSale(sales []models.Sale, email string, renewalDate time.Time) bool {
	if email == "" {
		return false
	}
	norm := normalizeEmail(email)
	for i := range sales {
		s := &sales[i]
		if s.SaleDate == nil || s.ClientEmail == "" {
			continue
		}
		if s.Status == constants.SaleStatusFailed {
			continue
		}
		if normalizeEmail(s.ClientEmail) == norm && sameMonth(*s.SaleDate, renewalDate) {
			return true
		}
	}
	return false
}

package services

import (
	"fmt"
	"sort"
	"time"

	"cuidarte/constants"
	"cuidarte/dto"
	"cuidarte/models"
)

// FilterSalesByPeriod devuelve las ventas cuya fecha cae en el periodo.
// Incluye las fallidas: la tabla de contabilidad las muestra como ingreso
// recuperable.
func FilterSalesByPeriod(sales []models.Sale, p Period) []models.Sale {
	var out []models.Sale
	for i := range sales {
		if p.Contains(sales[i].EffectiveDate()) {
			out = append(out, sales[i])
		}
	}
	return out
}

// BuildCombinedTransactions mezcla las ventas del periodo con las
// renovaciones contratadas como transacciones sintéticas, aplicando la
// guardia de doble conteo, y ordena por fecha descendente.
func BuildCombinedTransactions(
	sales []models.Sale,
	clients []models.Client,
	links []models.PaymentLink,
	p Period,
) []dto.Transaction {
	var list []dto.Transaction

	for _, s := range FilterSalesByPeriod(sales, p) {
		list = append(list, dto.Transaction{
			ID:                fmt.Sprintf("sale-%d", s.ID),
			SaleDate:          s.EffectiveDate().Format("2006-01-02"),
			ClientFirstName:   s.ClientFirstName,
			ClientLastName:    s.ClientLastName,
			ClientEmail:       s.ClientEmail,
			CloserName:        s.CloserName,
			SaleAmount:        s.SaleAmount,
			Status:            s.Status,
			PaymentReceiptURL: s.PaymentReceiptURL,
			Type:              "Venta",
		})
	}

	for i := range clients {
		c := &clients[i]
		for _, r := range c.Program.Renewals() {
			if r.RenewalDate == nil || !r.Contracted {
				continue
			}
			if !p.Contains(*r.RenewalDate) {
				continue
			}
			if hasLinkedSale(sales, c.Email, *r.RenewalDate) {
				continue
			}
			list = append(list, dto.Transaction{
				ID:                fmt.Sprintf("ren-%d-%s", c.ID, r.Phase),
				SaleDate:          r.RenewalDate.Format("2006-01-02"),
				ClientFirstName:   c.FirstName,
				ClientLastName:    c.Surname,
				ClientEmail:       c.Email,
				CloserName:        c.CoachName(),
				SaleAmount:        ResolveRenewalAmount(c, links),
				Status:            constants.SaleStatusOnboardingCompleted,
				PaymentReceiptURL: c.RenewalReceiptURL,
				Type:              "Renovación " + r.Phase,
			})
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		ti, _ := time.Parse("2006-01-02", list[i].SaleDate)
		tj, _ := time.Parse("2006-01-02", list[j].SaleDate)
		return ti.After(tj)
	})

	return list
}

// BuildAccountingSummary calcula el encabezado del dashboard: ingresos por
// ventas nuevas del periodo (neto si existe, las fallidas nunca suman),
// renovaciones con las mismas reglas que la evolución mensual, gastos de
// facturas no rechazadas y los contadores de ventas fallidas y justificantes
// pendientes.
func BuildAccountingSummary(
	sales []models.Sale,
	clients []models.Client,
	invoices []models.Invoice,
	links []models.PaymentLink,
	p Period,
) dto.AccountingSummary {
	var out dto.AccountingSummary

	for i := range sales {
		s := &sales[i]
		if !p.Contains(s.EffectiveDate()) {
			continue
		}
		if s.Status == constants.SaleStatusFailed {
			out.FailedSales++
			continue
		}
		out.TotalNewSalesRevenue += s.RevenueAmount()
		if s.PaymentReceiptURL == "" {
			out.PendingReceipts++
		}
	}

	for i := range clients {
		c := &clients[i]
		if c.Status == constants.ClientStatusDropout || c.Status == constants.ClientStatusPaused {
			continue
		}
		for _, r := range c.Program.Renewals() {
			if r.RenewalDate == nil || !p.Contains(*r.RenewalDate) {
				continue
			}
			if hasLinkedSale(sales, c.Email, *r.RenewalDate) {
				continue
			}
			if !r.Contracted && c.RenewalReceiptURL == "" {
				continue
			}
			out.RenewalsRevenue += ResolveRenewalAmount(c, links)
		}
	}
	out.TotalRevenue = out.TotalNewSalesRevenue + out.RenewalsRevenue

	for i := range invoices {
		inv := &invoices[i]
		if inv.Status == constants.InvoiceStatusRejected || inv.PeriodDate == nil {
			continue
		}
		if p.Contains(*inv.PeriodDate) {
			out.TotalExpenses += inv.Amount
		}
	}
	out.NetMargin = out.TotalRevenue - out.TotalExpenses

	return out
}

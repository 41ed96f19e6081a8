package services

import (
	"math"
	"strings"
	"time"

	"cuidarte/constants"
	"cuidarte/dto"
	"cuidarte/models"
)

// normalizeEmail normaliza el email para el cruce ventas/renovaciones.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// periodSales filtra las ventas de un mes descartando las fallidas.
func periodSales(sales []models.Sale, year int, month time.Month) []models.Sale {
	var out []models.Sale
	for i := range sales {
		s := sales[i]
		if s.Status == constants.SaleStatusFailed || s.SaleDate == nil {
			continue
		}
		if s.SaleDate.Year() == year && s.SaleDate.Month() == month {
			out = append(out, s)
		}
	}
	return out
}

func sumExpenses(expenses []models.MarketingExpense, year int, month time.Month) float64 {
	total := 0.0
	for _, e := range expenses {
		if e.PeriodYear == year && e.PeriodMonth == int(month) {
			total += e.Amount
		}
	}
	return total
}

// CalculateFinancialMetrics calcula las métricas financieras de un mes:
// CAC y tendencia, gastos de marketing por canal, cash contracted/collected
// y tasa de cobranza. Función pura y determinista: con las mismas filas
// produce el mismo resultado.
func CalculateFinancialMetrics(
	sales []models.Sale,
	clients []models.Client,
	expenses []models.MarketingExpense,
	year int,
	month time.Month,
	links []models.PaymentLink,
) dto.FinancialMetrics {
	curSales := periodSales(sales, year, month)

	totalExpenses := sumExpenses(expenses, year, month)

	byChannel := make(map[string]float64, len(constants.MarketingChannels))
	for _, ch := range constants.MarketingChannels {
		byChannel[ch] = 0
	}
	for _, e := range expenses {
		if e.PeriodYear == year && e.PeriodMonth == int(month) {
			byChannel[e.Channel] += e.Amount
		}
	}

	// Nuevos clientes del periodo (desde ventas)
	newClients := len(curSales)

	cac := 0.0
	if newClients > 0 {
		cac = totalExpenses / float64(newClients)
	}

	// CAC del mes anterior para la tendencia
	prevMonth := month - 1
	prevYear := year
	if month == time.January {
		prevMonth = time.December
		prevYear = year - 1
	}
	prevTotal := sumExpenses(expenses, prevYear, prevMonth)
	prevNewClients := len(periodSales(sales, prevYear, prevMonth))
	cacPrev := 0.0
	if prevNewClients > 0 {
		cacPrev = prevTotal / float64(prevNewClients)
	}

	trend := "stable"
	if cacPrev > 0 {
		diff := (cac - cacPrev) / cacPrev * 100
		if diff > 5 {
			trend = "up"
		} else if diff < -5 {
			trend = "down"
		}
	}

	salesContracted := 0.0
	for i := range curSales {
		salesContracted += curSales[i].SaleAmount
	}
	renewalsContracted := sumRenewals(clients, curSales, links, year, month, false)
	cashContracted := salesContracted + renewalsContracted

	salesCollected := 0.0
	for i := range curSales {
		if curSales[i].PaymentReceiptURL != "" {
			salesCollected += curSales[i].RevenueAmount()
		}
	}
	renewalsCollected := sumRenewals(clients, curSales, links, year, month, true)
	cashCollected := salesCollected + renewalsCollected

	collectionRate := 0.0
	if cashContracted > 0 {
		collectionRate = cashCollected / cashContracted * 100
	}

	return dto.FinancialMetrics{
		CAC:                    round2(cac),
		CACPreviousMonth:       round2(cacPrev),
		CACTrend:               trend,
		TotalMarketingExpenses: totalExpenses,
		NewClientsCount:        newClients,
		CashContracted:         cashContracted,
		SalesContracted:        salesContracted,
		RenewalsContracted:     renewalsContracted,
		CashCollected:          cashCollected,
		SalesCollected:         salesCollected,
		RenewalsCollected:      renewalsCollected,
		CollectionRate:         round1(collectionRate),
		ExpensesByChannel:      byChannel,
	}
}

// sumRenewals suma los importes de las renovaciones contratadas del mes.
// Con collected exige además el comprobante de la renovación. Se excluyen
// clientes de baja y los que ya tienen venta del mismo mes (cruce por email).
func sumRenewals(
	clients []models.Client,
	curSales []models.Sale,
	links []models.PaymentLink,
	year int,
	month time.Month,
	collected bool,
) float64 {
	saleEmails := make(map[string]bool, len(curSales))
	for i := range curSales {
		if curSales[i].ClientEmail != "" {
			saleEmails[normalizeEmail(curSales[i].ClientEmail)] = true
		}
	}

	total := 0.0
	for i := range clients {
		c := &clients[i]
		if c.Status == constants.ClientStatusDropout || c.Status == constants.ClientStatusInactive {
			continue
		}
		if collected && c.RenewalReceiptURL == "" {
			continue
		}
		for _, r := range c.Program.Renewals() {
			if r.RenewalDate == nil || !r.Contracted {
				continue
			}
			if r.RenewalDate.Year() != year || r.RenewalDate.Month() != month {
				continue
			}
			if saleEmails[normalizeEmail(c.Email)] {
				continue
			}
			total += ResolveRenewalAmount(c, links)
		}
	}
	return total
}

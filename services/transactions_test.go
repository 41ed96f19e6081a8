package services

import (
	"testing"
	"time"

	"cuidarte/constants"
	"cuidarte/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCombinedTransactions(t *testing.T) {
	sales := []models.Sale{
		{ID: 1, ClientFirstName: "María", ClientEmail: "maria@example.com", SaleAmount: 1000,
			Status: constants.SaleStatusWon, SaleDate: datePtr(2024, time.March, 15), CloserName: "Ana"},
		{ID: 2, ClientFirstName: "Mal", ClientEmail: "mal@example.com", SaleAmount: 700,
			Status: constants.SaleStatusFailed, SaleDate: datePtr(2024, time.March, 8)},
	}
	links := []models.PaymentLink{
		{URL: "https://pay.example.com/f2", Price: "1.234,56"},
	}
	clients := []models.Client{
		{ID: 7, FirstName: "Sara", Email: "sara@example.com", Status: constants.ClientStatusActive,
			PropertyCoach: "Clara", RenewalPaymentLink: "https://pay.example.com/f2",
			Program: models.Program{F2RenewalDate: datePtr(2024, time.March, 20), RenewalF2Contracted: true}},
	}

	list := BuildCombinedTransactions(sales, clients, links, MonthPeriod(2024, time.March))
	require.Len(t, list, 3)

	// Orden descendente por fecha
	assert.Equal(t, "ren-7-F2", list[0].ID)
	assert.Equal(t, "sale-1", list[1].ID)
	assert.Equal(t, "sale-2", list[2].ID)

	ren := list[0]
	assert.Equal(t, "Renovación F2", ren.Type)
	// El importe sale del enlace de pago en formato europeo
	assert.Equal(t, 1234.56, ren.SaleAmount)
	assert.Equal(t, constants.SaleStatusOnboardingCompleted, ren.Status)
	assert.Equal(t, "Clara", ren.CloserName)

	// La tabla sí muestra las ventas fallidas
	assert.Equal(t, constants.SaleStatusFailed, list[2].Status)
}

func TestBuildCombinedTransactionsGuard(t *testing.T) {
	sales := []models.Sale{
		{ID: 1, ClientEmail: "sara@example.com", SaleAmount: 1000, Status: constants.SaleStatusWon,
			SaleDate: datePtr(2024, time.March, 15)},
	}
	clients := []models.Client{
		{ID: 7, Email: "sara@example.com", Status: constants.ClientStatusActive, RenewalAmount: 600,
			Program: models.Program{F2RenewalDate: datePtr(2024, time.March, 20), RenewalF2Contracted: true}},
	}

	list := BuildCombinedTransactions(sales, clients, nil, MonthPeriod(2024, time.March))
	require.Len(t, list, 1)
	assert.Equal(t, "sale-1", list[0].ID)
}

func TestBuildCombinedTransactionsYearPeriod(t *testing.T) {
	sales := []models.Sale{
		{ID: 1, ClientEmail: "a@a.com", SaleAmount: 100, Status: constants.SaleStatusWon,
			SaleDate: datePtr(2024, time.January, 10)},
		{ID: 2, ClientEmail: "b@b.com", SaleAmount: 200, Status: constants.SaleStatusWon,
			SaleDate: datePtr(2024, time.November, 10)},
		{ID: 3, ClientEmail: "c@c.com", SaleAmount: 300, Status: constants.SaleStatusWon,
			SaleDate: datePtr(2023, time.December, 10)},
	}

	list := BuildCombinedTransactions(sales, nil, nil, YearPeriod(2024))
	require.Len(t, list, 2)
	assert.Equal(t, "sale-2", list[0].ID)
	assert.Equal(t, "sale-1", list[1].ID)
}

func TestBuildAccountingSummaryExcludesFailedAndPrefersNet(t *testing.T) {
	net := 900.0
	sales := []models.Sale{
		{ID: 1, ClientEmail: "ok@example.com", SaleAmount: 1000, NetAmount: &net,
			Status: constants.SaleStatusWon, SaleDate: datePtr(2024, time.March, 10),
			PaymentReceiptURL: "https://r/1"},
		{ID: 2, ClientEmail: "mal@example.com", SaleAmount: 2000,
			Status: constants.SaleStatusFailed, SaleDate: datePtr(2024, time.March, 12)},
	}

	s := BuildAccountingSummary(sales, nil, nil, nil, MonthPeriod(2024, time.March))

	// La fallida cuenta como recuperable, nunca como ingreso; la ganada suma el neto
	assert.Equal(t, 900.0, s.TotalNewSalesRevenue)
	assert.Equal(t, 900.0, s.TotalRevenue)
	assert.Equal(t, 1, s.FailedSales)
	assert.Equal(t, 0, s.PendingReceipts)
}

func TestBuildAccountingSummaryRenewalRules(t *testing.T) {
	clients := []models.Client{
		// De baja: su renovación contratada no suma
		{ID: 1, Email: "baja@example.com", Status: constants.ClientStatusDropout, RenewalAmount: 500,
			Program: models.Program{F2RenewalDate: datePtr(2024, time.March, 5), RenewalF2Contracted: true}},
		// Sin contratar pero con justificante: sí suma
		{ID: 2, Email: "recibo@example.com", Status: constants.ClientStatusActive, RenewalAmount: 600,
			RenewalReceiptURL: "https://r/2",
			Program:           models.Program{F3RenewalDate: datePtr(2024, time.March, 8)}},
		// Ni contrato ni justificante: no suma
		{ID: 3, Email: "nada@example.com", Status: constants.ClientStatusActive, RenewalAmount: 700,
			Program: models.Program{F2RenewalDate: datePtr(2024, time.March, 9)}},
	}

	s := BuildAccountingSummary(nil, clients, nil, nil, MonthPeriod(2024, time.March))
	assert.Equal(t, 600.0, s.RenewalsRevenue)
	assert.Equal(t, 600.0, s.TotalRevenue)
}

func TestBuildAccountingSummaryExpensesOnlyInvoices(t *testing.T) {
	sales := []models.Sale{
		{ID: 1, ClientEmail: "ok@example.com", SaleAmount: 1000, Status: constants.SaleStatusWon,
			SaleDate: datePtr(2024, time.March, 10)},
	}
	invoices := []models.Invoice{
		{ID: 1, Amount: 300, Status: constants.InvoiceStatusApproved, PeriodDate: datePtr(2024, time.March, 1)},
		{ID: 2, Amount: 500, Status: constants.InvoiceStatusRejected, PeriodDate: datePtr(2024, time.March, 1)},
		{ID: 3, Amount: 400, Status: constants.InvoiceStatusApproved, PeriodDate: datePtr(2024, time.April, 1)},
	}

	s := BuildAccountingSummary(sales, nil, invoices, nil, MonthPeriod(2024, time.March))

	// Solo las facturas no rechazadas del periodo; sin justificante cuenta como pendiente
	assert.Equal(t, 300.0, s.TotalExpenses)
	assert.Equal(t, 700.0, s.NetMargin)
	assert.Equal(t, 1, s.PendingReceipts)
}

func TestFilterSalesByPeriodUsesCreatedAtFallback(t *testing.T) {
	sales := []models.Sale{
		{ID: 1, ClientEmail: "a@a.com", SaleAmount: 100, Status: constants.SaleStatusWon,
			CreatedAt: time.Date(2024, time.May, 2, 10, 0, 0, 0, time.UTC)},
	}

	list := FilterSalesByPeriod(sales, MonthPeriod(2024, time.May))
	assert.Len(t, list, 1)
}

package services

import (
	"testing"
	"time"

	"cuidarte/constants"
	"cuidarte/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestCalculateFinancialMetrics(t *testing.T) {
	sales := []models.Sale{
		{ID: 1, ClientEmail: "ana@example.com", SaleAmount: 1000, Status: constants.SaleStatusWon,
			SaleDate: datePtr(2024, time.March, 10), PaymentReceiptURL: "https://cdn/r1.pdf"},
		{ID: 2, ClientEmail: "luis@example.com", SaleAmount: 500, Status: constants.SaleStatusPending,
			SaleDate: datePtr(2024, time.March, 20)},
		{ID: 3, ClientEmail: "mal@example.com", SaleAmount: 2000, Status: constants.SaleStatusFailed,
			SaleDate: datePtr(2024, time.March, 15)},
	}
	expenses := []models.MarketingExpense{
		{PeriodYear: 2024, PeriodMonth: 3, Channel: constants.ChannelInstagramAds, Amount: 300},
		{PeriodYear: 2024, PeriodMonth: 3, Channel: constants.ChannelGoogleAds, Amount: 100},
		{PeriodYear: 2024, PeriodMonth: 2, Channel: constants.ChannelInstagramAds, Amount: 50},
	}

	m := CalculateFinancialMetrics(sales, nil, expenses, 2024, time.March, nil)

	// La venta fallida no cuenta como cliente nuevo ni como ingreso
	assert.Equal(t, 2, m.NewClientsCount)
	assert.Equal(t, 400.0, m.TotalMarketingExpenses)
	assert.Equal(t, 200.0, m.CAC)

	assert.Equal(t, 1500.0, m.SalesContracted)
	assert.Equal(t, 1500.0, m.CashContracted)

	// Solo la venta con comprobante cuenta como cobrada
	assert.Equal(t, 1000.0, m.SalesCollected)
	assert.InDelta(t, 66.7, m.CollectionRate, 0.001)

	assert.Equal(t, 300.0, m.ExpensesByChannel[constants.ChannelInstagramAds])
	assert.Equal(t, 100.0, m.ExpensesByChannel[constants.ChannelGoogleAds])
	assert.Equal(t, 0.0, m.ExpensesByChannel[constants.ChannelInfluencers])
}

func TestCalculateFinancialMetricsDeterministic(t *testing.T) {
	sales := []models.Sale{
		{ID: 1, ClientEmail: "ana@example.com", SaleAmount: 1000, Status: constants.SaleStatusWon,
			SaleDate: datePtr(2024, time.March, 10)},
	}
	expenses := []models.MarketingExpense{
		{PeriodYear: 2024, PeriodMonth: 3, Channel: constants.ChannelOtros, Amount: 250},
	}
	clients := []models.Client{
		{Email: "sara@example.com", Status: constants.ClientStatusActive, RenewalAmount: 600,
			Program: models.Program{F2RenewalDate: datePtr(2024, time.March, 5), RenewalF2Contracted: true}},
	}

	first := CalculateFinancialMetrics(sales, clients, expenses, 2024, time.March, nil)
	second := CalculateFinancialMetrics(sales, clients, expenses, 2024, time.March, nil)
	assert.Equal(t, first, second)
}

func TestCalculateFinancialMetricsRenewals(t *testing.T) {
	clients := []models.Client{
		// Renovación contratada con comprobante: contracted y collected
		{Email: "sara@example.com", Status: constants.ClientStatusActive, RenewalAmount: 600,
			RenewalReceiptURL: "https://cdn/ren.pdf",
			Program:           models.Program{F2RenewalDate: datePtr(2024, time.March, 5), RenewalF2Contracted: true}},
		// Contratada sin comprobante: solo contracted
		{Email: "pep@example.com", Status: constants.ClientStatusActive, RenewalAmount: 400,
			Program: models.Program{F3RenewalDate: datePtr(2024, time.March, 12), RenewalF3Contracted: true}},
		// Cliente de baja: nunca cuenta
		{Email: "baja@example.com", Status: constants.ClientStatusDropout, RenewalAmount: 900,
			Program: models.Program{F2RenewalDate: datePtr(2024, time.March, 8), RenewalF2Contracted: true}},
		// Sin contratar: no cuenta
		{Email: "futuro@example.com", Status: constants.ClientStatusActive, RenewalAmount: 700,
			Program: models.Program{F2RenewalDate: datePtr(2024, time.March, 25)}},
	}

	m := CalculateFinancialMetrics(nil, clients, nil, 2024, time.March, nil)

	assert.Equal(t, 1000.0, m.RenewalsContracted)
	assert.Equal(t, 600.0, m.RenewalsCollected)
}

func TestCalculateFinancialMetricsDoubleCountGuard(t *testing.T) {
	// El cliente con venta del mismo mes no suma su renovación
	sales := []models.Sale{
		{ID: 1, ClientEmail: "Ana@Example.com ", SaleAmount: 1000, Status: constants.SaleStatusWon,
			SaleDate: datePtr(2024, time.March, 10)},
	}
	clients := []models.Client{
		{Email: "ana@example.com", Status: constants.ClientStatusActive, RenewalAmount: 600,
			Program: models.Program{F2RenewalDate: datePtr(2024, time.March, 20), RenewalF2Contracted: true}},
	}

	m := CalculateFinancialMetrics(sales, clients, nil, 2024, time.March, nil)

	require.Equal(t, 0.0, m.RenewalsContracted)
	assert.Equal(t, 1000.0, m.CashContracted)
}

func TestCalculateFinancialMetricsCollectionRateZero(t *testing.T) {
	// Sin cash contracted la tasa es 0, no una división entre cero
	m := CalculateFinancialMetrics(nil, nil, nil, 2024, time.March, nil)
	assert.Equal(t, 0.0, m.CollectionRate)
	assert.Equal(t, 0.0, m.CAC)
}

func TestCACTrend(t *testing.T) {
	sales := []models.Sale{
		{ID: 1, ClientEmail: "a@a.com", SaleAmount: 100, Status: constants.SaleStatusWon, SaleDate: datePtr(2024, time.February, 10)},
		{ID: 2, ClientEmail: "b@b.com", SaleAmount: 100, Status: constants.SaleStatusWon, SaleDate: datePtr(2024, time.March, 10)},
	}
	expenses := []models.MarketingExpense{
		{PeriodYear: 2024, PeriodMonth: 2, Channel: constants.ChannelOtros, Amount: 100},
		{PeriodYear: 2024, PeriodMonth: 3, Channel: constants.ChannelOtros, Amount: 200},
	}

	m := CalculateFinancialMetrics(sales, nil, expenses, 2024, time.March, nil)
	assert.Equal(t, "up", m.CACTrend)
	assert.Equal(t, 100.0, m.CACPreviousMonth)

	// Enero mira a diciembre del año anterior
	dec := CalculateFinancialMetrics(
		[]models.Sale{
			{ID: 3, ClientEmail: "c@c.com", SaleAmount: 100, Status: constants.SaleStatusWon, SaleDate: datePtr(2023, time.December, 5)},
			{ID: 4, ClientEmail: "d@d.com", SaleAmount: 100, Status: constants.SaleStatusWon, SaleDate: datePtr(2024, time.January, 5)},
		},
		nil,
		[]models.MarketingExpense{
			{PeriodYear: 2023, PeriodMonth: 12, Channel: constants.ChannelOtros, Amount: 400},
			{PeriodYear: 2024, PeriodMonth: 1, Channel: constants.ChannelOtros, Amount: 100},
		},
		2024, time.January, nil)
	assert.Equal(t, "down", dec.CACTrend)
	assert.Equal(t, 400.0, dec.CACPreviousMonth)
}
